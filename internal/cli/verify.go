package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dgallion1/markerstub/internal/config"
	"github.com/dgallion1/markerstub/internal/verify"
)

// ErrVerifyFailed is returned when an output directory breaks the artifact contract.
var ErrVerifyFailed = errors.New("verification failed")

func newVerifyCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "verify --out DIR",
		Short: "Check an output directory against the artifact contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			report, err := verify.Dir(outDir)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			title := color.New(color.FgCyan, color.Bold)
			title.Fprintf(w, "%s\n", report.Dir)
			fmt.Fprintf(w, "  blocks: %d\n", report.Blocks)
			fmt.Fprintf(w, "  images: %d\n", len(report.ImageFiles))

			if report.OK() {
				color.New(color.FgGreen).Fprintln(w, "  ok")
				return nil
			}
			bad := color.New(color.FgRed)
			for _, p := range report.Problems {
				bad.Fprintf(w, "  - %s\n", p)
			}
			return fmt.Errorf("%w: %d problem(s)", ErrVerifyFailed, len(report.Problems))
		},
	}

	cmd.Flags().StringVar(&outDir, config.KeyOutput, "", "output directory to check (required)")
	_ = cmd.MarkFlagRequired(config.KeyOutput)
	return cmd
}
