package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgallion1/markerstub/internal/config"
	"github.com/dgallion1/markerstub/internal/logger"
	"github.com/dgallion1/markerstub/internal/pipeline"
)

// NewRootCommand builds the marker-stub command tree. The root command performs a run.
func NewRootCommand(version string) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "marker-stub --in FILE --out DIR [--use_llm=1]",
		Short: "Deterministic stand-in for a document layout extraction engine",
		Long: `marker-stub reads a UTF-8 text file, turns every non-blank line into a block on its
own page and writes marker.json, chunks.json, marker.md, marker.html and
images/img-0001.bin to the output directory.

The same input and flag always produce byte-identical artifacts. --use_llm is
recorded in the output only; no model is ever called.`,
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags parsed fine; from here on failures are not usage errors.
			cmd.SilenceUsage = true
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logger.New(verbose)
			if err != nil {
				return err
			}
			defer func() {
				_ = log.Sync()
			}()

			summary, err := pipeline.New(cfg, log).Run(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			log.Debug("run complete", zap.Int("blocks", summary.Blocks), zap.Int("images", summary.Images))
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.String(config.KeyInput, "", "input text file (required)")
	flags.String(config.KeyOutput, "", "output directory, created if missing (required)")
	flags.String(config.KeyUseLLM, "0", `enrichment flag; only "1" turns it on`)
	_ = rootCmd.MarkFlagRequired(config.KeyInput)
	_ = rootCmd.MarkFlagRequired(config.KeyOutput)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	rootCmd.AddCommand(newVerifyCommand())
	return rootCmd
}
