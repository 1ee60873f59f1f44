package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/dgallion1/markerstub/internal/cli"
	"github.com/dgallion1/markerstub/internal/logger"
)

// Version information
var Version = "dev"

func main() {
	rootCmd := cli.NewRootCommand(Version)
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		log := logger.Must(false)
		log.Error("marker-stub failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}
