// Package cli implements the havoc command line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gethavoc/havoc/pkg/logging"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "havoc",
	Short: "Fault-injection middleware for HTTP services",
	Long: `havoc sits inside an HTTP pipeline and probabilistically degrades
otherwise-correct responses with latency, injected errors, or corrupted
payloads, so clients can be exercised against realistic failure modes.`,
	SilenceUsage: true,
}

// Execute runs the root command. version is stamped at build time.
func Execute(version string) {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
}

func newLogger() *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(logLevel),
		Format: logging.ParseFormat(logFormat),
	})
}
