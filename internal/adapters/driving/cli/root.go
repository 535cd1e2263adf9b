// Package cli provides the command-line interface for docqa.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
	"github.com/custodia-labs/docqa/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by the commands, injected at startup.
var (
	engineService   driving.Engine
	registryService driven.CollectionRegistry
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Question answering over tenant document collections",
	Long: `docqa indexes documents into per-collection vector namespaces and answers
questions against them using retrieval-augmented generation.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetEngine injects the question-answering engine used by the commands.
func SetEngine(e driving.Engine) {
	engineService = e
}

// SetRegistry injects the collection registry used by the commands.
func SetRegistry(r driven.CollectionRegistry) {
	registryService = r
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
