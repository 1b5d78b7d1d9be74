// Package cli implements the lawgic command line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lawgic-labs/lawgic/internal/adapters/driven/config"
	"github.com/lawgic-labs/lawgic/internal/app"
	"github.com/lawgic-labs/lawgic/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfgFile     string
	baseDir     string
	verboseMode bool
)

var rootCmd = &cobra.Command{
	Use:   "lawgic",
	Short: "Question answering over your own legal document corpus",
	Long: `Lawgic answers questions about Indian law from a local PDF corpus.

Documents are split into overlapping chunks, embedded and indexed with
'lawgic build'. Questions are answered by retrieving the most similar
chunks and generating a grounded reply, in English or Hindi.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseMode)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default lawgic.toml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "",
		"directory the data and vectorstore paths are resolved against")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false,
		"enable verbose output")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// loadConfig reads the configuration honoured by every subcommand.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newApp assembles the query-side application from the global flags.
func newApp() (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg, baseDir)
}

// newBuilder assembles the build-side application from the global flags.
func newBuilder() (*app.Builder, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.NewBuilder(cfg, baseDir)
}
