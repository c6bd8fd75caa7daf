// Package cli wires the validation pipeline into the jarvis command
// tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmorascalyr/jarvis-coding/internal/config"
	"github.com/jmorascalyr/jarvis-coding/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "jarvis",
	Short: "Parser effectiveness validation for security event pipelines",
	Long: `jarvis submits uniquely-tagged synthetic security events through an
HEC-compatible ingestion endpoint, polls the query API until the parsed
results surface, and scores each parser's field extraction against the
product's reference taxonomy.

The output is a ranked report grading every parser from excellent to
failing.`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./jarvis.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text, json")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v\n", err)
		cfg = &config.Config{}
	}

	if v, _ := rootCmd.PersistentFlags().GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("log-format"); v != "" {
		cfg.Logging.Format = v
	}

	log = logging.New(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)
	logging.SetDefault(log)
}
