// Command hssctl is a demo harness around the hssmodel analyser and
// simulator packages. It exists so the library can be exercised end-to-end
// from a terminal, reading topology fixtures in YAML rather than the real
// CSV tables a production ingestion pipeline would consume.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JoaoAAnjos/rt-distributed-systems/internal/config"
)

var (
	cfgFile      string
	topologyFile string
	logger       *slog.Logger
	appConfig    *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hssctl",
		Short: "Analyse and simulate hierarchical real-time scheduling topologies",
		Long: `hssctl is a demo CLI over the HSS analyser and simulator packages.

It loads a topology from a YAML fixture file and either runs the static
schedulability analysis or a discrete-event simulation against it.

This is a demonstration harness, not the system's production CLI: real
deployments ingest architecture/budget/task tables from CSV through their own
pipeline, not through this command.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			appConfig = cfg
			logger = config.NewLogger(cfg.LogLevel)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional config file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&topologyFile, "topology", "f", "", "topology fixture file (YAML)")
	rootCmd.MarkPersistentFlagRequired("topology")

	rootCmd.AddCommand(analyseCmd())
	rootCmd.AddCommand(simulateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
