package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/simulator"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/stats"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/topology"
)

func simulateCmd() *cobra.Command {
	var horizon float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a discrete-event simulation over a topology",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := topology.FromYAML(topologyFile)
			if err != nil {
				return err
			}
			if horizon <= 0 {
				horizon = defaultHorizon(t, appConfig)
			}

			sims, err := simulator.RunAll(context.Background(), t, horizon, logger)
			if err != nil {
				return err
			}

			reports := make([]*stats.Report, 0, len(sims))
			for _, sim := range sims {
				reports = append(reports, stats.BuildReport(t, sim))
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			}

			for _, report := range reports {
				fmt.Printf("core %s (run %s):\n", report.CoreID, report.RunID)
				for _, task := range report.Tasks {
					fmt.Printf("  %s: schedulable=%v met=%d missed=%d avg_rt=%.3f max_rt=%.3f\n",
						task.TaskName, task.TaskSchedulable, task.DeadlinesMet, task.DeadlinesMissed,
						task.AvgResponseTime, task.MaxResponseTime)
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&horizon, "horizon", 0, "simulation horizon; defaults to the configured default_horizon, else the topology's hyperperiod (1000 if that is 0)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the full report set as JSON")
	return cmd
}
