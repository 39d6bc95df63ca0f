package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/analyser"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/topology"
)

func analyseCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyse",
		Short: "Run static schedulability analysis over a topology",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := topology.FromYAML(topologyFile)
			if err != nil {
				return err
			}

			report := analyser.Topology(t, logger)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			for coreID, core := range report.Cores {
				fmt.Printf("core %s: admitted=%v\n", coreID, core.Admitted)
				for compID, comp := range core.Components {
					fmt.Printf("  component %d: analysed=%v schedulable=%v\n", compID, comp.Analysed, comp.Schedulable)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output the full report as JSON")
	return cmd
}
