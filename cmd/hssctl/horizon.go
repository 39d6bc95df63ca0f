package main

import (
	"github.com/JoaoAAnjos/rt-distributed-systems/internal/config"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/dbf"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// defaultHorizon picks the hyperperiod of every task in t as the simulation
// horizon when the caller didn't specify one explicitly, unless cfg pins an
// explicit DefaultHorizon override.
func defaultHorizon(t *hssmodel.Topology, cfg *config.Config) float64 {
	if cfg.DefaultHorizon > cfg.Epsilon {
		return cfg.DefaultHorizon
	}
	tasks := t.Tasks()
	periods := make([]float64, len(tasks))
	for i, tk := range tasks {
		periods[i] = tk.Period
	}
	h := dbf.Hyperperiod(periods)
	if h <= cfg.Epsilon {
		return 1000
	}
	return h
}
