package simulator

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// RunAll simulates every core in the topology concurrently, one goroutine
// per core via errgroup.Group. Each core gets its own Simulation value and
// shares no mutable state with any other, so cores run independently rather
// than cooperatively.
func RunAll(ctx context.Context, topology *hssmodel.Topology, maxSimTime float64, logger *slog.Logger, opts ...Option) (map[hssmodel.CoreID]*Simulation, error) {
	if logger == nil {
		logger = slog.Default()
	}

	results := make(map[hssmodel.CoreID]*Simulation, len(topology.Cores))
	g, gctx := errgroup.WithContext(ctx)

	type outcome struct {
		coreID hssmodel.CoreID
		sim    *Simulation
	}
	outcomes := make(chan outcome, len(topology.Cores))

	for coreID := range topology.Cores {
		coreID := coreID
		g.Go(func() error {
			coreLogger := logger.With("core", coreID)
			perCoreOpts := make([]Option, len(opts)+1)
			copy(perCoreOpts, opts)
			perCoreOpts[len(opts)] = WithLogger(coreLogger)
			sim, err := New(topology, coreID, maxSimTime, perCoreOpts...)
			if err != nil {
				return err
			}
			if err := sim.Run(gctx); err != nil {
				return err
			}
			outcomes <- outcome{coreID: coreID, sim: sim}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(outcomes)
	for o := range outcomes {
		results[o.coreID] = o.sim
	}

	return results, nil
}
