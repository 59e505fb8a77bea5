package main

import (
	"github.com/spf13/cobra"

	honeycomb "github.com/LIHPC-Computational-Geometry/honeycomb-sub001"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/parallel"
)

// runnerFlags carries the scheduling options shared by the remeshing
// subcommands.
type runnerFlags struct {
	backend string
	workers int
	bind    bool
}

func (f *runnerFlags) install(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.backend, "backend", parallel.BackendIter.String(), "scheduling backend (iter, chunks or pool)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "worker goroutines, 0 meaning GOMAXPROCS")
	cmd.Flags().BoolVar(&f.bind, "bind-cores", false, "pin workers to CPU cores (pool backend only)")
}

func (f *runnerFlags) runner(log *honeycomb.Logger) (*parallel.Runner, error) {
	backend, err := parallel.ParseBackend(f.backend)
	if err != nil {
		return nil, err
	}
	return parallel.New(
		parallel.WithBackend(backend),
		parallel.WithWorkers(f.workers),
		parallel.WithCoreBinding(f.bind),
		parallel.WithLogger(log.WithBackend(backend.String()).Logger),
	), nil
}
