// Command honeycomb-bench runs remeshing workloads against 2D combinatorial
// maps. Each subcommand is one workload; the resulting map can be saved as a
// .cmap or .vtk file, and a Prometheus snapshot of the run's counters can be
// dumped alongside.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
