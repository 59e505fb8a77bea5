package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/builder"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/kernels/remeshing"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/parallel"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// shiftUnit is one interior vertex and the ids of its neighbors across
// beta2.
type shiftUnit struct {
	vid   cmap.VertexID
	neigh []cmap.VertexID
}

func newShiftCmd(flags *rootFlags) *cobra.Command {
	var (
		input   string
		nRounds int
		rf      runnerFlags
	)

	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Relax interior vertices toward their neighbor average",
		Long: `Run rounds of vertex relaxation: every vertex not on the map boundary
is moved to the average of its neighbors, one transaction per vertex. The
neighbor graph is computed once; only positions change between rounds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := flags.logger()
			m, err := builder.New().
				FromFile(input).
				MapOptions(cmap.WithLogger(log.Logger)).
				Build()
			if err != nil {
				return err
			}

			runner, err := rf.runner(log)
			if err != nil {
				return err
			}
			defer runner.Close()

			if err := shiftRounds(cmd, m, runner, nRounds); err != nil {
				return err
			}
			return flags.finish(m)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input map (.cmap or .vtk, optionally .gz or .lz4)")
	cmd.Flags().IntVar(&nRounds, "n-rounds", 100, "number of relaxation rounds")
	rf.install(cmd)
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func shiftRounds(cmd *cobra.Command, m *cmap.CMap2, runner *parallel.Runner, nRounds int) error {
	units := interiorVertices(m)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "| shift: %d interior vertices\n", len(units))
	fmt.Fprintln(out, " round | t_round(s) | vertices/s | n_retry")

	for round := 0; round < nRounds; round++ {
		begin := time.Now()
		retries, err := parallel.Process(cmd.Context(), runner, units, func(tx *stm.Tx, u shiftUnit) error {
			return remeshing.MoveVertexToAverage(tx, m, u.vid, u.neigh)
		})
		elapsed := time.Since(begin)
		if err != nil {
			return err
		}

		retriesTotal.Add(int(retries))
		vertexShifts.Add(len(units))
		batchDurations.Update(elapsed.Seconds())
		fmt.Fprintf(out, " %5d | %10.3e | %10.3e | %7d\n",
			round, elapsed.Seconds(), float64(len(units))/elapsed.Seconds(), retries)
	}
	return nil
}

// interiorVertices builds the relaxation units: vertices whose orbit never
// crosses the boundary, paired with their neighbor ids.
func interiorVertices(m *cmap.CMap2) []shiftUnit {
	var units []shiftUnit
	for _, v := range m.Vertices() {
		interior := true
		var neigh []cmap.VertexID
		for d := range m.Orbit(cmap.VertexOrbit, cmap.DartID(v)) {
			b2 := m.Beta(2, d)
			if b2 == cmap.NullDart {
				interior = false
				break
			}
			neigh = append(neigh, m.VertexID(b2))
		}
		if interior {
			units = append(units, shiftUnit{vid: v, neigh: neigh})
		}
	}
	return units
}
