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

// cutUnit is one edge to cut together with its pre-allocated darts. Outer
// edges use the first three darts; the rest are reclaimed by the free-dart
// sweep after the batch.
type cutUnit struct {
	edge  cmap.EdgeID
	darts [6]cmap.DartID
}

func newCutEdgesCmd(flags *rootFlags) *cobra.Command {
	var (
		input     string
		targetLen float64
		rf        runnerFlags
	)

	cmd := &cobra.Command{
		Use:   "cut-edges",
		Short: "Cut every edge of a triangle mesh down to a target length",
		Long: `Repeatedly split edges longer than the target length in a triangle
mesh, inserting the midpoint vertex and re-triangulating the incident faces.
Each batch of cuts runs in parallel, one transaction per edge.`,
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

			if err := cutAllEdges(cmd, m, runner, targetLen); err != nil {
				return err
			}
			return flags.finish(m)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input map (.cmap or .vtk, optionally .gz or .lz4)")
	cmd.Flags().Float64VarP(&targetLen, "target-length", "l", 0, "edge length threshold")
	rf.install(cmd)
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("target-length")
	return cmd
}

func cutAllEdges(cmd *cobra.Command, m *cmap.CMap2, runner *parallel.Runner, targetLen float64) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, " step | n_edges | n_to_cut | t_batch(s) | n_retry")

	edges := longEdges(m, targetLen)
	for step := 0; len(edges) > 0; step++ {
		// 2 darts for the edge split plus 2 per neighboring face.
		start := m.AddFreeDarts(6 * len(edges))
		units := make([]cutUnit, len(edges))
		for i, e := range edges {
			u := cutUnit{edge: e}
			for j := range u.darts {
				u.darts[j] = start + cmap.DartID(6*i+j)
			}
			units[i] = u
		}

		begin := time.Now()
		retries, err := parallel.Process(cmd.Context(), runner, units, func(tx *stm.Tx, u cutUnit) error {
			if m.IsIFree(2, cmap.DartID(u.edge)) {
				return remeshing.CutOuterEdge(tx, m, u.edge, [3]cmap.DartID{u.darts[0], u.darts[1], u.darts[2]})
			}
			return remeshing.CutInnerEdge(tx, m, u.edge, u.darts)
		})
		elapsed := time.Since(begin)
		if err != nil {
			return err
		}

		retriesTotal.Add(int(retries))
		edgesCutTotal.Add(len(units))
		batchDurations.Update(elapsed.Seconds())
		fmt.Fprintf(out, " %4d | %7d | %8d | %10.3e | %7d\n",
			step, len(m.Edges()), len(units), elapsed.Seconds(), retries)

		releaseFreeDarts(m)
		edges = longEdges(m, targetLen)
	}
	return nil
}

// longEdges returns the edges whose endpoints are both embedded and whose
// length exceeds targetLen.
func longEdges(m *cmap.CMap2, targetLen float64) []cmap.EdgeID {
	var out []cmap.EdgeID
	for _, e := range m.Edges() {
		d := cmap.DartID(e)
		v1, ok1 := m.ForceReadVertex(m.VertexID(d))
		v2, ok2 := m.ForceReadVertex(m.VertexID(m.Beta(1, d)))
		if ok1 && ok2 && v2.Sub(v1).Norm() > targetLen {
			out = append(out, e)
		}
	}
	return out
}

// releaseFreeDarts reclaims darts that were pre-allocated for a batch but
// never linked, so they do not pollute cell iteration.
func releaseFreeDarts(m *cmap.CMap2) {
	for d := cmap.DartID(1); int(d) <= m.NDarts(); d++ {
		if m.IsFree(d) && !m.IsUnusedAtomic(d) {
			_, _ = m.ForceReleaseDart(d)
		}
	}
}
