package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"

	honeycomb "github.com/LIHPC-Computational-Geometry/honeycomb-sub001"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmapfile"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/vtk"
)

// Run-wide counters, exposed through the --metrics flag.
var (
	retriesTotal   = metrics.NewCounter(`honeycomb_transaction_retries_total`)
	edgesCutTotal  = metrics.NewCounter(`honeycomb_edges_cut_total`)
	vertexShifts   = metrics.NewCounter(`honeycomb_vertex_shifts_total`)
	batchDurations = metrics.NewSummary(`honeycomb_batch_duration_seconds`)
)

type rootFlags struct {
	saveAs      string
	output      string
	metricsPath string
	verbose     bool
}

// logger builds the run logger; --verbose lowers the level to debug.
func (f *rootFlags) logger() *honeycomb.Logger {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	return honeycomb.NewTextLogger(level)
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "honeycomb-bench",
		Short:         "Remeshing workloads over 2D combinatorial maps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.saveAs, "save-as", "", "serialize the resulting map (cmap or vtk)")
	cmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "out", "output path prefix for --save-as")
	cmd.PersistentFlags().StringVar(&flags.metricsPath, "metrics", "", "write a Prometheus snapshot of run counters to this file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newGridCmd(flags),
		newCutEdgesCmd(flags),
		newShiftCmd(flags),
	)
	return cmd
}

// finish serializes the resulting map and the metrics snapshot according to
// the root flags.
func (f *rootFlags) finish(m *cmap.CMap2) error {
	switch f.saveAs {
	case "":
	case "cmap":
		if err := cmapfile.Save2(f.output+".cmap", m); err != nil {
			return err
		}
	case "vtk":
		if err := vtk.Save2(f.output+".vtk", m); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q (want cmap or vtk)", f.saveAs)
	}

	if f.metricsPath != "" {
		out, err := os.Create(f.metricsPath)
		if err != nil {
			return err
		}
		metrics.WritePrometheus(out, false)
		return out.Close()
	}
	return nil
}
