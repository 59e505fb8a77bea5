package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/builder"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
)

func newGridCmd(flags *rootFlags) *cobra.Command {
	var split bool

	cmd := &cobra.Command{
		Use:   "generate-2d-grid NX NY LX LY",
		Short: "Generate an orthogonal 2D grid",
		Long: `Generate an NX x NY grid of quads with cell lengths LX and LY.
With --split, every quad is cut into two triangles along its diagonal.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			nx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("NX: %w", err)
			}
			ny, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("NY: %w", err)
			}
			lx, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("LX: %w", err)
			}
			ly, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("LY: %w", err)
			}

			start := time.Now()
			m, err := builder.New().
				Grid(builder.GridDescriptor{
					NCells:     [2]int{nx, ny},
					CellLen:    [2]float64{lx, ly},
					SplitQuads: split,
				}).
				MapOptions(cmap.WithLogger(flags.logger().Logger)).
				Build()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"| generate-2d-grid: %dx%d cells, %d darts, built in %dms\n",
				nx, ny, m.NDarts(), time.Since(start).Milliseconds())
			return flags.finish(m)
		},
	}
	cmd.Flags().BoolVar(&split, "split", false, "split every quad into two triangles")
	return cmd
}
