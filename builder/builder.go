package builder

import (
	"strings"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmapfile"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/vtk"
)

// Builder assembles a 2-map from one of three sources: a saved file, a
// grid descriptor, or a plain dart count. Sources are checked in that
// order.
type Builder struct {
	nDarts  int
	hasN    bool
	grid    *GridDescriptor
	path    string
	mapOpts []cmap.Option
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{}
}

// NDarts sets the number of free darts of the built map.
func (b *Builder) NDarts(n int) *Builder {
	b.nDarts = n
	b.hasN = true
	return b
}

// Grid sets the grid descriptor source.
func (b *Builder) Grid(g GridDescriptor) *Builder {
	b.grid = &g
	return b
}

// FromFile sets a saved map as the source. The format follows the
// extension: .vtk is a legacy VTK file, anything else the native text
// format, optionally .gz or .lz4 compressed.
func (b *Builder) FromFile(path string) *Builder {
	b.path = path
	return b
}

// MapOptions forwards construction options (logger, attribute manager) to
// the built map.
func (b *Builder) MapOptions(opts ...cmap.Option) *Builder {
	b.mapOpts = append(b.mapOpts, opts...)
	return b
}

// Build assembles the map.
func (b *Builder) Build() (*cmap.CMap2, error) {
	switch {
	case b.path != "":
		if strings.HasSuffix(b.path, ".vtk") {
			return vtk.Load2(b.path, b.mapOpts...)
		}
		return cmapfile.Load2(b.path, b.mapOpts...)
	case b.grid != nil:
		n, l, err := b.grid.resolve()
		if err != nil {
			return nil, err
		}
		if b.grid.SplitQuads {
			return buildSplitGrid(b.grid.Origin, n, l, b.mapOpts), nil
		}
		return buildGrid(b.grid.Origin, n, l, b.mapOpts), nil
	case b.hasN:
		return cmap.NewCMap2(b.nDarts, b.mapOpts...), nil
	default:
		return nil, ErrNoSource
	}
}
