package builder

import (
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
)

// buildGrid fills a fresh map with nx*ny quads, 4 darts each, row-major
// from the origin. Dart 1+4*(ix+nx*iy) starts the bottom edge of cell
// (ix, iy); its beta2 images point at the neighboring cells, null on the
// boundary.
func buildGrid(origin geometry.Vertex2, n [2]int, l [2]float64, opts []cmap.Option) *cmap.CMap2 {
	nx, ny := n[0], n[1]
	m := cmap.NewCMap2(4*nx*ny, opts...)

	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			d1 := cmap.DartID(1 + 4*(ix+nx*iy))
			d2, d3, d4 := d1+1, d1+2, d1+3

			down, right, up, left := cmap.NullDart, cmap.NullDart, cmap.NullDart, cmap.NullDart
			if iy > 0 {
				down = d3 - cmap.DartID(4*nx)
			}
			if ix < nx-1 {
				right = d2 + 6
			}
			if iy < ny-1 {
				up = d1 + cmap.DartID(4*nx)
			}
			if ix > 0 {
				left = d4 - 6
			}
			m.SetBetas(d1, [3]cmap.DartID{d4, d2, down})
			m.SetBetas(d2, [3]cmap.DartID{d1, d3, right})
			m.SetBetas(d3, [3]cmap.DartID{d2, d4, up})
			m.SetBetas(d4, [3]cmap.DartID{d3, d1, left})
		}
	}

	corner := func(ix, iy int) geometry.Vertex2 {
		return geometry.NewVertex2(
			origin.X+float64(ix)*l[0],
			origin.Y+float64(iy)*l[1],
		)
	}
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			d1 := cmap.DartID(1 + 4*(ix+nx*iy))
			m.ForceWriteVertex(m.VertexID(d1), corner(ix, iy))
		}
	}
	for ix := 0; ix < nx; ix++ {
		d4 := cmap.DartID(4 + 4*(ix+nx*(ny-1)))
		m.ForceWriteVertex(m.VertexID(d4), corner(ix, ny))
	}
	for iy := 0; iy < ny; iy++ {
		d2 := cmap.DartID(2 + 4*(nx-1+nx*iy))
		m.ForceWriteVertex(m.VertexID(d2), corner(nx, iy))
	}
	d3 := cmap.DartID(3 + 4*(nx-1+nx*(ny-1)))
	m.ForceWriteVertex(m.VertexID(d3), corner(nx, ny))

	return m
}

// buildSplitGrid fills a fresh map with nx*ny squares cut along their
// diagonal, 6 darts each: darts 1-3 form the lower-left triangle, darts
// 4-6 the upper-right one, 2-linked through the diagonal.
func buildSplitGrid(origin geometry.Vertex2, n [2]int, l [2]float64, opts []cmap.Option) *cmap.CMap2 {
	nx, ny := n[0], n[1]
	m := cmap.NewCMap2(6*nx*ny, opts...)

	corner := func(ix, iy int) geometry.Vertex2 {
		return geometry.NewVertex2(
			origin.X+float64(ix)*l[0],
			origin.Y+float64(iy)*l[1],
		)
	}

	for iy := 0; iy < ny-1; iy++ {
		for ix := 0; ix < nx-1; ix++ {
			d := splitSquare(m, nx, ix, iy)
			sewRight(m, d[4])
			sewUp(m, d[5], nx)
			m.ForceWriteVertex(m.VertexID(d[0]), corner(ix, iy))
		}
	}
	for ix := 0; ix < nx-1; ix++ {
		iy := ny - 1
		d := splitSquare(m, nx, ix, iy)
		sewRight(m, d[4])
		m.ForceWriteVertex(m.VertexID(d[0]), corner(ix, iy))
		m.ForceWriteVertex(m.VertexID(d[2]), corner(ix, iy+1))
	}
	for iy := 0; iy < ny-1; iy++ {
		ix := nx - 1
		d := splitSquare(m, nx, ix, iy)
		sewUp(m, d[5], nx)
		m.ForceWriteVertex(m.VertexID(d[0]), corner(ix, iy))
		m.ForceWriteVertex(m.VertexID(d[4]), corner(ix+1, iy))
	}
	{
		ix, iy := nx-1, ny-1
		d := splitSquare(m, nx, ix, iy)
		m.ForceWriteVertex(m.VertexID(d[0]), corner(ix, iy))
		m.ForceWriteVertex(m.VertexID(d[2]), corner(ix, iy+1))
		m.ForceWriteVertex(m.VertexID(d[4]), corner(ix+1, iy))
		m.ForceWriteVertex(m.VertexID(d[5]), corner(ix+1, iy+1))
	}

	return m
}

// splitSquare builds the two triangles of square (ix, iy) and 2-links
// them through the diagonal. Only the diagonal's beta2 pair is written:
// the outer edges' beta2 slots may already hold links installed by
// sewRight/sewUp from the left or below neighbor.
func splitSquare(m *cmap.CMap2, nx, ix, iy int) [6]cmap.DartID {
	d1 := cmap.DartID(1 + 6*(ix+nx*iy))
	d2, d3, d4, d5, d6 := d1+1, d1+2, d1+3, d1+4, d1+5

	m.SetBeta(0, d1, d3)
	m.SetBeta(1, d1, d2)
	m.SetBeta(0, d2, d1)
	m.SetBeta(1, d2, d3)
	m.SetBeta(0, d3, d2)
	m.SetBeta(1, d3, d1)
	m.SetBeta(0, d4, d6)
	m.SetBeta(1, d4, d5)
	m.SetBeta(0, d5, d4)
	m.SetBeta(1, d5, d6)
	m.SetBeta(0, d6, d5)
	m.SetBeta(1, d6, d4)
	m.SetBeta(2, d2, d4)
	m.SetBeta(2, d4, d2)

	return [6]cmap.DartID{d1, d2, d3, d4, d5, d6}
}

// sewRight 2-links the square's right edge (dart 5) to the next square's
// left edge (its dart 3).
func sewRight(m *cmap.CMap2, d5 cmap.DartID) {
	right := d5 + 4
	m.SetBeta(2, d5, right)
	m.SetBeta(2, right, d5)
}

// sewUp 2-links the square's top edge (dart 6) to the square above's
// bottom edge (its dart 1).
func sewUp(m *cmap.CMap2, d6 cmap.DartID, nx int) {
	up := d6 - 5 + cmap.DartID(6*nx)
	m.SetBeta(2, d6, up)
	m.SetBeta(2, up, d6)
}
