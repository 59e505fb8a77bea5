package geometry

import (
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/attributes"
)

// Vertex2 is a position in the 2D plane, bound to the 0-cells of a 2-map.
type Vertex2 struct {
	X, Y float64
}

// NewVertex2 creates a vertex at (x, y).
func NewVertex2(x, y float64) Vertex2 {
	return Vertex2{X: x, Y: y}
}

// Average2 returns the midpoint of lhs and rhs.
func Average2(lhs, rhs Vertex2) Vertex2 {
	return Vertex2{X: (lhs.X + rhs.X) / 2, Y: (lhs.Y + rhs.Y) / 2}
}

// Sub returns the vector from other to v.
func (v Vertex2) Sub(other Vertex2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Add returns v translated by d.
func (v Vertex2) Add(d Vector2) Vertex2 {
	return Vertex2{X: v.X + d.X, Y: v.Y + d.Y}
}

// Merge averages the two positions.
func (v Vertex2) Merge(other Vertex2) (Vertex2, error) {
	return Average2(v, other), nil
}

// Split duplicates the position on both outputs.
func (v Vertex2) Split() (Vertex2, Vertex2, error) {
	return v, v, nil
}

// MergeIncomplete keeps the defined position when only one side of a merge
// carries a vertex.
func (v Vertex2) MergeIncomplete() (Vertex2, error) {
	return v, nil
}

// BindsTo reports that vertices attach to 0-cells.
func (Vertex2) BindsTo() attributes.CellKind {
	return attributes.VertexCell
}

// Vertex3 is a position in 3D space, bound to the 0-cells of a 3-map.
type Vertex3 struct {
	X, Y, Z float64
}

// NewVertex3 creates a vertex at (x, y, z).
func NewVertex3(x, y, z float64) Vertex3 {
	return Vertex3{X: x, Y: y, Z: z}
}

// Average3 returns the midpoint of lhs and rhs.
func Average3(lhs, rhs Vertex3) Vertex3 {
	return Vertex3{
		X: (lhs.X + rhs.X) / 2,
		Y: (lhs.Y + rhs.Y) / 2,
		Z: (lhs.Z + rhs.Z) / 2,
	}
}

// Sub returns the vector from other to v.
func (v Vertex3) Sub(other Vertex3) Vector3 {
	return Vector3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Add returns v translated by d.
func (v Vertex3) Add(d Vector3) Vertex3 {
	return Vertex3{X: v.X + d.X, Y: v.Y + d.Y, Z: v.Z + d.Z}
}

// Merge averages the two positions.
func (v Vertex3) Merge(other Vertex3) (Vertex3, error) {
	return Average3(v, other), nil
}

// Split duplicates the position on both outputs.
func (v Vertex3) Split() (Vertex3, Vertex3, error) {
	return v, v, nil
}

// MergeIncomplete keeps the defined position.
func (v Vertex3) MergeIncomplete() (Vertex3, error) {
	return v, nil
}

// BindsTo reports that vertices attach to 0-cells.
func (Vertex3) BindsTo() attributes.CellKind {
	return attributes.VertexCell
}
