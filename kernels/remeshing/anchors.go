package remeshing

import (
	"fmt"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/attributes"
)

// AnchorDim classifies the geometric entity an anchor points at, from
// 0-dimensional nodes up to 3D bodies. Lower dimensions are more
// constrained: merging two anchors keeps the lower-dimensional one.
type AnchorDim int

const (
	// AnchorNode pins a cell to a geometric node.
	AnchorNode AnchorDim = iota
	// AnchorCurve constrains a cell to a geometric curve.
	AnchorCurve
	// AnchorSurface constrains a cell to a geometric surface.
	AnchorSurface
	// AnchorBody constrains a cell to a 3D body interior.
	AnchorBody
)

func (d AnchorDim) String() string {
	switch d {
	case AnchorNode:
		return "node"
	case AnchorCurve:
		return "curve"
	case AnchorSurface:
		return "surface"
	case AnchorBody:
		return "body"
	default:
		return "unknown"
	}
}

// mergeAnchors keeps the more constrained (lower-dimensional) anchor; two
// anchors of the same dimension must reference the same entity.
func mergeAnchors(kind string, lhs, rhs AnchorDim, lhsID, rhsID uint32) (AnchorDim, uint32, error) {
	switch {
	case lhs < rhs:
		return lhs, lhsID, nil
	case rhs < lhs:
		return rhs, rhsID, nil
	case lhsID == rhsID:
		return lhs, lhsID, nil
	default:
		return 0, 0, &attributes.UpdateError{
			Op:   "merge",
			Attr: kind,
			Err:  fmt.Errorf("distinct %s anchors %d and %d", lhs, lhsID, rhsID),
		}
	}
}

// VertexAnchor pins a mesh vertex to the geometric entity it discretizes.
type VertexAnchor struct {
	Dim AnchorDim
	ID  uint32
}

// Merge keeps the lower-dimensional anchor of the two.
func (a VertexAnchor) Merge(other VertexAnchor) (VertexAnchor, error) {
	dim, id, err := mergeAnchors("VertexAnchor", a.Dim, other.Dim, a.ID, other.ID)
	if err != nil {
		return VertexAnchor{}, err
	}
	return VertexAnchor{Dim: dim, ID: id}, nil
}

// Split duplicates the anchor onto both output vertices.
func (a VertexAnchor) Split() (VertexAnchor, VertexAnchor, error) {
	return a, a, nil
}

// MergeIncomplete keeps the present anchor.
func (a VertexAnchor) MergeIncomplete() (VertexAnchor, error) {
	return a, nil
}

// BindsTo marks the anchor as a 0-cell attribute.
func (VertexAnchor) BindsTo() attributes.CellKind {
	return attributes.VertexCell
}

// EdgeAnchor constrains a mesh edge to a curve, surface or body. Edges
// cannot be anchored to nodes.
type EdgeAnchor struct {
	Dim AnchorDim
	ID  uint32
}

// Merge keeps the lower-dimensional anchor of the two.
func (a EdgeAnchor) Merge(other EdgeAnchor) (EdgeAnchor, error) {
	dim, id, err := mergeAnchors("EdgeAnchor", a.Dim, other.Dim, a.ID, other.ID)
	if err != nil {
		return EdgeAnchor{}, err
	}
	return EdgeAnchor{Dim: dim, ID: id}, nil
}

// Split duplicates the anchor onto both output edges.
func (a EdgeAnchor) Split() (EdgeAnchor, EdgeAnchor, error) {
	return a, a, nil
}

// MergeIncomplete keeps the present anchor.
func (a EdgeAnchor) MergeIncomplete() (EdgeAnchor, error) {
	return a, nil
}

// BindsTo marks the anchor as a 1-cell attribute.
func (EdgeAnchor) BindsTo() attributes.CellKind {
	return attributes.EdgeCell
}

// FaceAnchor constrains a mesh face to a surface or body.
type FaceAnchor struct {
	Dim AnchorDim
	ID  uint32
}

// Merge keeps the lower-dimensional anchor of the two.
func (a FaceAnchor) Merge(other FaceAnchor) (FaceAnchor, error) {
	dim, id, err := mergeAnchors("FaceAnchor", a.Dim, other.Dim, a.ID, other.ID)
	if err != nil {
		return FaceAnchor{}, err
	}
	return FaceAnchor{Dim: dim, ID: id}, nil
}

// Split duplicates the anchor onto both output faces.
func (a FaceAnchor) Split() (FaceAnchor, FaceAnchor, error) {
	return a, a, nil
}

// MergeIncomplete keeps the present anchor.
func (a FaceAnchor) MergeIncomplete() (FaceAnchor, error) {
	return a, nil
}

// BindsTo marks the anchor as a 2-cell attribute.
func (FaceAnchor) BindsTo() attributes.CellKind {
	return attributes.FaceCell
}
