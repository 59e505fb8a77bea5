package cmap

import "fmt"

type orbitKind int

const (
	orbitVertex orbitKind = iota
	orbitVertexLinear
	orbitEdge
	orbitFace
	orbitFaceLinear
	orbitVolume
	orbitVolumeLinear
	orbitCustom
)

// OrbitPolicy selects which beta compositions an orbit traversal expands
// through. The built-in policies adapt to the map's dimension; a custom
// policy applies a fixed ordered list of single beta functions.
//
// Traversal is breadth-first from the seed dart; neighbor functions are
// applied in the policy's declared order on every visited dart, so for a
// fixed map state the resulting sequence is exactly reproducible.
type OrbitPolicy struct {
	kind  orbitKind
	betas []int
}

var (
	// VertexOrbit covers all darts of a 0-cell.
	VertexOrbit = OrbitPolicy{kind: orbitVertex}
	// VertexLinearOrbit walks a 0-cell in one rotational direction only;
	// complete on interior vertices, cheaper than VertexOrbit.
	VertexLinearOrbit = OrbitPolicy{kind: orbitVertexLinear}
	// EdgeOrbit covers all darts of a 1-cell.
	EdgeOrbit = OrbitPolicy{kind: orbitEdge}
	// FaceOrbit covers all darts of a 2-cell.
	FaceOrbit = OrbitPolicy{kind: orbitFace}
	// FaceLinearOrbit walks a face loop through beta1 only; complete when
	// the face loop is closed.
	FaceLinearOrbit = OrbitPolicy{kind: orbitFaceLinear}
	// VolumeOrbit covers all darts of a 3-cell. 3-maps only.
	VolumeOrbit = OrbitPolicy{kind: orbitVolume}
	// VolumeLinearOrbit walks a 3-cell without beta0 backtracking. 3-maps
	// only.
	VolumeLinearOrbit = OrbitPolicy{kind: orbitVolumeLinear}
)

// CustomOrbit builds a policy expanding through the listed beta functions,
// applied in order. An empty list is a programming error and panics.
func CustomOrbit(betas ...int) OrbitPolicy {
	if len(betas) == 0 {
		panic("cmap: custom orbit policy needs at least one beta function")
	}
	for _, i := range betas {
		if i < 0 || i > 3 {
			panic(fmt.Sprintf("cmap: beta index %d out of range", i))
		}
	}
	return OrbitPolicy{kind: orbitCustom, betas: betas}
}

func (p OrbitPolicy) String() string {
	switch p.kind {
	case orbitVertex:
		return "vertex"
	case orbitVertexLinear:
		return "vertex-linear"
	case orbitEdge:
		return "edge"
	case orbitFace:
		return "face"
	case orbitFaceLinear:
		return "face-linear"
	case orbitVolume:
		return "volume"
	case orbitVolumeLinear:
		return "volume-linear"
	case orbitCustom:
		return fmt.Sprintf("custom%v", p.betas)
	default:
		return "unknown"
	}
}
