package cmap

// DartID is the handle of a dart. The zero value is the null dart, used as
// the absent image of every beta function.
type DartID uint32

// Cell identifiers are the minimum dart id of the cell's orbit. They share
// the dart id space but are distinct types so signatures state which kind
// of cell they expect.
type (
	VertexID uint32
	EdgeID   uint32
	FaceID   uint32
	VolumeID uint32
)

const (
	NullDart   DartID   = 0
	NullVertex VertexID = 0
	NullEdge   EdgeID   = 0
	NullFace   FaceID   = 0
	NullVolume VolumeID = 0
)

func minDart(a, b DartID) DartID {
	if a < b {
		return a
	}
	return b
}

func maxDart(a, b DartID) DartID {
	if a > b {
		return a
	}
	return b
}
