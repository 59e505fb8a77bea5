package attributes

// CellKind identifies the kind of topological cell an attribute binds to.
type CellKind int

const (
	// VertexCell binds an attribute to 0-cells.
	VertexCell CellKind = iota
	// EdgeCell binds an attribute to 1-cells.
	EdgeCell
	// FaceCell binds an attribute to 2-cells.
	FaceCell
	// VolumeCell binds an attribute to 3-cells.
	VolumeCell

	numCellKinds
)

func (k CellKind) String() string {
	switch k {
	case VertexCell:
		return "vertex"
	case EdgeCell:
		return "edge"
	case FaceCell:
		return "face"
	case VolumeCell:
		return "volume"
	default:
		return "unknown"
	}
}

// Behavior describes how values of an attribute type react to topological
// updates. Merge is called with the receiver as the left input when a sew
// unifies two cells; Split is called when an unsew separates one cell into
// two.
type Behavior[A any] interface {
	Merge(other A) (A, error)
	Split() (A, A, error)
}

// Attribute is the full contract a stored attribute type satisfies: update
// behavior plus the cell kind it binds to. BindsTo must be callable on the
// zero value.
type Attribute[A any] interface {
	Behavior[A]
	BindsTo() CellKind
}

// IncompleteMerger is the optional fallback consulted when a merge finds a
// value on only one of the two input cells. The receiver is the present
// value.
type IncompleteMerger[A any] interface {
	MergeIncomplete() (A, error)
}

// NoneMerger is the optional fallback consulted, on the zero value, when a
// merge finds neither input cell populated.
type NoneMerger[A any] interface {
	MergeFromNone() (A, error)
}

// NoneSplitter is the optional fallback consulted, on the zero value, when
// a split finds the input cell unpopulated.
type NoneSplitter[A any] interface {
	SplitFromNone() (A, A, error)
}

// mergeIncomplete applies the IncompleteMerger fallback of val, defaulting
// to ErrInsufficientData.
func mergeIncomplete[A Behavior[A]](val A) (A, error) {
	if m, ok := any(val).(IncompleteMerger[A]); ok {
		return m.MergeIncomplete()
	}
	var zero A
	return zero, ErrInsufficientData
}

// mergeFromNone applies the NoneMerger fallback of A, defaulting to
// ErrInsufficientData.
func mergeFromNone[A Behavior[A]]() (A, error) {
	var zero A
	if m, ok := any(zero).(NoneMerger[A]); ok {
		return m.MergeFromNone()
	}
	return zero, ErrInsufficientData
}

// splitFromNone applies the NoneSplitter fallback of A, defaulting to
// ErrInsufficientData.
func splitFromNone[A Behavior[A]]() (A, A, error) {
	var zero A
	if s, ok := any(zero).(NoneSplitter[A]); ok {
		return s.SplitFromNone()
	}
	return zero, zero, ErrInsufficientData
}
