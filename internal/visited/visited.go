// Package visited provides the dart-marking set used by orbit traversals.
package visited

// Set tracks traversed darts using a bitset and a dirty list for fast reset.
// The null dart (id 0) is pre-marked so traversal code never enqueues it.
type Set struct {
	bits  []uint64
	dirty []uint32
}

// New creates a set sized for dart ids in [0, capacity).
func New(capacity int) *Set {
	s := &Set{
		bits:  make([]uint64, (capacity+63)/64),
		dirty: make([]uint32, 0, 64),
	}
	s.markNull()
	return s
}

func (s *Set) markNull() {
	if len(s.bits) == 0 {
		s.bits = make([]uint64, 1)
	}
	s.bits[0] |= 1
}

// Mark marks a dart as visited and reports whether it was unmarked before.
func (s *Set) Mark(id uint32) bool {
	wordIdx := int(id >> 6)
	bitMask := uint64(1) << (id & 63)

	if wordIdx >= len(s.bits) {
		s.grow(wordIdx + 1)
	}

	if s.bits[wordIdx]&bitMask != 0 {
		return false
	}
	s.bits[wordIdx] |= bitMask
	s.dirty = append(s.dirty, id)
	return true
}

// Marked returns true if the dart has been visited.
func (s *Set) Marked(id uint32) bool {
	wordIdx := int(id >> 6)
	if wordIdx >= len(s.bits) {
		return false
	}
	return s.bits[wordIdx]&(uint64(1)<<(id&63)) != 0
}

// Reset clears every dart marked since the last reset. The null dart stays
// marked.
func (s *Set) Reset() {
	for _, id := range s.dirty {
		wordIdx := int(id >> 6)
		bitMask := uint64(1) << (id & 63)
		s.bits[wordIdx] &^= bitMask
	}
	s.dirty = s.dirty[:0]
	s.markNull()
}

func (s *Set) grow(newLen int) {
	newCap := len(s.bits) * 2
	if newCap < newLen {
		newCap = newLen
	}

	newBits := make([]uint64, newCap)
	copy(newBits, s.bits)
	s.bits = newBits
}
