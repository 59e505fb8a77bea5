package cmap

import (
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// OneLink links lhs to rhs through beta1. When both darts have beta3
// images the mirrored face gets the inverse link, keeping the two face
// loops consistent.
func (m *CMap3) OneLink(tx *stm.Tx, lhs, rhs DartID) error {
	if err := m.betas.oneLink(tx, lhs, rhs); err != nil {
		return err
	}
	b3lhs, err := m.betas.read(tx, 3, lhs)
	if err != nil {
		return err
	}
	b3rhs, err := m.betas.read(tx, 3, rhs)
	if err != nil {
		return err
	}
	if b3lhs != NullDart && b3rhs != NullDart {
		return m.betas.oneLink(tx, b3rhs, b3lhs)
	}
	return nil
}

// ForceOneLink is the auto-retried form of OneLink.
func (m *CMap3) ForceOneLink(lhs, rhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.OneLink(tx, lhs, rhs)
	})
}

// OneUnlink clears the beta1 image of lhs, together with the mirrored
// entry when lhs sits on a 3-linked face. A mirror that does not hold the
// inverse link aborts with ErrAsymmetricalFaces.
func (m *CMap3) OneUnlink(tx *stm.Tx, lhs DartID) error {
	rhs, err := m.betas.read(tx, 1, lhs)
	if err != nil {
		return err
	}
	if err := m.betas.oneUnlink(tx, lhs); err != nil {
		return err
	}
	b3lhs, err := m.betas.read(tx, 3, lhs)
	if err != nil {
		return err
	}
	b3rhs, err := m.betas.read(tx, 3, rhs)
	if err != nil {
		return err
	}
	if b3lhs != NullDart && b3rhs != NullDart {
		mirror, err := m.betas.read(tx, 1, b3rhs)
		if err != nil {
			return err
		}
		if mirror != b3lhs {
			return stm.Abort(&LinkError{Dim: 1, Lhs: lhs, Rhs: rhs, Err: ErrAsymmetricalFaces})
		}
		return m.betas.oneUnlink(tx, b3rhs)
	}
	return nil
}

// ForceOneUnlink is the auto-retried form of OneUnlink.
func (m *CMap3) ForceOneUnlink(lhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.OneUnlink(tx, lhs)
	})
}

// TwoLink links lhs and rhs symmetrically through beta2.
func (m *CMap3) TwoLink(tx *stm.Tx, lhs, rhs DartID) error {
	return m.betas.twoLink(tx, lhs, rhs)
}

// ForceTwoLink is the auto-retried form of TwoLink.
func (m *CMap3) ForceTwoLink(lhs, rhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.betas.twoLink(tx, lhs, rhs)
	})
}

// TwoUnlink clears the symmetric beta2 images of lhs and its image.
func (m *CMap3) TwoUnlink(tx *stm.Tx, lhs DartID) error {
	return m.betas.twoUnlink(tx, lhs)
}

// ForceTwoUnlink is the auto-retried form of TwoUnlink.
func (m *CMap3) ForceTwoUnlink(lhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.betas.twoUnlink(tx, lhs)
	})
}

// ThreeLink links the faces of lhs and rhs through beta3, pairing every
// dart of the two face loops in opposite traversal directions. Loops of
// different lengths abort with ErrAsymmetricalFaces.
func (m *CMap3) ThreeLink(tx *stm.Tx, lhs, rhs DartID) error {
	if err := m.betas.threeLinkCore(tx, lhs, rhs); err != nil {
		return err
	}
	lside, err := m.betas.read(tx, 1, lhs)
	if err != nil {
		return err
	}
	rside, err := m.betas.read(tx, 0, rhs)
	if err != nil {
		return err
	}
	for lside != lhs && lside != NullDart {
		b1l, err := m.betas.read(tx, 1, lside)
		if err != nil {
			return err
		}
		if rside == NullDart {
			return stm.Abort(&LinkError{Dim: 3, Lhs: lhs, Rhs: rhs, Err: ErrAsymmetricalFaces})
		}
		if err := m.betas.threeLinkCore(tx, lside, rside); err != nil {
			return err
		}
		if rside, err = m.betas.read(tx, 0, rside); err != nil {
			return err
		}
		lside = b1l
	}
	if lside == NullDart {
		// open face: walk the other direction from the seeds
		if rside != NullDart {
			return stm.Abort(&LinkError{Dim: 3, Lhs: lhs, Rhs: rhs, Err: ErrAsymmetricalFaces})
		}
		if lside, err = m.betas.read(tx, 0, lhs); err != nil {
			return err
		}
		if rside, err = m.betas.read(tx, 1, rhs); err != nil {
			return err
		}
		for lside != NullDart {
			if rside == NullDart {
				return stm.Abort(&LinkError{Dim: 3, Lhs: lhs, Rhs: rhs, Err: ErrAsymmetricalFaces})
			}
			if err := m.betas.threeLinkCore(tx, lside, rside); err != nil {
				return err
			}
			if lside, err = m.betas.read(tx, 0, lside); err != nil {
				return err
			}
			if rside, err = m.betas.read(tx, 1, rside); err != nil {
				return err
			}
		}
	}
	return nil
}

// ForceThreeLink is the auto-retried form of ThreeLink.
func (m *CMap3) ForceThreeLink(lhs, rhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.ThreeLink(tx, lhs, rhs)
	})
}

// ThreeUnlink clears the beta3 pairing of the faces of lhs and its
// image, walking both loops the way ThreeLink paired them. A pairing that
// does not mirror the walk aborts with ErrAsymmetricalFaces.
func (m *CMap3) ThreeUnlink(tx *stm.Tx, lhs DartID) error {
	rhs, err := m.betas.read(tx, 3, lhs)
	if err != nil {
		return err
	}
	if err := m.betas.threeUnlinkCore(tx, lhs); err != nil {
		return err
	}
	lside, err := m.betas.read(tx, 1, lhs)
	if err != nil {
		return err
	}
	rside, err := m.betas.read(tx, 0, rhs)
	if err != nil {
		return err
	}
	for lside != lhs && lside != NullDart {
		b1l, err := m.betas.read(tx, 1, lside)
		if err != nil {
			return err
		}
		mirror, err := m.betas.read(tx, 3, rside)
		if err != nil {
			return err
		}
		if mirror != lside {
			return stm.Abort(&LinkError{Dim: 3, Lhs: lhs, Rhs: rhs, Err: ErrAsymmetricalFaces})
		}
		if err := m.betas.threeUnlinkCore(tx, lside); err != nil {
			return err
		}
		if rside, err = m.betas.read(tx, 0, rside); err != nil {
			return err
		}
		lside = b1l
	}
	if lside == NullDart {
		if rside != NullDart {
			return stm.Abort(&LinkError{Dim: 3, Lhs: lhs, Rhs: rhs, Err: ErrAsymmetricalFaces})
		}
		if lside, err = m.betas.read(tx, 0, lhs); err != nil {
			return err
		}
		if rside, err = m.betas.read(tx, 1, rhs); err != nil {
			return err
		}
		for lside != NullDart {
			mirror, err := m.betas.read(tx, 3, rside)
			if err != nil {
				return err
			}
			if mirror != lside {
				return stm.Abort(&LinkError{Dim: 3, Lhs: lhs, Rhs: rhs, Err: ErrAsymmetricalFaces})
			}
			if err := m.betas.threeUnlinkCore(tx, lside); err != nil {
				return err
			}
			if lside, err = m.betas.read(tx, 0, lside); err != nil {
				return err
			}
			if rside, err = m.betas.read(tx, 1, rside); err != nil {
				return err
			}
		}
	}
	return nil
}

// ForceThreeUnlink is the auto-retried form of ThreeUnlink.
func (m *CMap3) ForceThreeUnlink(lhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.ThreeUnlink(tx, lhs)
	})
}
