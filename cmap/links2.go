package cmap

import (
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// OneLink links lhs to rhs through beta1, maintaining beta0 as the
// inverse. Pure adjacency edit: no attribute side effects. Both slots must
// be free or the transaction aborts with a LinkError.
func (m *CMap2) OneLink(tx *stm.Tx, lhs, rhs DartID) error {
	return m.betas.oneLink(tx, lhs, rhs)
}

// ForceOneLink is the auto-retried form of OneLink.
func (m *CMap2) ForceOneLink(lhs, rhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.betas.oneLink(tx, lhs, rhs)
	})
}

// OneUnlink clears the beta1 image of lhs and the inverse beta0 entry.
func (m *CMap2) OneUnlink(tx *stm.Tx, lhs DartID) error {
	return m.betas.oneUnlink(tx, lhs)
}

// ForceOneUnlink is the auto-retried form of OneUnlink.
func (m *CMap2) ForceOneUnlink(lhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.betas.oneUnlink(tx, lhs)
	})
}

// TwoLink links lhs and rhs symmetrically through beta2.
func (m *CMap2) TwoLink(tx *stm.Tx, lhs, rhs DartID) error {
	return m.betas.twoLink(tx, lhs, rhs)
}

// ForceTwoLink is the auto-retried form of TwoLink.
func (m *CMap2) ForceTwoLink(lhs, rhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.betas.twoLink(tx, lhs, rhs)
	})
}

// TwoUnlink clears the symmetric beta2 images of lhs and its image.
func (m *CMap2) TwoUnlink(tx *stm.Tx, lhs DartID) error {
	return m.betas.twoUnlink(tx, lhs)
}

// ForceTwoUnlink is the auto-retried form of TwoUnlink.
func (m *CMap2) ForceTwoUnlink(lhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.betas.twoUnlink(tx, lhs)
	})
}
