package visited

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_MarkAndReset(t *testing.T) {
	s := New(10)

	assert.True(t, s.Marked(0), "null dart is pre-marked")
	assert.False(t, s.Marked(3))

	assert.True(t, s.Mark(3))
	assert.False(t, s.Mark(3), "second mark reports already visited")
	assert.True(t, s.Marked(3))

	s.Reset()
	assert.False(t, s.Marked(3))
	assert.True(t, s.Marked(0), "null dart survives reset")
}

func TestSet_GrowsBeyondCapacity(t *testing.T) {
	s := New(4)

	assert.True(t, s.Mark(1000))
	assert.True(t, s.Marked(1000))
	assert.False(t, s.Marked(999))
}

func TestSet_ZeroCapacity(t *testing.T) {
	s := New(0)
	assert.True(t, s.Marked(0))
	assert.True(t, s.Mark(7))
}
