package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededSequenceRepeats(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestIntnBounds(t *testing.T) {
	r := New()
	assert.Zero(t, r.Intn(0))
	assert.Zero(t, r.Intn(-3))
	for i := 0; i < 100; i++ {
		n := r.Intn(7)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
	}
}

func TestPercentExtremes(t *testing.T) {
	r := New()
	for i := 0; i < 50; i++ {
		assert.False(t, r.Percent(0))
		assert.True(t, r.Percent(100))
	}
}
