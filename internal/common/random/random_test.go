package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickerStaysInRange(t *testing.T) {
	p := New(&Config{Seed: 42})
	for i := 0; i < 1000; i++ {
		v := p.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestPickerIsReproducibleWithSeed(t *testing.T) {
	a := New(&Config{Seed: 7})
	b := New(&Config{Seed: 7})
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Int63n(1000), b.Int63n(1000))
	}
}

func TestPickerNonPositiveBound(t *testing.T) {
	p := New(nil)
	assert.Equal(t, 0, p.Intn(0))
	assert.Equal(t, int64(0), p.Int63n(-3))
}
