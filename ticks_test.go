package jnuflux

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreciseTicks(t *testing.T) {
	ticks := PreciseTicks{}.Ticks(0, 25)

	var labels []string
	for _, tick := range ticks {
		assert.True(t, tick.Value >= 0 && tick.Value <= 25, "tick %v out of range", tick.Value)
		if tick.Label != "" {
			labels = append(labels, tick.Label)
		}
	}
	assert.Equal(t, []string{"0", "8", "16", "24"}, labels)
	assert.Len(t, ticks, 7)

	assert.Panics(t, func() { PreciseTicks{}.Ticks(1, 1) })
}

func TestPreciseTicksNegativeRange(t *testing.T) {
	var labels []string
	for _, tick := range (PreciseTicks{}).Ticks(-10, -2) {
		assert.False(t, math.IsNaN(tick.Value))
		if tick.Label != "" {
			labels = append(labels, tick.Label)
		}
	}
	assert.Equal(t, []string{"-10", "-8", "-6", "-4", "-2"}, labels)

	assert.Equal(t, 2, precision(0, 32, 8))
	assert.Equal(t, 1, precision(-10, 0, 2))
	assert.Equal(t, 1, precision(0, 0, 0.5))
}

func TestLogTicks(t *testing.T) {
	ticks := LogTicks{}.Ticks(0.1, 100)

	var labels []string
	for _, tick := range ticks {
		if tick.Label != "" {
			labels = append(labels, tick.Label)
		}
	}
	assert.Equal(t, []string{"0.1", "1", "10", "100"}, labels)
	assert.Len(t, ticks, 28)

	assert.Panics(t, func() { LogTicks{}.Ticks(0, 1) })
}
