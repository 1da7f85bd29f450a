package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnergyGrid(t *testing.T) {
	g := NewEnergyGrid(2, -1, 1, 2, -1, 1)
	g.Fill(-0.5, -0.5, 1)
	g.Fill(-0.5, -0.5, 3)
	g.Fill(0.5, 0.5, 4)

	nx, ny := g.Dims()
	assert.Equal(t, 2, nx)
	assert.Equal(t, 2, ny)
	assert.Equal(t, -0.5, g.X(0))
	assert.Equal(t, 0.5, g.Y(1))

	assert.Equal(t, 2.0, g.Z(0, 0))
	assert.Equal(t, 1.0, g.Z(1, 1))
	assert.Equal(t, 0.0, g.Z(1, 0))
	assert.Equal(t, 2.0, g.Max())

	g.Energy = true
	assert.Equal(t, 2.0, g.Z(0, 0))
	assert.Equal(t, 4.0, g.Z(1, 1))
	assert.Equal(t, 0.0, g.Z(0, 1))
	assert.Equal(t, 4.0, g.Max())
}
