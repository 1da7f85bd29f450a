package main

import (
	"go-hep.org/x/hep/hbook"
)

// EnergyGrid bins flux neutrino positions on a plane. Z is the number of
// neutrinos per bin, or their mean energy when Energy is set.
type EnergyGrid struct {
	Energy bool

	hCount, hE     *hbook.H2D
	nBinsX, nBinsY int
}

func NewEnergyGrid(nBinsX int, xLow, xHigh float64, nBinsY int, yLow, yHigh float64) *EnergyGrid {
	return &EnergyGrid{
		hCount: hbook.NewH2D(nBinsX, xLow, xHigh, nBinsY, yLow, yHigh),
		hE:     hbook.NewH2D(nBinsX, xLow, xHigh, nBinsY, yLow, yHigh),
		nBinsX: nBinsX,
		nBinsY: nBinsY,
	}
}

func (g *EnergyGrid) Fill(x, y, e float64) {
	g.hCount.Fill(x, y, 1)
	g.hE.Fill(x, y, e)
}

func (g *EnergyGrid) Dims() (int, int) {
	return g.nBinsX, g.nBinsY
}

func (g *EnergyGrid) Z(i, j int) float64 {
	n := g.hCount.GridXYZ().Z(i, j)
	if !g.Energy {
		return n
	}
	if n == 0 {
		return 0
	}
	return g.hE.GridXYZ().Z(i, j) / n
}

func (g *EnergyGrid) X(i int) float64 {
	return g.hCount.GridXYZ().X(i)
}

func (g *EnergyGrid) Y(j int) float64 {
	return g.hCount.GridXYZ().Y(j)
}

// Max returns the largest value of the map.
func (g *EnergyGrid) Max() float64 {
	var max float64
	for i := 0; i < g.nBinsX; i++ {
		for j := 0; j < g.nBinsY; j++ {
			if z := g.Z(i, j); z > max {
				max = z
			}
		}
	}
	return max
}
