package flux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpeciesFromMode(t *testing.T) {
	for _, tc := range []struct {
		mode int
		pdg  int
		ok   bool
	}{
		{11, PdgNuMu, true},
		{15, PdgNuMu, true},
		{19, PdgNuMu, true},
		{21, PdgAntiNuMu, true},
		{29, PdgAntiNuMu, true},
		{31, PdgNuE, true},
		{34, PdgNuE, true},
		{41, PdgAntiNuE, true},
		{49, PdgAntiNuE, true},
		{0, 0, false},
		{10, 0, false},
		{20, 0, false},
		{30, 0, false},
		{40, 0, false},
		{50, 0, false},
		{-11, 0, false},
	} {
		pdg, ok := SpeciesFromMode(tc.mode)
		assert.Equal(t, tc.ok, ok, "mode=%d", tc.mode)
		assert.Equal(t, tc.pdg, pdg, "mode=%d", tc.mode)
	}
}

func TestGeantToPdg(t *testing.T) {
	assert.Equal(t, 211, GeantToPdg(8))
	assert.Equal(t, -211, GeantToPdg(9))
	assert.Equal(t, 321, GeantToPdg(11))
	assert.Equal(t, 130, GeantToPdg(10))
	assert.Equal(t, -13, GeantToPdg(5))
	assert.Equal(t, -3334, GeantToPdg(32))
	assert.Equal(t, 0, GeantToPdg(33))
	assert.Equal(t, 0, GeantToPdg(-1))
	assert.Equal(t, "numubar", PdgName(PdgAntiNuMu))
	assert.Equal(t, "", PdgName(211))
}
