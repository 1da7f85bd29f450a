package jnuflux

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeciesFlags(t *testing.T) {
	species := SpeciesFlags{Array: []int{14, -14, 12, -12}}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&species, "species", "neutrino species")

	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, []int{14, -14, 12, -12}, species.Array)

	require.NoError(t, fs.Parse([]string{"-species", "nue,-12", "-species", "numu"}))
	assert.Equal(t, []int{12, -12, 14}, species.Array)
	assert.Equal(t, "[12 -12 14]", species.String())

	bad := SpeciesFlags{}
	assert.Error(t, bad.Set("nutau"))
	assert.Error(t, bad.Set("211"))
}
