package flux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []int{14, -14, 12, -12}, cfg.Species)
	assert.Equal(t, 25.0, cfg.MaxEnergy)
	assert.Equal(t, 1e21, cfg.FilePOT)
	assert.Equal(t, -5.0, cfg.UpstreamZ)
	assert.Equal(t, 1, cfg.Cycles)
	assert.False(t, cfg.Weighted)
	assert.True(t, cfg.RandomOffset)

	// the defaults must not alias the package level species list.
	cfg.Species[0] = 0
	assert.Equal(t, PdgNuMu, DefaultSpecies[0])
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("JNUFLUX_FILE", "/data/flux.root")
	t.Setenv("JNUFLUX_LOCATION", "nd5")
	t.Setenv("JNUFLUX_SPECIES", "12,-12")
	t.Setenv("JNUFLUX_MAX_ENERGY", "30")
	t.Setenv("JNUFLUX_CYCLES", "0")
	t.Setenv("JNUFLUX_RANDOM_OFFSET", "false")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/data/flux.root", cfg.File)
	assert.Equal(t, "nd5", cfg.Location)
	assert.Equal(t, []int{12, -12}, cfg.Species)
	assert.Equal(t, 30.0, cfg.MaxEnergy)
	assert.Equal(t, 0, cfg.Cycles)
	assert.False(t, cfg.RandomOffset)
	assert.Equal(t, 1e21, cfg.FilePOT)
	assert.Equal(t, -5.0, cfg.UpstreamZ)

	t.Setenv("JNUFLUX_CYCLES", "many")
	_, err = ConfigFromEnv()
	assert.Error(t, err)
}
