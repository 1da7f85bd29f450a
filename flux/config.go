package flux

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes the environment variables read by ConfigFromEnv.
const EnvPrefix = "JNUFLUX_"

// Config holds the flux driver options.
type Config struct {
	File     string `env:"FILE"`     // flux ntuple file
	Location string `env:"LOCATION"` // "sk", "nd1", ..., "nd50"

	Species      []int   `env:"SPECIES" envSeparator:","` // PDG codes to generate
	MaxEnergy    float64 `env:"MAX_ENERGY"`               // declared maximum neutrino energy (GeV)
	FilePOT      float64 `env:"FILE_POT"`                 // POT the flux file is normalized to
	UpstreamZ    float64 `env:"UPSTREAM_Z"`               // start z of near detector neutrinos (m)
	Cycles       int     `env:"CYCLES"`                   // number of ntuple cycles, 0 is unbounded
	Weighted     bool    `env:"WEIGHTED"`                 // emit the weighted stream
	RandomOffset bool    `env:"RANDOM_OFFSET"`            // start at a random entry
	Tolerance    float64 `env:"TOLERANCE"`                // slack on fractional weights above 1
}

// DefaultConfig returns the default flux driver options.
func DefaultConfig() Config {
	return Config{
		Species:      append([]int(nil), DefaultSpecies...),
		MaxEnergy:    25,
		FilePOT:      1e21,
		UpstreamZ:    -5,
		Cycles:       1,
		Weighted:     false,
		RandomOffset: true,
		Tolerance:    1e-6,
	}
}

// ConfigFromEnv returns the default options overridden by JNUFLUX_*
// environment variables.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return cfg, fmt.Errorf("flux: could not parse environment: %w", err)
	}
	return cfg, nil
}

func (cfg *Config) normalize() {
	if cfg.MaxEnergy < 0 {
		cfg.MaxEnergy = 0
	}
	if cfg.Cycles < 0 {
		cfg.Cycles = 0
	}
	if cfg.Tolerance < 0 {
		cfg.Tolerance = 0
	}
}
