package jnuflux

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/decibelcooper/jnuflux/flux"
)

// SpeciesFlags is a flag.Value collecting neutrino species, given either
// as PDG codes or names (numu, numubar, nue, nuebar), repeated or comma
// separated. The first Set replaces the default list.
type SpeciesFlags struct {
	Array   []int
	beenSet bool
}

func (f *SpeciesFlags) Set(valueStr string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	for _, s := range strings.Split(valueStr, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		pdg, err := parseSpecies(s)
		if err != nil {
			return err
		}
		f.Array = append(f.Array, pdg)
	}
	return nil
}

func (f *SpeciesFlags) String() string {
	return fmt.Sprint(f.Array)
}

func parseSpecies(s string) (int, error) {
	for _, pdg := range flux.DefaultSpecies {
		if flux.PdgName(pdg) == s {
			return pdg, nil
		}
	}
	pdg, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid neutrino species %q", s)
	}
	if flux.PdgName(pdg) == "" {
		return 0, fmt.Errorf("invalid neutrino species %q", s)
	}
	return pdg, nil
}
