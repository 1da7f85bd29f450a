package flux

// PDG codes of the flux neutrino species.
const (
	PdgNuE      = 12
	PdgAntiNuE  = -12
	PdgNuMu     = 14
	PdgAntiNuMu = -14
)

// DefaultSpecies lists the neutrino species generated unless configured
// otherwise.
var DefaultSpecies = []int{PdgNuMu, PdgAntiNuMu, PdgNuE, PdgAntiNuE}

// SpeciesFromMode infers the neutrino PDG code from a jnubeam decay mode.
//
//	11-19 numu      (pi+, K+, mu-, K+(3), K0(3), ...)
//	21-29 numu_bar  (pi-, K-, mu+, K-(3), K0(3), ...)
//	31-39 nue       (K+ Ke3, K0L Ke3, mu+, pi+, ...)
//	41-49 nue_bar   (K- Ke3, K0L Ke3, mu-, pi-, ...)
func SpeciesFromMode(mode int) (int, bool) {
	switch {
	case mode >= 11 && mode <= 19:
		return PdgNuMu, true
	case mode >= 21 && mode <= 29:
		return PdgAntiNuMu, true
	case mode >= 31 && mode <= 39:
		return PdgNuE, true
	case mode >= 41 && mode <= 49:
		return PdgAntiNuE, true
	}
	return 0, false
}

// PdgName returns a short name for the neutrino species, or "" if pdg is
// not a neutrino flux species.
func PdgName(pdg int) string {
	switch pdg {
	case PdgNuE:
		return "nue"
	case PdgAntiNuE:
		return "nuebar"
	case PdgNuMu:
		return "numu"
	case PdgAntiNuMu:
		return "numubar"
	}
	return ""
}

var geant3 = [...]int{
	0, 22, -11, 11, 0, -13, 13, 111, 211, -211,
	130, 321, -321, 2112, 2212, -2212, 310, 221, 3122, 3222,
	3212, 3112, 3322, 3312, 3334, -2112, -3122, -3222, -3212, -3112,
	-3322, -3312, -3334,
}

// GeantToPdg converts a Geant3 particle code (as stored for the neutrino
// parent) into a PDG code. Unknown codes map to 0.
func GeantToPdg(code int) int {
	if code < 0 || code >= len(geant3) {
		return 0
	}
	return geant3[code]
}
