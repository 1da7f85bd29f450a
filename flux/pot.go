package flux

// POTPerCycle returns the number of protons on target corresponding to one
// cycle of the flux ntuple. Neutrinos are de-weighted by the maximum flux
// weight, so the file normalization is scaled by the same factor.
func (d *Driver) POTPerCycle() float64 {
	if !d.loaded {
		d.log.Warn("flux driver has not been loaded")
		return 0
	}
	return d.cfg.FilePOT / d.stats.MaxWeight
}

// POTCurrentAvg returns the number of protons on target corresponding to
// the neutrinos generated so far. It is exact at the end of a cycle and an
// average within a cycle.
func (d *Driver) POTCurrentAvg() float64 {
	if !d.loaded {
		d.log.Warn("flux driver has not been loaded")
		return 0
	}
	cnt := float64(d.nNeutrinos)
	cnt1c := float64(d.stats.Matching)
	return cnt / cnt1c * d.POTPerCycle()
}
