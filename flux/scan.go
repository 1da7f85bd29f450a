package flux

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Stats are the per-cycle totals of a flux ntuple, computed once at load.
type Stats struct {
	Entries   int64   // entries in the ntuple
	Matching  int64   // entries at the configured detector location
	SumWeight float64 // sum of weights of the matching entries
	MaxWeight float64 // maximum weight over all entries
	Negative  int64   // negative weights set to zero
}

// scan reads every entry of ds once. The maximum weight is taken over all
// entries, the sum and count only over entries at loc.
func scan(ds Dataset, b *Binding, rec *Record, loc Location, log *logrus.Entry) (Stats, error) {
	st := Stats{Entries: ds.Entries()}
	vars := b.Vars()

	for i := int64(0); i < st.Entries; i++ {
		if err := ds.Read(i, vars); err != nil {
			return st, fmt.Errorf("%w %d: %v", ErrRead, i, err)
		}
		if rec.Norm < 0 {
			st.Negative++
		}
		w := clampWeight(rec, log)
		if w > st.MaxWeight {
			st.MaxWeight = w
		}
		if !loc.Match(rec.Idfd) {
			continue
		}
		st.SumWeight += w
		st.Matching++
	}

	if st.Matching == 0 {
		return st, fmt.Errorf("%w: detector id %d", ErrNoLocation, loc.ID)
	}
	if st.MaxWeight <= 0 {
		return st, fmt.Errorf("%w: %g", ErrMaxWeight, st.MaxWeight)
	}
	return st, nil
}

// clampWeight sets a negative flux weight to zero and returns the weight.
func clampWeight(rec *Record, log *logrus.Entry) float64 {
	if rec.Norm < 0 {
		log.WithField("norm", rec.Norm).Error("negative flux weight, setting it to 0")
		rec.Norm = 0
	}
	return float64(rec.Norm)
}
