// Package flux replays jnubeam flux ntuples as a stream of flux neutrinos
// for the event generation driver.
//
// The driver scans the whole ntuple once at load time to get the maximum
// flux weight and the per-cycle totals at the requested detector location,
// then walks the ntuple cyclically from a (by default random) offset.
// Neutrinos are de-weighted with the rejection method unless the weighted
// stream is requested.
//
// A Driver is not safe for concurrent use.
package flux

import (
	"fmt"
	"math"
	"math/rand"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"go-hep.org/x/hep/fmom"
)

const cm2m = 0.01

// Rand is a source of uniform random numbers in [0,1).
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// X4 is a space-time position (m, s).
type X4 struct {
	X, Y, Z, T float64
}

// Event is a flux neutrino produced by the driver.
type Event struct {
	PDG    int
	P4     fmom.PxPyPzE
	X4     X4
	Weight float64 // flux weight relative to the maximum weight
	Entry  int64
	Source string

	// Info points at the driver's pass-through record and is overwritten
	// by the next call to Next or NextWeighted. Use Info.Clone to keep it.
	Info *Record
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used by the driver.
func WithLogger(l *logrus.Logger) Option {
	return func(d *Driver) { d.log = l.WithField("pkg", "flux") }
}

// WithRand sets the random number source used for the random offset and
// for de-weighting.
func WithRand(r Rand) Option {
	return func(d *Driver) { d.rnd = r }
}

// Driver replays a jnubeam flux ntuple.
type Driver struct {
	cfg     Config
	species map[int]bool
	rnd     Rand
	log     *logrus.Entry

	src     *Source
	owned   bool
	loc     Location
	binding *Binding
	loaded  bool

	rec     Record // current pass-through record
	summary Record // file summary, read once
	stats   Stats
	cur     cursor

	found      int64 // entries at the location in the current cycle
	sumWeight  float64
	nNeutrinos int64
	accepted   int64

	norm float64
	pdg  int
	p4   fmom.PxPyPzE
	x4   X4
	prov string
}

// New creates a flux driver. Call Load or LoadFile before generating.
func New(cfg Config, opts ...Option) *Driver {
	cfg.normalize()
	d := &Driver{
		cfg: cfg,
		rnd: globalRand{},
		log: logrus.StandardLogger().WithField("pkg", "flux"),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.species = make(map[int]bool, len(cfg.Species))
	for _, pdg := range cfg.Species {
		d.species[pdg] = true
	}
	if len(d.species) == 0 {
		d.log.Warn("empty list of flux neutrino species")
	}

	d.rec.Reset()
	d.summary.Reset()
	d.log.WithFields(logrus.Fields{
		"species":    cfg.Species,
		"max-energy": cfg.MaxEnergy,
		"file-pot":   cfg.FilePOT,
		"upstream-z": cfg.UpstreamZ,
		"cycles":     cfg.Cycles,
	}).Info("flux driver configured")
	return d
}

// Config returns the driver options in use.
func (d *Driver) Config() Config { return d.cfg }

func (d *Driver) fatal(op string, err error) error {
	d.log.WithError(err).Errorf("%s failed, the job must be terminated", op)
	return &FatalError{Op: op, Err: err}
}

// LoadFile opens the flux file fname and loads it for the named detector
// location. The file is closed by Close.
func (d *Driver) LoadFile(fname, location string) error {
	loc, err := ParseLocation(location)
	if err != nil {
		return d.fatal("load", err)
	}

	d.log.Infof("loading jnubeam flux tree from %q (location %v)", fname, loc)
	src, err := OpenSource(fname, loc)
	if err != nil {
		return d.fatal("load", err)
	}

	if err := d.Load(src, loc); err != nil {
		src.Close()
		return err
	}
	d.owned = true
	return nil
}

// Load binds the flux tree of src, scans it once to compute the per-cycle
// totals at loc and positions the cursor at the first entry to read.
// Any error returned is a *FatalError.
func (d *Driver) Load(src *Source, loc Location) error {
	d.loaded = false
	if d.owned && d.src != nil && d.src != src {
		if err := d.src.Close(); err != nil {
			d.log.WithError(err).Warn("could not close previous flux file")
		}
		d.src = nil
	}
	d.owned = false
	if !loc.Valid() {
		return d.fatal("load", fmt.Errorf("%w: %v", ErrUnknownLocation, loc))
	}
	if src == nil || src.Flux == nil {
		return d.fatal("load", fmt.Errorf("%w: no flux tree", ErrAccess))
	}

	ds := src.Flux
	n := ds.Entries()
	d.log.Infof("flux tree %q contains %d entries", ds.Name(), n)
	if n <= 0 {
		return d.fatal("load", fmt.Errorf("%w: detector id %d: empty flux tree", ErrNoLocation, loc.ID))
	}

	d.rec.Reset()
	b, err := FluxSchema.Bind(ds.Name(), ds.Columns(), &d.rec, loc.IsNear())
	if err != nil {
		for _, name := range b.Missing {
			d.log.Errorf("cannot find flux branch: %s", name)
		}
		return d.fatal("load", err)
	}
	for _, name := range b.Truncated {
		d.log.Warnf("flux branch %s holds more than %d elements, extra elements are dropped", name, NgMax)
	}

	d.summary.Reset()
	if sum := src.Summary; sum != nil && sum.Entries() > 0 {
		sb, _ := SummarySchema.Bind(sum.Name(), sum.Columns(), &d.summary, false)
		if err := sum.Read(0, sb.Vars()); err != nil {
			return d.fatal("load", fmt.Errorf("%w: summary tree %q: %v", ErrRead, sum.Name(), err))
		}
	}

	st, err := scan(ds, b, &d.rec, loc, d.log)
	if err != nil {
		return d.fatal("load", err)
	}
	d.log.Infof("maximum flux weight = %g", st.MaxWeight)
	d.log.Infof("totals / cycle: #neutrinos = %d, sum{weights} = %g", st.Matching, st.SumWeight)

	d.src = src
	d.loc = loc
	d.binding = b
	d.stats = st
	d.cur = newCursor(n, d.cfg.Cycles)
	d.found = 0
	d.sumWeight = 0
	d.nNeutrinos = 0
	d.accepted = 0
	d.prov = filepath.Base(ds.File()) + ":" + ds.Name()

	if d.cfg.RandomOffset {
		off := int64(math.Floor(d.rnd.Float64() * float64(n)))
		if off >= n {
			off = n - 1
		}
		d.cur.setOffset(off)
		d.log.Infof("starting to loop over flux entries with offset %d", off)
	}

	d.loaded = true
	d.resetCurrent()
	return nil
}

// Close releases the flux file opened by LoadFile. Sources given to Load
// stay open and are closed by the caller.
func (d *Driver) Close() error {
	d.loaded = false
	if d.src == nil || !d.owned {
		return nil
	}
	err := d.src.Close()
	d.src = nil
	d.owned = false
	return err
}

func (d *Driver) resetCurrent() {
	d.cur.loaded = false
	d.norm = 0
	d.pdg = 0
	d.p4 = fmom.PxPyPzE{}
	d.x4 = X4{}
	d.rec.Reset()
}

// End reports whether the configured number of cycles has been read.
func (d *Driver) End() bool {
	return d.loaded && d.cur.end()
}

// NextWeighted reads the next flux ntuple entry. It returns false when the
// entry was skipped (other detector location, undeclared species) or the
// stream has ended; check End to tell them apart. Errors are fatal.
func (d *Driver) NextWeighted() (bool, error) {
	d.resetCurrent()

	if !d.loaded {
		return false, d.fatal("generate", ErrNotLoaded)
	}
	if d.cur.end() {
		return false, nil
	}

	i := d.cur.entry
	if err := d.src.Flux.Read(i, d.binding.Vars()); err != nil {
		return false, d.fatal("generate", fmt.Errorf("%w %d: %v", ErrRead, i, err))
	}
	complete := d.cur.advance()
	d.rec.copySummary(&d.summary)
	d.norm = clampWeight(&d.rec, d.log)

	match := d.loc.Match(d.rec.Idfd)
	if match {
		d.found++
	}
	if complete {
		if d.found == 0 {
			return false, d.fatal("generate", fmt.Errorf("%w: detector id %d", ErrNoLocation, d.loc.ID))
		}
		d.found = 0
	}
	if !match {
		return false, nil
	}

	// rejected neutrinos below still count for normalization.
	d.sumWeight += d.norm
	d.nNeutrinos++

	pdg, ok := SpeciesFromMode(int(d.rec.Mode))
	if !ok {
		return false, d.fatal("generate", fmt.Errorf("%w %d: unable to infer neutrino species", ErrDecayMode, d.rec.Mode))
	}
	d.pdg = pdg

	if !d.species[pdg] {
		return false, nil
	}

	if enu := float64(d.rec.Enu); enu > d.cfg.MaxEnergy {
		d.log.WithFields(logrus.Fields{
			"enu":     enu,
			"enu-max": d.cfg.MaxEnergy,
			"entry":   i,
		}).Warn("flux neutrino energy exceeds declared maximum neutrino energy")
	}

	d.kinematics()

	d.rec.Entry = d.cur.index()
	d.rec.Source = d.prov

	if d.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		d.log.Debugf("generated neutrino: pdg=%d p4=%v x4=%+v", d.pdg, d.p4, d.x4)
	}
	return true, nil
}

func (d *Driver) kinematics() {
	enu := float64(d.rec.Enu)
	dir := [3]float64{0, 0, 1}
	if d.binding.Bound("nnu") {
		dir = [3]float64{float64(d.rec.Nnu[0]), float64(d.rec.Nnu[1]), float64(d.rec.Nnu[2])}
	}
	d.p4 = fmom.NewPxPyPzE(enu*dir[0], enu*dir[1], enu*dir[2], enu)

	if !d.loc.IsNear() {
		d.x4 = X4{}
		return
	}

	// project from the z=0 plane back to the upstream start plane.
	z0 := d.cfg.UpstreamZ
	d.x4 = X4{
		X: cm2m*float64(d.rec.Xnu) + z0/dir[2]*dir[0],
		Y: cm2m*float64(d.rec.Ynu) + z0/dir[2]*dir[1],
		Z: z0,
	}
}

// Next returns the next de-weighted flux neutrino, accepting each weighted
// entry with probability weight/max-weight. It returns false once the
// stream has ended. Errors are fatal.
func (d *Driver) Next() (bool, error) {
	for {
		if d.End() {
			return false, nil
		}

		ok, err := d.NextWeighted()
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}

		if d.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
			ncycles := "infinite"
			if d.cfg.Cycles > 0 {
				ncycles = fmt.Sprint(d.cfg.Cycles)
			}
			d.log.Debugf("got flux entry: %d - cycle: %d/%s", d.Index(), d.cur.cycle, ncycles)
		}

		f := 1.0
		if !d.cfg.Weighted {
			f = d.Weight()
		}
		if f > 1+d.cfg.Tolerance {
			d.log.WithField("entry", d.Index()).Errorf("fractional weight = %g > 1", f)
		}

		r := 0.0
		if f < 1 {
			r = d.rnd.Float64()
		}
		if r < f {
			d.accepted++
			return true, nil
		}
	}
}

// Reset clears the cycle history: running totals, accepted count and the
// cursor position, and switches back to de-weighted generation. The
// load-time totals are kept.
func (d *Driver) Reset() {
	d.cfg.Weighted = false
	d.sumWeight = 0
	d.nNeutrinos = 0
	d.accepted = 0
	d.found = 0
	d.cur.rewind()
	d.resetCurrent()
}

// SetWeighted selects the weighted stream in Next.
func (d *Driver) SetWeighted(v bool) { d.cfg.Weighted = v }

// Event returns the current flux neutrino.
func (d *Driver) Event() Event {
	return Event{
		PDG:    d.pdg,
		P4:     d.p4,
		X4:     d.x4,
		Weight: d.Weight(),
		Entry:  d.rec.Entry,
		Source: d.rec.Source,
		Info:   &d.rec,
	}
}

// Index returns the ntuple entry of the current flux neutrino, or None if
// no entry has been read since the last reset.
func (d *Driver) Index() int64 { return d.cur.index() }

// Weight returns the current flux weight relative to the maximum weight.
func (d *Driver) Weight() float64 {
	if d.stats.MaxWeight <= 0 {
		return 0
	}
	return d.norm / d.stats.MaxWeight
}

// PDG, P4 and X4 describe the current flux neutrino: its PDG code, its
// 4-momentum (GeV) and its starting position (m).
func (d *Driver) PDG() int         { return d.pdg }
func (d *Driver) P4() fmom.PxPyPzE { return d.p4 }
func (d *Driver) X4() X4           { return d.x4 }

// Record returns the pass-through record of the current flux neutrino.
// It is overwritten by the next read.
func (d *Driver) Record() *Record { return &d.rec }

// Summary returns the flux file summary read at load time.
func (d *Driver) Summary() *Record { return &d.summary }

// Location returns the detector location given at load.
func (d *Driver) Location() Location { return d.loc }

// Loaded reports whether a flux ntuple is ready for generation.
func (d *Driver) Loaded() bool { return d.loaded }

// Binding returns the flux branches resolved at load.
func (d *Driver) Binding() *Binding { return d.binding }

// Stats returns the per-cycle totals computed at load time.
func (d *Driver) Stats() Stats { return d.stats }

// SumWeight and NumNeutrinos return the running totals of the entries read
// at the detector location since load or the last Reset, including those
// rejected afterwards.
func (d *Driver) SumWeight() float64  { return d.sumWeight }
func (d *Driver) NumNeutrinos() int64 { return d.nNeutrinos }

// Accepted returns the number of neutrinos returned by Next.
func (d *Driver) Accepted() int64 { return d.accepted }

// Cycle returns the current cycle, starting at 1. It is one past the
// last cycle once the stream has ended.
func (d *Driver) Cycle() int { return d.cur.cycle }

// Offset returns the entry each cycle starts at.
func (d *Driver) Offset() int64 { return d.cur.offset }

// Species returns the neutrino PDG codes the driver generates.
func (d *Driver) Species() []int { return append([]int(nil), d.cfg.Species...) }
