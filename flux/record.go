package flux

import (
	"fmt"
	"strings"
)

const (
	// NgMax is the maximum number of ancestors stored per flux entry.
	NgMax = 12

	// Unset marks a record field that has not been read.
	Unset = -999999

	// None is the entry index reported when no entry is loaded.
	None int64 = -1
)

// Record is the pass-through information of one flux ntuple entry, kept
// in the format of the jnubeam ntuple so that it can be stored alongside
// generated events for beam reweighting.
type Record struct {
	Entry  int64  // flux ntuple entry the neutrino was read from
	Source string // "<file>:<tree>" the entry was read from

	Enu      float32    // neutrino energy (GeV)
	Ppid     int32      // parent Geant3 code
	Mode     int32      // decay mode
	Ppi      float32    // parent |p| at decay
	Xpi      [3]float32 // parent position at decay
	Npi      [3]float32 // parent direction at decay
	Ppi0     float32    // parent |p| at production
	Xpi0     [3]float32 // parent position at production
	Npi0     [3]float32 // parent direction at production
	Nvtx0    int32
	Cospibm  float32
	Cospi0bm float32
	Norm     float32 // flux weight
	Idfd     int32   // detector location id
	Rnu      float32
	Xnu      float32 // neutrino x at the detector plane (cm)
	Ynu      float32 // neutrino y at the detector plane (cm)
	Nnu      [3]float32

	// ancestry, since jnubeam 10a
	Gamom0  float32
	Gipart  int32
	Gvec0   [3]float32
	Gpos0   [3]float32
	Ng      int32
	Gpid    [NgMax]int32
	Gmec    [NgMax]int32
	Gcosbm  [NgMax]float32
	Gvx     [NgMax]float32
	Gvy     [NgMax]float32
	Gvz     [NgMax]float32
	Gpx     [NgMax]float32
	Gpy     [NgMax]float32
	Gpz     [NgMax]float32
	Gmat    [NgMax]int32
	Gdistc  [NgMax]float32
	Gdistal [NgMax]float32
	Gdistti [NgMax]float32
	Gdistfe [NgMax]float32
	Enusk   float32
	Normsk  float32
	Anorm   float32

	// file summary (h1000)
	Version float32
	Ntrig   int32
	Tuneid  int32
	Pint    int32
	Bpos    [2]float32
	Btilt   [2]float32
	Brms    [2]float32
	Emit    [2]float32
	Alpha   [2]float32
	Hcur    [3]float32
	Rand    int32
	Rseed   [2]int32
}

// Reset sets every field back to its unset marker.
func (r *Record) Reset() {
	r.Entry = None
	r.Source = "Not-set"

	r.Enu = Unset
	r.Ppid = Unset
	r.Mode = Unset
	r.Ppi = Unset
	fill3(&r.Xpi)
	fill3(&r.Npi)
	r.Ppi0 = Unset
	fill3(&r.Xpi0)
	fill3(&r.Npi0)
	r.Nvtx0 = Unset
	r.Cospibm = Unset
	r.Cospi0bm = Unset
	r.Norm = Unset
	r.Idfd = Unset
	r.Rnu = Unset
	r.Xnu = Unset
	r.Ynu = Unset
	fill3(&r.Nnu)

	r.Gamom0 = Unset
	r.Gipart = -1
	fill3(&r.Gvec0)
	fill3(&r.Gpos0)
	r.Ng = -1
	for i := 0; i < NgMax; i++ {
		r.Gpid[i] = Unset
		r.Gmec[i] = Unset
		r.Gcosbm[i] = Unset
		r.Gvx[i] = Unset
		r.Gvy[i] = Unset
		r.Gvz[i] = Unset
		r.Gpx[i] = Unset
		r.Gpy[i] = Unset
		r.Gpz[i] = Unset
		r.Gmat[i] = Unset
		r.Gdistc[i] = Unset
		r.Gdistal[i] = Unset
		r.Gdistti[i] = Unset
		r.Gdistfe[i] = Unset
	}
	r.Enusk = Unset
	r.Normsk = Unset
	r.Anorm = Unset

	r.Version = Unset
	r.Ntrig = Unset
	r.Tuneid = Unset
	r.Pint = Unset
	for i := 0; i < 2; i++ {
		r.Bpos[i] = Unset
		r.Btilt[i] = Unset
		r.Brms[i] = Unset
		r.Emit[i] = Unset
		r.Alpha[i] = Unset
		r.Rseed[i] = Unset
	}
	fill3(&r.Hcur)
	r.Rand = Unset
}

func fill3(v *[3]float32) {
	v[0], v[1], v[2] = Unset, Unset, Unset
}

// Clone returns a copy of r that is not affected by later reads.
func (r *Record) Clone() *Record {
	c := *r
	return &c
}

func (r *Record) copySummary(s *Record) {
	r.Version = s.Version
	r.Ntrig = s.Ntrig
	r.Tuneid = s.Tuneid
	r.Pint = s.Pint
	r.Bpos = s.Bpos
	r.Btilt = s.Btilt
	r.Brms = s.Brms
	r.Emit = s.Emit
	r.Alpha = s.Alpha
	r.Hcur = s.Hcur
	r.Rand = s.Rand
	r.Rseed = s.Rseed
}

func (r *Record) String() string {
	o := new(strings.Builder)
	fmt.Fprintf(o, "\n idfd       = %d", r.Idfd)
	fmt.Fprintf(o, "\n norm       = %g", r.Norm)
	fmt.Fprintf(o, "\n flux entry = %d", r.Entry)
	fmt.Fprintf(o, "\n flux file  = %s", r.Source)
	fmt.Fprintf(o, "\n Enu        = %g", r.Enu)
	fmt.Fprintf(o, "\n geant code = %d", r.Ppid)
	fmt.Fprintf(o, "\n (pdg code) = %d", GeantToPdg(int(r.Ppid)))
	fmt.Fprintf(o, "\n decay mode = %d", r.Mode)
	fmt.Fprintf(o, "\n nvtx0      = %d", r.Nvtx0)
	fmt.Fprintf(o, "\n |momentum| @ decay       = %g", r.Ppi)
	fmt.Fprintf(o, "\n position_vector @ decay  = (%g, %g, %g)", r.Xpi[0], r.Xpi[1], r.Xpi[2])
	fmt.Fprintf(o, "\n direction_vector @ decay = (%g, %g, %g)", r.Npi[0], r.Npi[1], r.Npi[2])
	fmt.Fprintf(o, "\n |momentum| @ prod.       = %g", r.Ppi0)
	fmt.Fprintf(o, "\n position_vector @ prod.  = (%g, %g, %g)", r.Xpi0[0], r.Xpi0[1], r.Xpi0[2])
	fmt.Fprintf(o, "\n direction_vector @ prod. = (%g, %g, %g)", r.Npi0[0], r.Npi0[1], r.Npi0[2])
	fmt.Fprintf(o, "\n cospibm = %g", r.Cospibm)
	fmt.Fprintf(o, "\n cospi0bm = %g", r.Cospi0bm)
	if r.Ng > 0 {
		fmt.Fprintf(o, "\n ancestors  = %d", r.Ng)
		for i := 0; i < int(r.Ng) && i < NgMax; i++ {
			fmt.Fprintf(o, "\n   [%d] pdg=%d mec=%d mat=%d", i, GeantToPdg(int(r.Gpid[i])), r.Gmec[i], r.Gmat[i])
		}
	}
	o.WriteString("\n")
	return o.String()
}
