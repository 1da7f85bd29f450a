package flux

import (
	"github.com/decibelcooper/jnuflux/ntuple"
)

// Tier tells how a missing branch is handled when binding a flux tree.
type Tier int

const (
	Optional     Tier = iota // bound if present
	Critical                 // must always be present
	NearCritical             // must be present for near detector locations
)

func (t Tier) String() string {
	switch t {
	case Optional:
		return "optional"
	case Critical:
		return "critical"
	case NearCritical:
		return "near-critical"
	}
	return "unknown"
}

// Field maps a branch onto a Record field.
type Field struct {
	Name string
	Tier Tier
	Len  int
	Dest func(r *Record) interface{}
}

// Schema is the list of branches a flux tree may provide.
type Schema []Field

// FluxSchema describes the jnubeam flux trees (h2000, h3001, h3002).
var FluxSchema = Schema{
	{"norm", Critical, 1, func(r *Record) interface{} { return &r.Norm }},
	{"Enu", Critical, 1, func(r *Record) interface{} { return &r.Enu }},
	{"ppid", Critical, 1, func(r *Record) interface{} { return &r.Ppid }},
	{"mode", Critical, 1, func(r *Record) interface{} { return &r.Mode }},
	{"rnu", NearCritical, 1, func(r *Record) interface{} { return &r.Rnu }},
	{"xnu", NearCritical, 1, func(r *Record) interface{} { return &r.Xnu }},
	{"ynu", NearCritical, 1, func(r *Record) interface{} { return &r.Ynu }},
	{"nnu", NearCritical, 3, func(r *Record) interface{} { return &r.Nnu }},
	{"idfd", NearCritical, 1, func(r *Record) interface{} { return &r.Idfd }},

	{"ppi", Optional, 1, func(r *Record) interface{} { return &r.Ppi }},
	{"xpi", Optional, 3, func(r *Record) interface{} { return &r.Xpi }},
	{"npi", Optional, 3, func(r *Record) interface{} { return &r.Npi }},
	{"ppi0", Optional, 1, func(r *Record) interface{} { return &r.Ppi0 }},
	{"xpi0", Optional, 3, func(r *Record) interface{} { return &r.Xpi0 }},
	{"npi0", Optional, 3, func(r *Record) interface{} { return &r.Npi0 }},
	{"nvtx0", Optional, 1, func(r *Record) interface{} { return &r.Nvtx0 }},

	// since 10a
	{"cospibm", Optional, 1, func(r *Record) interface{} { return &r.Cospibm }},
	{"cospi0bm", Optional, 1, func(r *Record) interface{} { return &r.Cospi0bm }},
	{"gamom0", Optional, 1, func(r *Record) interface{} { return &r.Gamom0 }},
	{"gipart", Optional, 1, func(r *Record) interface{} { return &r.Gipart }},
	{"gvec0", Optional, 3, func(r *Record) interface{} { return &r.Gvec0 }},
	{"gpos0", Optional, 3, func(r *Record) interface{} { return &r.Gpos0 }},

	// since 10d
	{"ng", Optional, 1, func(r *Record) interface{} { return &r.Ng }},
	{"gpid", Optional, NgMax, func(r *Record) interface{} { return &r.Gpid }},
	{"gmec", Optional, NgMax, func(r *Record) interface{} { return &r.Gmec }},
	{"gvx", Optional, NgMax, func(r *Record) interface{} { return &r.Gvx }},
	{"gvy", Optional, NgMax, func(r *Record) interface{} { return &r.Gvy }},
	{"gvz", Optional, NgMax, func(r *Record) interface{} { return &r.Gvz }},
	{"gpx", Optional, NgMax, func(r *Record) interface{} { return &r.Gpx }},
	{"gpy", Optional, NgMax, func(r *Record) interface{} { return &r.Gpy }},
	{"gpz", Optional, NgMax, func(r *Record) interface{} { return &r.Gpz }},
	{"gmat", Optional, NgMax, func(r *Record) interface{} { return &r.Gmat }},
	{"gdistc", Optional, NgMax, func(r *Record) interface{} { return &r.Gdistc }},
	{"gdistal", Optional, NgMax, func(r *Record) interface{} { return &r.Gdistal }},
	{"gdistti", Optional, NgMax, func(r *Record) interface{} { return &r.Gdistti }},
	{"gdistfe", Optional, NgMax, func(r *Record) interface{} { return &r.Gdistfe }},
	{"gcosbm", Optional, NgMax, func(r *Record) interface{} { return &r.Gcosbm }},
	{"Enusk", Optional, 1, func(r *Record) interface{} { return &r.Enusk }},
	{"normsk", Optional, 1, func(r *Record) interface{} { return &r.Normsk }},
	{"anorm", Optional, 1, func(r *Record) interface{} { return &r.Anorm }},
}

// SummarySchema describes the flux file summary tree (h1000).
var SummarySchema = Schema{
	{"version", Optional, 1, func(r *Record) interface{} { return &r.Version }},
	{"ntrig", Optional, 1, func(r *Record) interface{} { return &r.Ntrig }},
	{"tuneid", Optional, 1, func(r *Record) interface{} { return &r.Tuneid }},
	{"pint", Optional, 1, func(r *Record) interface{} { return &r.Pint }},
	{"bpos", Optional, 2, func(r *Record) interface{} { return &r.Bpos }},
	{"btilt", Optional, 2, func(r *Record) interface{} { return &r.Btilt }},
	{"brms", Optional, 2, func(r *Record) interface{} { return &r.Brms }},
	{"emit", Optional, 2, func(r *Record) interface{} { return &r.Emit }},
	{"alpha", Optional, 2, func(r *Record) interface{} { return &r.Alpha }},
	{"hcur", Optional, 3, func(r *Record) interface{} { return &r.Hcur }},
	{"rand", Optional, 1, func(r *Record) interface{} { return &r.Rand }},
	{"rseed", Optional, 2, func(r *Record) interface{} { return &r.Rseed }},
}

// Binding is a schema resolved against the columns of a dataset, with
// every bound field pointing into one record.
type Binding struct {
	vars      []ntuple.Var
	bound     map[string]Field
	Missing   []string // unresolved critical fields
	Truncated []string // columns holding more elements than their field
}

// Bind resolves s against cols, binding fields into rec. Near-critical
// fields are treated as critical when near is true. A binding with
// missing critical fields is returned together with a *MissingError.
func (s Schema) Bind(tree string, cols []ntuple.Column, rec *Record, near bool) (*Binding, error) {
	index := make(map[string]ntuple.Column, len(cols))
	for _, col := range cols {
		index[col.Name] = col
	}

	b := &Binding{bound: make(map[string]Field)}
	for _, f := range s {
		col, ok := index[f.Name]
		if !ok {
			if f.Tier == Critical || (f.Tier == NearCritical && near) {
				b.Missing = append(b.Missing, f.Name)
			}
			continue
		}
		if col.Len > f.Len {
			b.Truncated = append(b.Truncated, f.Name)
		}
		b.bound[f.Name] = f
		b.vars = append(b.vars, ntuple.Var{Name: f.Name, Value: f.Dest(rec)})
	}

	if len(b.Missing) > 0 {
		return b, &MissingError{Tree: tree, Branches: b.Missing}
	}
	return b, nil
}

// Bound reports whether the named field was found in the dataset.
func (b *Binding) Bound(name string) bool {
	_, ok := b.bound[name]
	return ok
}

// Vars returns the read variables of the bound fields.
func (b *Binding) Vars() []ntuple.Var { return b.vars }
