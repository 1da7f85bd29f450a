package flux

import (
	"fmt"
	"io"
	"os"

	"github.com/decibelcooper/jnuflux/ntuple"
)

// Dataset is a random-access flux ntuple.
type Dataset interface {
	File() string
	Name() string
	Entries() int64
	Columns() []ntuple.Column
	Read(i int64, vars []ntuple.Var) error
}

// Tree names used by jnubeam flux files.
const (
	FarTree     = "h2000"
	NearTree    = "h3002"
	OldNearTree = "h3001"
	SummaryTree = "h1000"
)

// Source bundles the flux tree of a detector location with the optional
// file summary tree.
type Source struct {
	Flux    Dataset
	Summary Dataset

	closer io.Closer
}

// OpenSource opens the jnubeam flux file fname and selects the flux tree
// for loc.
func OpenSource(fname string, loc Location) (*Source, error) {
	if _, err := os.Stat(fname); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAccess, err)
	}
	if !loc.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownLocation, loc)
	}

	f, err := ntuple.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAccess, err)
	}

	names := []string{FarTree}
	if loc.IsNear() {
		names = []string{NearTree, OldNearTree}
	}

	src := &Source{closer: f}
	for _, name := range names {
		t, err := f.Tree(name)
		if err != nil {
			continue
		}
		src.Flux = t
		break
	}
	if src.Flux == nil {
		f.Close()
		return nil, fmt.Errorf("flux: could not find flux tree %v in %q", names, fname)
	}

	if t, err := f.Tree(SummaryTree); err == nil {
		src.Summary = t
	}

	return src, nil
}

// Close releases the underlying file, if any.
func (src *Source) Close() error {
	if src.closer == nil {
		return nil
	}
	err := src.closer.Close()
	src.closer = nil
	return err
}
