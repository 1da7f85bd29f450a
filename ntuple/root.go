package ntuple

import (
	"fmt"
	"reflect"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"
)

// DefaultChunk is the number of entries a Tree caches per read.
const DefaultChunk = 4096

// File is a ROOT file holding ntuples.
type File struct {
	f    *groot.File
	path string
}

// Open opens the ROOT file fname for reading.
func Open(fname string) (*File, error) {
	f, err := groot.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("ntuple: could not open %q: %w", fname, err)
	}
	return &File{f: f, path: fname}, nil
}

// Close closes the underlying ROOT file.
func (f *File) Close() error {
	return f.f.Close()
}

// Tree returns the tree named name.
func (f *File) Tree(name string) (*Tree, error) {
	obj, err := f.f.Get(name)
	if err != nil {
		return nil, fmt.Errorf("ntuple: could not find tree %q in %q: %w", name, f.path, err)
	}
	t, ok := obj.(rtree.Tree)
	if !ok {
		return nil, fmt.Errorf("ntuple: object %q in %q is not a tree (%T)", name, f.path, obj)
	}
	return newTree(f.path, t), nil
}

// Tree is a ROOT tree read through a cache of consecutive entries.
// Entries are loaded chunk by chunk starting at the first requested
// entry that misses the cache, so sequential access opens one tree
// reader per chunk.
type Tree struct {
	file   string
	t      rtree.Tree
	cols   []Column
	leaves map[string]rtree.Leaf
	chunk  int64

	names    []string
	beg, end int64
	bufs     []reflect.Value
}

func newTree(fname string, t rtree.Tree) *Tree {
	tree := &Tree{
		file:   fname,
		t:      t,
		leaves: make(map[string]rtree.Leaf),
		chunk:  DefaultChunk,
	}
	for _, b := range t.Branches() {
		leaves := b.Leaves()
		if len(leaves) == 0 {
			continue
		}
		leaf := leaves[0]
		tree.leaves[b.Name()] = leaf
		tree.cols = append(tree.cols, Column{
			Name:     b.Name(),
			Len:      leaf.Len(),
			Variable: leaf.LeafCount() != nil,
		})
	}
	return tree
}

// SetChunk sets the number of entries loaded per cache miss.
func (t *Tree) SetChunk(n int64) {
	if n < 1 {
		n = 1
	}
	t.chunk = n
	t.names = nil
}

func (t *Tree) File() string      { return t.file }
func (t *Tree) Name() string      { return t.t.Name() }
func (t *Tree) Entries() int64    { return t.t.Entries() }
func (t *Tree) Columns() []Column { return t.cols }

// Read loads entry i into vars.
func (t *Tree) Read(i int64, vars []Var) error {
	n := t.t.Entries()
	if i < 0 || i >= n {
		return fmt.Errorf("ntuple: entry %d out of range [0, %d)", i, n)
	}

	if !t.cached(i, vars) {
		if err := t.load(i, vars); err != nil {
			return err
		}
	}

	for j, v := range vars {
		if err := assignVar(v, t.bufs[j].Index(int(i-t.beg))); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) cached(i int64, vars []Var) bool {
	if i < t.beg || i >= t.end || len(vars) != len(t.names) {
		return false
	}
	for j, v := range vars {
		if t.names[j] != v.Name {
			return false
		}
	}
	return true
}

func (t *Tree) load(beg int64, vars []Var) error {
	end := beg + t.chunk
	if n := t.t.Entries(); end > n {
		end = n
	}

	var (
		holders = make([]reflect.Value, len(vars))
		bufs    = make([]reflect.Value, len(vars))
		rvars   = make([]rtree.ReadVar, len(vars))
		names   = make([]string, len(vars))
	)
	for j, v := range vars {
		leaf, ok := t.leaves[v.Name]
		if !ok {
			return fmt.Errorf("ntuple: no column %q in %q", v.Name, t.Name())
		}
		typ := holderType(leaf)
		holders[j] = reflect.New(typ)
		bufs[j] = reflect.MakeSlice(reflect.SliceOf(typ), 0, int(end-beg))
		rvars[j] = rtree.ReadVar{Name: v.Name, Value: holders[j].Interface()}
		names[j] = v.Name
	}

	r, err := rtree.NewReader(t.t, rvars, rtree.WithRange(beg, end))
	if err != nil {
		return fmt.Errorf("ntuple: could not create reader for %q: %w", t.Name(), err)
	}
	defer r.Close()

	err = r.Read(func(ctx rtree.RCtx) error {
		for j, h := range holders {
			v := h.Elem()
			if v.Kind() == reflect.Slice {
				// the reader reuses the slice backing array.
				cp := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
				reflect.Copy(cp, v)
				v = cp
			}
			bufs[j] = reflect.Append(bufs[j], v)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ntuple: could not read entries [%d, %d) of %q: %w", beg, end, t.Name(), err)
	}

	t.beg, t.end = beg, end
	t.bufs = bufs
	t.names = names
	return nil
}

func holderType(leaf rtree.Leaf) reflect.Type {
	typ := leaf.Type()
	switch {
	case typ.Kind() == reflect.Array || typ.Kind() == reflect.Slice:
		return typ
	case leaf.LeafCount() != nil:
		return reflect.SliceOf(typ)
	case leaf.Len() > 1:
		return reflect.ArrayOf(leaf.Len(), typ)
	}
	return typ
}
