package ntuple

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"
)

const nentries = 10

func createFile(t *testing.T) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "flux.root")

	f, err := groot.Create(fname)
	require.NoError(t, err)
	defer f.Close()

	var evt struct {
		Norm float32
		Idfd int32
		Nnu  [3]float32
		Ng   int32
		Gpid []int32
	}
	wvars := []rtree.WriteVar{
		{Name: "norm", Value: &evt.Norm},
		{Name: "idfd", Value: &evt.Idfd},
		{Name: "nnu", Value: &evt.Nnu},
		{Name: "ng", Value: &evt.Ng},
		{Name: "gpid", Value: &evt.Gpid, Count: "ng"},
	}
	w, err := rtree.NewWriter(f, "h3002", wvars, rtree.WithTitle("jnubeam flux"))
	require.NoError(t, err)

	for i := 0; i < nentries; i++ {
		evt.Norm = float32(i) * 0.5
		evt.Idfd = int32(i%3 + 1)
		evt.Nnu = [3]float32{0, float32(i) * 0.01, 1}
		evt.Ng = int32(i % 4)
		evt.Gpid = evt.Gpid[:0]
		for j := 0; j < int(evt.Ng); j++ {
			evt.Gpid = append(evt.Gpid, int32(8+j))
		}
		_, err = w.Write()
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return fname
}

func TestTree(t *testing.T) {
	fname := createFile(t)

	f, err := Open(fname)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Tree("h2000")
	assert.Error(t, err)

	tree, err := f.Tree("h3002")
	require.NoError(t, err)
	tree.SetChunk(3)

	assert.Equal(t, "h3002", tree.Name())
	assert.Equal(t, fname, tree.File())
	assert.Equal(t, int64(nentries), tree.Entries())

	cols := make(map[string]Column)
	for _, col := range tree.Columns() {
		cols[col.Name] = col
	}
	require.Len(t, cols, 5)
	assert.Equal(t, 3, cols["nnu"].Len)
	assert.False(t, cols["nnu"].Variable)
	assert.True(t, cols["gpid"].Variable)
	assert.False(t, cols["norm"].Variable)

	var (
		norm float64
		idfd int32
		nnu  [3]float32
		ng   int32
		gpid [12]int32
	)
	vars := []Var{
		{Name: "norm", Value: &norm},
		{Name: "idfd", Value: &idfd},
		{Name: "nnu", Value: &nnu},
		{Name: "ng", Value: &ng},
		{Name: "gpid", Value: &gpid},
	}

	check := func(i int64) {
		t.Helper()
		gpid = [12]int32{}
		require.NoError(t, tree.Read(i, vars))
		assert.Equal(t, float64(i)*0.5, norm)
		assert.Equal(t, int32(i%3+1), idfd)
		assert.Equal(t, [3]float32{0, float32(i) * 0.01, 1}, nnu)
		assert.Equal(t, int32(i%4), ng)
		for j := 0; j < 12; j++ {
			want := int32(0)
			if j < int(ng) {
				want = int32(8 + j)
			}
			assert.Equal(t, want, gpid[j], "entry %d, ancestor %d", i, j)
		}
	}

	// wrap around, as a cycle starting at an offset does.
	for _, i := range []int64{7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 2, 9} {
		check(i)
	}

	assert.Error(t, tree.Read(nentries, vars))
	assert.Error(t, tree.Read(0, []Var{{Name: "xnu", Value: &norm}}))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.root"))
	assert.Error(t, err)
}
