package flux

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"
)

// createFluxFile writes a near detector flux file using the pre-10a tree
// name, with a file summary tree.
func createFluxFile(t *testing.T) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "nu.nd280.1.root")

	f, err := groot.Create(fname)
	require.NoError(t, err)
	defer f.Close()

	var evt struct {
		Norm float32
		Enu  float32
		Ppid int32
		Mode int32
		Rnu  float32
		Xnu  float32
		Ynu  float32
		Nnu  [3]float32
		Idfd int32
	}
	w, err := rtree.NewWriter(f, OldNearTree, []rtree.WriteVar{
		{Name: "norm", Value: &evt.Norm},
		{Name: "Enu", Value: &evt.Enu},
		{Name: "ppid", Value: &evt.Ppid},
		{Name: "mode", Value: &evt.Mode},
		{Name: "rnu", Value: &evt.Rnu},
		{Name: "xnu", Value: &evt.Xnu},
		{Name: "ynu", Value: &evt.Ynu},
		{Name: "nnu", Value: &evt.Nnu},
		{Name: "idfd", Value: &evt.Idfd},
	})
	require.NoError(t, err)

	modes := []int32{11, 21, 31, 41, 12, 13}
	for i := 0; i < 12; i++ {
		evt.Norm = float32(i%4+1) * 0.25
		evt.Enu = float32(i) + 0.5
		evt.Ppid = 8
		evt.Mode = modes[i%len(modes)]
		evt.Xnu = 10
		evt.Ynu = -10
		evt.Rnu = 14.142136
		evt.Nnu = [3]float32{0, 0, 1}
		evt.Idfd = 5
		if i%3 == 2 {
			evt.Idfd = 1
		}
		_, err = w.Write()
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	var sum struct {
		Version float32
		Ntrig   int32
	}
	ws, err := rtree.NewWriter(f, SummaryTree, []rtree.WriteVar{
		{Name: "version", Value: &sum.Version},
		{Name: "ntrig", Value: &sum.Ntrig},
	})
	require.NoError(t, err)
	sum.Version = 10.4
	sum.Ntrig = 100000
	_, err = ws.Write()
	require.NoError(t, err)
	require.NoError(t, ws.Close())

	require.NoError(t, f.Close())
	return fname
}

func TestLoadFile(t *testing.T) {
	fname := createFluxFile(t)

	d, _ := newDriver(t, fixedConfig())
	require.NoError(t, d.LoadFile(fname, "nd5"))
	defer d.Close()

	st := d.Stats()
	assert.Equal(t, int64(12), st.Entries)
	assert.Equal(t, int64(8), st.Matching)
	assert.Equal(t, 1.0, st.MaxWeight)
	assert.Equal(t, float32(10.4), d.Summary().Version)

	var n int64
	for !d.End() {
		ok, err := d.NextWeighted()
		require.NoError(t, err)
		if !ok {
			continue
		}
		n++
		evt := d.Event()
		assert.Equal(t, int32(5), evt.Info.Idfd)
		assert.Equal(t, int32(100000), evt.Info.Ntrig)
		assert.Equal(t, "nu.nd280.1.root:h3001", evt.Source)
		assert.InDelta(t, 0.1, evt.X4.X, 1e-6)
		assert.InDelta(t, -0.1, evt.X4.Y, 1e-6)
		assert.Equal(t, -5.0, evt.X4.Z)
	}
	assert.Equal(t, st.Matching, n)
	require.NoError(t, d.Close())
}

func TestOpenSourceMissingTree(t *testing.T) {
	fname := createFluxFile(t)

	_, err := OpenSource(fname, FarDetector)
	assert.Error(t, err)

	src, err := OpenSource(fname, Location{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, OldNearTree, src.Flux.Name())
	require.NotNil(t, src.Summary)
	assert.Equal(t, int64(1), src.Summary.Entries())
	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
}

type closeCounter struct{ n int }

func (c *closeCounter) Close() error {
	c.n++
	return nil
}

func TestLoadAfterLoadFile(t *testing.T) {
	fname := createFluxFile(t)

	d, _ := newDriver(t, fixedConfig())
	require.NoError(t, d.LoadFile(fname, "nd5"))
	owned := d.src

	c := &closeCounter{}
	src := &Source{Flux: exampleMem(t), closer: c}
	require.NoError(t, d.Load(src, Location{ID: 5}))
	assert.Nil(t, owned.closer, "file opened by LoadFile must be closed")

	require.NoError(t, d.Close())
	assert.Equal(t, 0, c.n)
	require.NoError(t, src.Close())
	assert.Equal(t, 1, c.n)

	// a file loaded again is owned by the driver.
	require.NoError(t, d.LoadFile(fname, "nd5"))
	owned = d.src
	require.NoError(t, d.Close())
	assert.Nil(t, owned.closer)
}
