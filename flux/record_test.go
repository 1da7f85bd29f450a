package flux

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordReset(t *testing.T) {
	var r Record
	r.Reset()

	assert.Equal(t, None, r.Entry)
	assert.Equal(t, "Not-set", r.Source)
	assert.Equal(t, float32(Unset), r.Norm)
	assert.Equal(t, float32(Unset), r.Enu)
	assert.Equal(t, int32(Unset), r.Mode)
	assert.Equal(t, int32(Unset), r.Idfd)
	assert.Equal(t, [3]float32{Unset, Unset, Unset}, r.Nnu)
	assert.Equal(t, int32(-1), r.Ng)
	for i := 0; i < NgMax; i++ {
		assert.Equal(t, int32(Unset), r.Gpid[i])
		assert.Equal(t, float32(Unset), r.Gdistfe[i])
	}
	assert.Equal(t, [2]int32{Unset, Unset}, r.Rseed)

	r.Norm = 0.5
	r.Gpid[3] = 8
	c := r.Clone()
	r.Reset()
	assert.Equal(t, float32(0.5), c.Norm)
	assert.Equal(t, int32(8), c.Gpid[3])
	assert.Equal(t, int32(Unset), r.Gpid[3])
}

func TestRecordString(t *testing.T) {
	var r Record
	r.Reset()
	r.Ppid = 8
	r.Idfd = 5
	r.Ng = 1
	r.Gpid[0] = 14

	s := r.String()
	assert.True(t, strings.Contains(s, "idfd       = 5"), s)
	assert.True(t, strings.Contains(s, "(pdg code) = 211"), s)
	assert.True(t, strings.Contains(s, "[0] pdg=2212"), s)
}
