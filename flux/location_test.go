package flux

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	for _, tc := range []struct {
		name string
		want Location
		err  error
	}{
		{name: "sk", want: FarDetector},
		{name: "nd1", want: Location{ID: 1}},
		{name: "nd5", want: Location{ID: 5}},
		{name: "nd13", want: Location{ID: 13}},
		{name: "nd50", want: Location{ID: 50}},
		{name: "nd0", err: ErrUnknownLocation},
		{name: "nd51", err: ErrUnknownLocation},
		{name: "nd05", err: ErrUnknownLocation},
		{name: "nd-1", err: ErrUnknownLocation},
		{name: "nd", err: ErrUnknownLocation},
		{name: "SK", err: ErrUnknownLocation},
		{name: "", err: ErrUnknownLocation},
	} {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := ParseLocation(tc.name)
			if tc.err != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, loc)
			assert.Equal(t, tc.name, loc.String())
		})
	}
}

func TestLocationMatch(t *testing.T) {
	assert.True(t, FarDetector.Match(5))
	assert.True(t, FarDetector.Match(Unset))
	assert.True(t, Location{ID: 5}.Match(5))
	assert.False(t, Location{ID: 5}.Match(3))
	assert.False(t, Location{}.Valid())
	assert.True(t, Location{ID: 50}.IsNear())
	assert.False(t, Location{ID: 51}.Valid())
}
