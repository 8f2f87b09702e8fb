package moduleid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_RoundTrip(t *testing.T) {
	for _, raw := range []string{"a.one", "vectors.dot-cross-product", "x.y.z-1"} {
		t.Run(raw, func(t *testing.T) {
			id, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, id.String())

			again, err := Parse(id.String())
			require.NoError(t, err)
			assert.True(t, id.Equal(again))
		})
	}
}

func TestID_Accessors(t *testing.T) {
	id, err := Parse("calculus.riemann-sums")
	require.NoError(t, err)

	assert.Equal(t, "calculus", id.Root())
	assert.Equal(t, "riemann-sums", id.Leaf())

	var nilID *ID
	assert.Equal(t, "", nilID.String())
	assert.Equal(t, "", nilID.Root())
	assert.True(t, nilID.Equal(nil))
	assert.False(t, id.Equal(nil))
}
