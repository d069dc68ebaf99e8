package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternID_StableAndDistinct(t *testing.T) {
	a1, err := InternID("crate::a::Foo")
	require.NoError(t, err)
	a2, err := InternID("crate::a::Foo")
	require.NoError(t, err)
	assert.Equal(t, a1, a2)

	b, err := InternID("crate::b::Foo")
	require.NoError(t, err)
	assert.NotEqual(t, a1, b)
}
