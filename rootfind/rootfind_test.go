package rootfind_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swhysc/tbond/rootfind"
)

func TestBrentFindsPolynomialRoot(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	result, err := rootfind.Brent(f, 0, 2, 1e-12, 100)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, result.Root, 1e-8)
}

func TestBrentFindsRootAtEndpoint(t *testing.T) {
	f := func(x float64) float64 { return x - 1 }
	result, err := rootfind.Brent(f, 1, 5, 1e-10, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Iterations)
	assert.InDelta(t, 1.0, result.Root, 1e-12)
}

func TestBrentFailsWhenNotBracketed(t *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }
	_, err := rootfind.Brent(f, -1, 1, 1e-10, 50)
	assert.ErrorIs(t, err, rootfind.ErrDidNotConverge)
}

func TestBrentConvergesOnTranscendentalFunction(t *testing.T) {
	f := func(x float64) float64 { return math.Cos(x) - x }
	result, err := rootfind.Brent(f, 0, 1, 1e-12, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.7390851332151607, result.Root, 1e-8)
}
