package matrix_test

import (
	"testing"

	"github.com/katalvlaran/metatwin/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type and force the At-based fallback path.
type hide struct{ matrix.Matrix }

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(len(rows), len(rows[0]))
	require.NoError(t, err)
	for i, r := range rows {
		for j, v := range r {
			require.NoError(t, m.Set(i, j, v))
		}
	}

	return m
}

func TestMatVec(t *testing.T) {
	// A -> B, B -> C style stoichiometry
	s := mustDense(t, [][]float64{
		{-1, 0},
		{1, -1},
		{0, 1},
	})

	y, err := matrix.MatVec(s, []float64{2, 2})
	require.NoError(t, err)
	require.Equal(t, []float64{-2, 0, 2}, y)

	// fast path and fallback agree
	y2, err := matrix.MatVec(hide{s}, []float64{2, 2})
	require.NoError(t, err)
	require.Equal(t, y, y2)

	_, err = matrix.MatVec(s, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.MatVec(nil, []float64{1})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
