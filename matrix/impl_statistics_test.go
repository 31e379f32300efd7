package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/metatwin/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanStd(t *testing.T) {
	tests := []struct {
		name     string
		in       []float64
		wantMean float64
		wantStd  float64
	}{
		{"constant", []float64{2, 2, 2}, 2, 0},
		{"symmetric", []float64{1, 3}, 2, 1},
		{"single", []float64{5}, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, err := matrix.MeanStd(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantMean, mean, 1e-12)
			assert.InDelta(t, tt.wantStd, std, 1e-12)
		})
	}
}

func TestMeanStdErrors(t *testing.T) {
	_, _, err := matrix.MeanStd(nil)
	require.ErrorIs(t, err, matrix.ErrEmptyVector)

	_, _, err = matrix.MeanStd([]float64{1, math.NaN()})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestAbsMeanStd(t *testing.T) {
	mean, std, err := matrix.AbsMeanStd([]float64{-1, 3})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, mean, 1e-12)
	assert.InDelta(t, 1.0, std, 1e-12)
}
