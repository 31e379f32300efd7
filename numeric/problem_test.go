package numeric_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/metatwin/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblem_Validate(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		name string
		p    *numeric.Problem
		want error
	}{
		{"nil", nil, numeric.ErrNilProblem},
		{"short bounds", &numeric.Problem{ColCosts: []float64{1}, ColLower: []float64{0}}, numeric.ErrDimensionMismatch},
		{"nan cost", &numeric.Problem{ColCosts: []float64{math.NaN()}, ColLower: []float64{0}, ColUpper: []float64{1}}, numeric.ErrNotFinite},
		{"lower +inf", &numeric.Problem{ColCosts: []float64{0}, ColLower: []float64{inf}, ColUpper: []float64{inf}}, numeric.ErrNotFinite},
		{"nonzero outside", &numeric.Problem{
			ColCosts: []float64{0}, ColLower: []float64{0}, ColUpper: []float64{1},
			RowLower: []float64{0}, RowUpper: []float64{1},
			ConstMatrix: []numeric.Nonzero{{Row: 0, Col: 3, Val: 1}},
		}, numeric.ErrIndexOutOfRange},
		{"lower triangle", &numeric.Problem{
			ColCosts: []float64{0, 0}, ColLower: []float64{0, 0}, ColUpper: []float64{1, 1},
			Hessian: []numeric.Nonzero{{Row: 1, Col: 0, Val: 1}},
		}, numeric.ErrHessianTriangle},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.p.Validate(), tc.want)
		})
	}
}

func TestProblem_Builders(t *testing.T) {
	var p numeric.Problem
	x := p.AddCol(1, 0, 10)
	y := p.AddCol(2, -5, 5)
	r := p.AddRow(0, 4, []int{x, y}, []float64{1, 0})
	p.AddHessian(y, x, 3)
	p.Offset = 1
	require.NoError(t, p.Validate())

	assert.Equal(t, 2, p.NumCols())
	assert.Equal(t, 1, p.NumRows())
	assert.Equal(t, 0, r)
	assert.Len(t, p.ConstMatrix, 1)
	assert.Equal(t, numeric.Nonzero{Row: 0, Col: 1, Val: 3}, p.Hessian[0])

	// 1 + 1*2 + 2*1 + 3*2*1
	assert.Equal(t, 11.0, p.Objective([]float64{2, 1}))
	assert.Equal(t, []float64{2}, p.RowActivity([]float64{2, 1}))
	assert.Zero(t, p.MaxViolation([]float64{2, 1}))
	assert.Greater(t, p.MaxViolation([]float64{11, 1}), 0.0)

	cp := p.Clone()
	cp.ColCosts[0] = 9
	assert.Equal(t, 1.0, p.ColCosts[0])
}

func TestStatus_Text(t *testing.T) {
	for _, s := range []numeric.Status{numeric.StatusOptimal, numeric.StatusInfeasible, numeric.StatusUnbounded, numeric.StatusNumericalError} {
		b, err := s.MarshalText()
		require.NoError(t, err)
		var back numeric.Status
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, s, back)
	}
	assert.Equal(t, "numerical_error", numeric.StatusNumericalError.String())
	_, err := numeric.ParseStatus("maybe")
	require.Error(t, err)
}
