package numeric_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/katalvlaran/metatwin/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGonum_LinearOptimal(t *testing.T) {
	// maximise x + y  s.t.  x + 2y ≤ 4,  3x + y ≤ 6,  x, y ≥ 0
	var p numeric.Problem
	x := p.AddCol(1, 0, math.Inf(1))
	y := p.AddCol(1, 0, math.Inf(1))
	p.AddRow(math.Inf(-1), 4, []int{x, y}, []float64{1, 2})
	p.AddRow(math.Inf(-1), 6, []int{x, y}, []float64{3, 1})
	p.Maximize = true

	sol, err := numeric.NewGonum().SolveLinear(context.Background(), &p)
	require.NoError(t, err)
	require.Equal(t, numeric.StatusOptimal, sol.Status, sol.Message)
	assert.InDelta(t, 1.6, sol.X[x], 1e-7)
	assert.InDelta(t, 1.2, sol.X[y], 1e-7)
	assert.InDelta(t, 2.8, sol.Objective, 1e-7)
}

func TestGonum_LinearColumnKinds(t *testing.T) {
	// fixed a = 2, lower-bounded b ∈ [0,10], upper-bounded c ≤ 4, free d
	// a + b = 5, c - d = 1, d ≥ -3; maximise b + c
	var p numeric.Problem
	a := p.AddCol(0, 2, 2)
	b := p.AddCol(1, 0, 10)
	c := p.AddCol(1, math.Inf(-1), 4)
	d := p.AddCol(0, math.Inf(-1), math.Inf(1))
	p.AddRow(5, 5, []int{a, b}, []float64{1, 1})
	p.AddRow(1, 1, []int{c, d}, []float64{1, -1})
	p.AddRow(-3, math.Inf(1), []int{d}, []float64{1})
	p.Maximize = true

	sol, err := numeric.NewGonum().SolveLinear(context.Background(), &p)
	require.NoError(t, err)
	require.Equal(t, numeric.StatusOptimal, sol.Status, sol.Message)
	assert.InDelta(t, 2, sol.X[a], 1e-9)
	assert.InDelta(t, 3, sol.X[b], 1e-7)
	assert.InDelta(t, 4, sol.X[c], 1e-7)
	assert.InDelta(t, 3, sol.X[d], 1e-7)
	assert.InDelta(t, 7, sol.Objective, 1e-7)
}

func TestGonum_LinearOriginOutsideBounds(t *testing.T) {
	// x ∈ [1,5], y ∈ [-3,-1], z ∈ [0,10]; x + y = 0, x - z = 0; maximise z
	var p numeric.Problem
	x := p.AddCol(0, 1, 5)
	y := p.AddCol(0, -3, -1)
	z := p.AddCol(1, 0, 10)
	p.AddRow(0, 0, []int{x, y}, []float64{1, 1})
	p.AddRow(0, 0, []int{x, z}, []float64{1, -1})
	p.Maximize = true

	sol, err := numeric.NewGonum().SolveLinear(context.Background(), &p)
	require.NoError(t, err)
	require.Equal(t, numeric.StatusOptimal, sol.Status, sol.Message)
	assert.InDelta(t, 3, sol.Objective, 1e-7)
	assert.InDelta(t, -3, sol.X[y], 1e-7)
	assert.LessOrEqual(t, p.MaxViolation(sol.X), 1e-6)

	p.Maximize = false
	sol, err = numeric.NewGonum().SolveLinear(context.Background(), &p)
	require.NoError(t, err)
	require.Equal(t, numeric.StatusOptimal, sol.Status, sol.Message)
	assert.InDelta(t, 1, sol.Objective, 1e-7)
}

func TestGonum_LinearFailures(t *testing.T) {
	g := numeric.NewGonum()

	t.Run("infeasible row", func(t *testing.T) {
		var p numeric.Problem
		x := p.AddCol(1, 0, 1)
		p.AddRow(2, math.Inf(1), []int{x}, []float64{1})
		sol, err := g.SolveLinear(context.Background(), &p)
		require.NoError(t, err)
		assert.Equal(t, numeric.StatusInfeasible, sol.Status)
	})

	t.Run("empty column bounds", func(t *testing.T) {
		var p numeric.Problem
		p.AddCol(1, 3, 1)
		sol, err := g.SolveLinear(context.Background(), &p)
		require.NoError(t, err)
		assert.Equal(t, numeric.StatusInfeasible, sol.Status)
	})

	t.Run("unbounded ray", func(t *testing.T) {
		var p numeric.Problem
		x := p.AddCol(1, 0, math.Inf(1))
		y := p.AddCol(0, 0, math.Inf(1))
		p.AddRow(0, 0, []int{x, y}, []float64{1, -1})
		p.Maximize = true
		sol, err := g.SolveLinear(context.Background(), &p)
		require.NoError(t, err)
		assert.Equal(t, numeric.StatusUnbounded, sol.Status)
	})

	t.Run("unconstrained column", func(t *testing.T) {
		var p numeric.Problem
		p.AddCol(-1, 0, math.Inf(1))
		sol, err := g.SolveLinear(context.Background(), &p)
		require.NoError(t, err)
		assert.Equal(t, numeric.StatusUnbounded, sol.Status)
	})

	t.Run("hessian rejected", func(t *testing.T) {
		var p numeric.Problem
		p.AddCol(0, 0, 1)
		p.AddHessian(0, 0, 1)
		_, err := g.SolveLinear(context.Background(), &p)
		require.ErrorIs(t, err, numeric.ErrQuadraticTerm)
	})

	t.Run("cancelled", func(t *testing.T) {
		var p numeric.Problem
		p.AddCol(1, 0, 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		sol, err := g.SolveLinear(ctx, &p)
		require.NoError(t, err)
		assert.Equal(t, numeric.StatusNumericalError, sol.Status)
	})
}

func TestGonum_QuadraticOptimal(t *testing.T) {
	g := numeric.NewGonum()

	// (x - 3)² = x² - 6x + 9 on [0, 10] and on [0, 1]
	for _, tc := range []struct{ hi, want, obj float64 }{{10, 3, 0}, {1, 1, 4}} {
		var p numeric.Problem
		x := p.AddCol(-6, 0, tc.hi)
		p.AddHessian(x, x, 2)
		p.Offset = 9
		sol, err := g.SolveQuadratic(context.Background(), &p)
		require.NoError(t, err)
		require.Equal(t, numeric.StatusOptimal, sol.Status, sol.Message)
		assert.InDelta(t, tc.want, sol.X[x], 1e-4)
		assert.InDelta(t, tc.obj, sol.Objective, 1e-3)
	}

	// x² + y² with x + y = 2
	var p numeric.Problem
	x := p.AddCol(0, math.Inf(-1), math.Inf(1))
	y := p.AddCol(0, math.Inf(-1), math.Inf(1))
	p.AddHessian(x, x, 2)
	p.AddHessian(y, y, 2)
	p.AddRow(2, 2, []int{x, y}, []float64{1, 1})
	sol, err := g.SolveQuadratic(context.Background(), &p)
	require.NoError(t, err)
	require.Equal(t, numeric.StatusOptimal, sol.Status, sol.Message)
	assert.InDelta(t, 1, sol.X[x], 1e-4)
	assert.InDelta(t, 1, sol.X[y], 1e-4)
}

func TestGonum_QuadraticFailures(t *testing.T) {
	g := numeric.NewGonum(numeric.WithTimeLimit(10 * time.Second))

	var inf numeric.Problem
	x := inf.AddCol(0, 0, 1)
	inf.AddHessian(x, x, 1)
	inf.AddRow(5, 5, []int{x}, []float64{1})
	sol, err := g.SolveQuadratic(context.Background(), &inf)
	require.NoError(t, err)
	assert.Equal(t, numeric.StatusInfeasible, sol.Status, sol.Message)

	var unb numeric.Problem
	unb.AddCol(1, math.Inf(-1), math.Inf(1))
	sol, err = g.SolveQuadratic(context.Background(), &unb)
	require.NoError(t, err)
	assert.Equal(t, numeric.StatusUnbounded, sol.Status, sol.Message)

	var lim numeric.Problem
	y := lim.AddCol(-6, 0, 10)
	lim.AddHessian(y, y, 2)
	sol, err = numeric.NewGonum(numeric.WithMaxIterations(1)).SolveQuadratic(context.Background(), &lim)
	require.NoError(t, err)
	assert.Equal(t, numeric.StatusNumericalError, sol.Status)

	lim.Maximize = true
	_, err = g.SolveQuadratic(context.Background(), &lim)
	require.ErrorIs(t, err, numeric.ErrNotConvex)
}
