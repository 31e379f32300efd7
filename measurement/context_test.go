package measurement_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/metatwin/measurement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry_Validation(t *testing.T) {
	one := []float64{1}
	v := []measurement.Variable{{Ref: "R1", Coefficient: 1}}
	tests := []struct {
		name string
		id   string
		vars []measurement.Variable
		lo   []float64
		hi   []float64
		tg   []float64
		cf   []float64
		want error
	}{
		{"empty id", "", v, one, one, one, one, measurement.ErrEmptyID},
		{"no vars", "e", nil, one, one, one, one, measurement.ErrNoVariables},
		{"zero coef", "e", []measurement.Variable{{Ref: "R1"}}, one, one, one, one, measurement.ErrInvalidCoefficient},
		{"dup var", "e", []measurement.Variable{{Ref: "R1", Coefficient: 1}, {Ref: "R1", Coefficient: 2}}, one, one, one, one, measurement.ErrDuplicateVariable},
		{"short upper", "e", v, one, nil, one, one, measurement.ErrVectorLength},
		{"zero length", "e", v, nil, nil, nil, nil, measurement.ErrVectorLength},
		{"lower>upper", "e", v, []float64{2}, one, one, one, measurement.ErrInvalidBounds},
		{"nan target", "e", v, one, one, []float64{math.NaN()}, one, measurement.ErrInvalidTarget},
		{"confidence", "e", v, one, one, one, []float64{1.5}, measurement.ErrInvalidConfidence},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := measurement.NewEntry(tc.id, tc.vars, tc.lo, tc.hi, tc.tg, tc.cf)
			require.ErrorIs(t, err, tc.want)
		})
	}

	e, err := measurement.NewEntry("open", v,
		[]float64{math.Inf(-1)}, []float64{math.Inf(1)}, []float64{0}, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, 1, e.Len())
}

func TestEntry_At(t *testing.T) {
	e, err := measurement.NewEntry("ex", []measurement.Variable{{Ref: "R2", Coefficient: 1}},
		[]float64{0, 1}, []float64{40, 41}, []float64{30, 31}, []float64{1, 0.5})
	require.NoError(t, err)

	b, err := e.At(1)
	require.NoError(t, err)
	assert.Equal(t, measurement.Bound{Lower: 1, Upper: 41, Target: 31, Confidence: 0.5}, b)
	assert.False(t, b.Pinned())

	_, err = e.At(2)
	require.ErrorIs(t, err, measurement.ErrSimulationIndex)
}

func TestContext_AddAndValidate(t *testing.T) {
	c := measurement.New("ctx")
	a, err := measurement.Single("a", "R1", 0, 10, 5, 1)
	require.NoError(t, err)
	require.NoError(t, c.Add(a))
	require.ErrorIs(t, c.Add(a), measurement.ErrDuplicateEntry)
	require.NoError(t, c.Validate())
	assert.Equal(t, 1, c.NumSimulations())
	assert.Equal(t, []string{"sim_0"}, c.ConditionNames())

	two, err := measurement.NewEntry("b", []measurement.Variable{{Ref: "R2", Coefficient: -1}},
		[]float64{0, 0}, []float64{1, 1}, []float64{0, 0}, []float64{0, 0})
	require.NoError(t, err)
	require.NoError(t, c.Add(two))
	require.ErrorIs(t, c.Validate(), measurement.ErrSimulationMismatch)

	named := measurement.New("named", "glucose", "acetate")
	require.NoError(t, named.Add(a))
	require.ErrorIs(t, named.Validate(), measurement.ErrSimulationMismatch)
}

func TestContext_CopiesAndEqual(t *testing.T) {
	c := measurement.New("ctx", "only")
	a, _ := measurement.Single("a", "R1", 0, 10, 5, 1)
	require.NoError(t, c.Add(a))

	got, ok := c.Entry("a")
	require.True(t, ok)
	got.Target[0] = 99
	again, _ := c.Entry("a")
	assert.Equal(t, 5.0, again.Target[0])

	cp := c.Clone()
	assert.True(t, c.Equal(cp))
	b, _ := measurement.Single("b", "R2", 0, 1, 0, 0)
	require.NoError(t, cp.Add(b))
	assert.False(t, c.Equal(cp))
	assert.Equal(t, 1, c.Len())
}
