package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bvhlab/complexity/errs"
	"github.com/bvhlab/complexity/format"
)

func TestSeries_MaxN(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   int
	}{
		{"empty", nil, -1},
		{"increasing", []Point{{10, 1}, {100, 2}, {1000, 3}}, 2},
		{"unordered", []Point{{10, 1}, {5000, 2}, {1000, 3}}, 1},
		{"tie keeps first", []Point{{7, 1}, {7, 2}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Series{Points: tt.points}.MaxN())
		})
	}
}

func TestSeries_Validate(t *testing.T) {
	require.NoError(t, Series{Points: []Point{{1, 0.1}, {2, 0.2}}}.Validate())
	require.NoError(t, Series{}.Validate())

	for _, n := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		err := Series{Name: "s", Points: []Point{{1, 0.1}, {n, 0.2}}}.Validate()
		require.ErrorIs(t, err, errs.ErrInvalidDomain, "n=%g", n)
	}
}

func TestTable_Series(t *testing.T) {
	table := &Table{
		Schema:  format.SchemaComparison,
		Samples: []Sample{{N: 1, Values: []float64{2, 3}}},
	}

	s, err := table.Series(1)
	require.NoError(t, err)
	require.Equal(t, "With BVH", s.Name)
	require.Equal(t, []Point{{N: 1, T: 3}}, s.Points)

	_, err = table.Series(2)
	require.ErrorIs(t, err, errs.ErrSchemaMismatch)
	_, err = table.Series(-1)
	require.ErrorIs(t, err, errs.ErrSchemaMismatch)
}

func TestSpeedupAtMax(t *testing.T) {
	baseline := Series{Name: "No BVH", Points: []Point{{10, 0.1}, {100, 1.0}, {1000, 10.0}}}
	accel := Series{Name: "With BVH", Points: []Point{{10, 0.01}, {100, 0.02}, {1000, 0.03}}}

	t.Run("ratio at largest n", func(t *testing.T) {
		sp, err := SpeedupAtMax(baseline, accel)
		require.NoError(t, err)
		require.Equal(t, 1000.0, sp.N)
		require.InDelta(t, 333.333, sp.Ratio, 1e-3)
	})

	t.Run("largest n is not the last row", func(t *testing.T) {
		b := Series{Points: []Point{{1000, 10.0}, {10, 0.1}}}
		a := Series{Points: []Point{{1000, 0.5}, {10, 0.05}}}
		sp, err := SpeedupAtMax(b, a)
		require.NoError(t, err)
		require.Equal(t, 1000.0, sp.N)
		require.InDelta(t, 20.0, sp.Ratio, 1e-12)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := SpeedupAtMax(Series{}, Series{})
		require.ErrorIs(t, err, errs.ErrInsufficientData)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := SpeedupAtMax(baseline, Series{Points: accel.Points[:2]})
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})

	t.Run("misaligned counts", func(t *testing.T) {
		other := Series{Points: []Point{{10, 0.01}, {100, 0.02}, {999, 0.03}}}
		_, err := SpeedupAtMax(baseline, other)
		require.ErrorIs(t, err, errs.ErrSchemaMismatch)
	})

	t.Run("zero accelerated time", func(t *testing.T) {
		zero := Series{Points: []Point{{10, 0.01}, {100, 0.02}, {1000, 0}}}
		_, err := SpeedupAtMax(baseline, zero)
		require.ErrorIs(t, err, errs.ErrInvalidDomain)
	})
}
