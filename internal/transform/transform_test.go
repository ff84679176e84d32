package transform

import (
	"math"
	"testing"

	"github.com/soltixdb/tsfunc/internal/models"
	"github.com/stretchr/testify/assert"
)

func pts(pairs ...[2]float64) models.Series {
	s := make(models.Series, len(pairs))
	for i, p := range pairs {
		s[i] = models.NewPoint(p[0], int64(p[1]))
	}
	return s
}

func sample() models.Series {
	return models.Series{
		models.NewPoint(1.5, 1000),
		models.NullPoint(2000),
		models.NewPoint(-4, 3000),
		models.NewPoint(0, 4000),
	}
}

func TestScale(t *testing.T) {
	in := sample()

	got := Scale(in, 2)

	want := models.Series{
		models.NewPoint(3, 1000),
		models.NullPoint(2000),
		models.NewPoint(-8, 3000),
		models.NewPoint(0, 4000),
	}
	assert.True(t, want.Equal(got), "got %v", got)
	assert.Equal(t, sample(), in, "Scale must not modify its input")
}

func TestScale_Identity(t *testing.T) {
	in := sample()
	assert.True(t, in.Equal(Scale(in, 1)))
}

func TestScale_Composition(t *testing.T) {
	in := sample()
	for _, f := range []float64{0.5, 2, -3} {
		for _, g := range []float64{4, -0.25, 10} {
			assert.True(t, Scale(in, f*g).Equal(Scale(Scale(in, f), g)), "f=%v g=%v", f, g)
		}
	}
}

func TestScaleInPlace(t *testing.T) {
	in := sample()

	got := ScaleInPlace(in, 10)

	assert.Same(t, &in[0], &got[0])
	assert.Equal(t, models.Float(15), in[0].Value)
	assert.False(t, in[1].Value.Valid)
	assert.Equal(t, models.Float(-40), in[2].Value)
}

func TestScale_Empty(t *testing.T) {
	assert.Empty(t, Scale(nil, 3))
	assert.Empty(t, ScaleInPlace(models.Series{}, 3))
}

func TestTimeShift(t *testing.T) {
	in := pts([2]float64{1, 1000}, [2]float64{2, 2000})

	got := TimeShift(in, -500)

	assert.Equal(t, []int64{500, 1500}, got.Timestamps())
	assert.Equal(t, []int64{1000, 2000}, in.Timestamps())
	assert.Equal(t, in.Values(), got.Values())
}

func TestDelta(t *testing.T) {
	in := pts([2]float64{10, 1000}, [2]float64{15, 2000}, [2]float64{12, 3000}, [2]float64{12, 4000})

	got := Delta(in)

	want := pts([2]float64{5, 2000}, [2]float64{-3, 3000}, [2]float64{0, 4000})
	assert.True(t, want.Equal(got), "got %v", got)
	assert.Len(t, got, len(in)-1)
}

func TestDelta_Nulls(t *testing.T) {
	in := models.Series{models.NewPoint(1, 1000), models.NullPoint(2000), models.NewPoint(5, 3000)}

	got := Delta(in)

	want := models.Series{models.NullPoint(2000), models.NullPoint(3000)}
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestRate(t *testing.T) {
	in := pts([2]float64{0, 0}, [2]float64{10, 2000}, [2]float64{40, 5000})

	got := Rate(in)

	want := pts([2]float64{5, 2000}, [2]float64{10, 5000})
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestRate_CounterResetBeforeAnyRate(t *testing.T) {
	in := pts([2]float64{10, 1000}, [2]float64{5, 2000}, [2]float64{8, 3000})

	got := Rate(in)

	// 5 < 10 is a reset: the initial 0 is repeated; the next pair is (8-5)/1s
	want := pts([2]float64{0, 2000}, [2]float64{3, 3000})
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestRate_CounterResetKeepsLastRate(t *testing.T) {
	// 0 -> 20 is a rate of 20, 20 -> 2 resets, 2 -> 3 is a rate of 1, 3 -> 1 resets
	in := pts(
		[2]float64{0, 0}, [2]float64{20, 1000},
		[2]float64{2, 2000},
		[2]float64{3, 3000},
		[2]float64{1, 4000},
	)

	got := Rate(in)

	want := pts([2]float64{20, 1000}, [2]float64{20, 2000}, [2]float64{1, 3000}, [2]float64{1, 4000})
	assert.True(t, want.Equal(got), "got %v", got)
	for _, p := range got {
		assert.GreaterOrEqual(t, p.Value.Float, 0.0)
	}
}

func TestRate_ZeroTimeDelta(t *testing.T) {
	in := pts([2]float64{1, 1000}, [2]float64{3, 1000}, [2]float64{3, 1000})

	got := Rate(in)

	assert.Len(t, got, 2)
	assert.True(t, math.IsInf(got[0].Value.Float, 1), "positive delta over zero time is +Inf")
	assert.True(t, math.IsNaN(got[1].Value.Float), "zero delta over zero time is NaN")
}

func TestRate_Nulls(t *testing.T) {
	in := models.Series{
		models.NewPoint(0, 0), models.NewPoint(4, 1000),
		models.NullPoint(2000),
		models.NewPoint(2, 3000), models.NewPoint(1, 4000),
	}

	got := Rate(in)

	want := models.Series{
		models.NewPoint(4, 1000),
		models.NullPoint(2000),
		models.NullPoint(3000),
		models.NewPoint(4, 4000), // reset after the gap keeps the rate from before it
	}
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestDeltaRate_Length(t *testing.T) {
	for n := 0; n < 5; n++ {
		in := make(models.Series, n)
		for i := range in {
			in[i] = models.NewPoint(float64(i), int64(i)*1000)
		}
		want := n - 1
		if want < 0 {
			want = 0
		}
		assert.Len(t, Delta(in), want, "delta n=%d", n)
		assert.Len(t, Rate(in), want, "rate n=%d", n)
	}
}
