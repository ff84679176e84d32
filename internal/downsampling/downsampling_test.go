package downsampling

import (
	"testing"

	"github.com/soltixdb/tsfunc/internal/aggregation"
	"github.com/soltixdb/tsfunc/internal/models"
	"github.com/stretchr/testify/assert"
)

func series(pairs ...[2]float64) models.Series {
	s := make(models.Series, len(pairs))
	for i, p := range pairs {
		s[i] = models.NewPoint(p[0], int64(p[1]))
	}
	return s
}

func TestDownsample_PerSecondMax(t *testing.T) {
	input := series([2]float64{1, 1000}, [2]float64{2, 2000}, [2]float64{3, 3000})

	got := Downsample(input, 3, 1000, aggregation.Max)

	want := series([2]float64{1, 1000}, [2]float64{2, 2000}, [2]float64{3, 3000})
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestDownsample_AggregatesWithinWindow(t *testing.T) {
	input := series(
		[2]float64{1, 1100}, [2]float64{2, 1500}, [2]float64{6, 2000},
		[2]float64{10, 2500}, [2]float64{20, 3000},
	)

	tests := []struct {
		name string
		fn   aggregation.Func
		want models.Series
	}{
		{"default avg", nil, series([2]float64{3, 2000}, [2]float64{15, 3000})},
		{"min", aggregation.Min, series([2]float64{1, 2000}, [2]float64{10, 3000})},
		{"max", aggregation.Max, series([2]float64{6, 2000}, [2]float64{20, 3000})},
		{"sum", aggregation.Sum, series([2]float64{9, 2000}, [2]float64{30, 3000})},
		{"count", aggregation.Count, series([2]float64{3, 2000}, [2]float64{2, 3000})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Downsample(input, 3, 1000, tt.fn)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestDownsample_SkipsEmptyWindows(t *testing.T) {
	input := series([2]float64{1, 1000}, [2]float64{2, 1200}, [2]float64{7, 5500})

	got := Downsample(input, 6, 1000, aggregation.Average)

	// windows (4000,5000] .. (1000,2000] are empty and produce nothing
	want := series([2]float64{1, 1000}, [2]float64{2, 2000}, [2]float64{7, 6000})
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestDownsample_ManyEmptyWindows(t *testing.T) {
	input := series([2]float64{1, 0}, [2]float64{2, 1_000_000_000})

	got := Downsample(input, 1_000_000, 1000, aggregation.Average)

	assert.Equal(t, []int64{0, 1_000_000_000}, got.Timestamps())
}

func TestDownsample_IgnoresPointsAfterTimeTo(t *testing.T) {
	input := series([2]float64{1, 1000}, [2]float64{2, 2000}, [2]float64{99, 3000})

	got := Downsample(input, 2, 1000, aggregation.Max)

	want := series([2]float64{1, 1000}, [2]float64{2, 2000})
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestDownsample_WindowBoundaries(t *testing.T) {
	// windows are (from, to]: 2000 belongs to (1000,2000], 2001 to (2000,3000]
	input := series([2]float64{1, 2000}, [2]float64{5, 2001})

	got := Downsample(input, 3, 1000, aggregation.Average)

	want := series([2]float64{1, 2000}, [2]float64{5, 3000})
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestDownsample_NullValues(t *testing.T) {
	input := models.Series{models.NullPoint(1500), models.NewPoint(4, 1800), models.NullPoint(2500)}

	got := Downsample(input, 3, 1000, aggregation.Average)

	want := models.Series{models.NewPoint(4, 2000), models.NullPoint(3000)}
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestDownsample_EdgeCases(t *testing.T) {
	assert.Empty(t, Downsample(nil, 3, 1000, nil))
	assert.Empty(t, Downsample(models.Series{}, 3, 1000, nil))
	assert.Empty(t, Downsample(series([2]float64{1, 1000}), 3, 0, nil))
	assert.Empty(t, Downsample(series([2]float64{1, 1000}), 3, -5, nil))
}

func TestDownsample_OutputSortedAndLengthMatchesWindows(t *testing.T) {
	input := make(models.Series, 0, 500)
	for i := 0; i < 500; i++ {
		input = append(input, models.NewPoint(float64(i), int64(i)*370))
	}

	got := Downsample(input, 185, 1000, aggregation.Average)

	assert.True(t, got.IsSorted())
	windows := make(map[int64]bool)
	for _, p := range input {
		// window index counted back from 185000
		windows[(185_000-p.Timestamp)/1000] = true
	}
	assert.Len(t, got, len(windows))
}

func TestDownsample_DoesNotModifyInput(t *testing.T) {
	input := series([2]float64{3, 3000}, [2]float64{1, 1000})
	before := input.Clone()

	Downsample(input, 3, 1000, aggregation.Max)

	assert.Equal(t, before, input)
}
