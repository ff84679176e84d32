package downsampling

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/soltixdb/tsfunc/internal/aggregation"
	"github.com/soltixdb/tsfunc/internal/interval"
	"github.com/soltixdb/tsfunc/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketStart(t *testing.T) {
	assert.Equal(t, int64(0), BucketStart(0, 60_000))
	assert.Equal(t, int64(0), BucketStart(59_999, 60_000))
	assert.Equal(t, int64(60_000), BucketStart(60_000, 60_000))
	assert.Equal(t, int64(-60_000), BucketStart(-1, 60_000))
}

func TestGroupBy(t *testing.T) {
	input := series(
		[2]float64{1, 0}, [2]float64{3, 30_000},
		[2]float64{10, 60_000},
		[2]float64{4, 240_000}, [2]float64{8, 299_999},
	)

	got, err := GroupBy(input, "1m", aggregation.Average)
	require.NoError(t, err)

	want := series([2]float64{2, 0}, [2]float64{10, 60_000}, [2]float64{6, 240_000})
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestGroupBy_UnsortedInput(t *testing.T) {
	input := series(
		[2]float64{8, 299_999}, [2]float64{1, 0}, [2]float64{10, 60_000},
		[2]float64{4, 240_000}, [2]float64{3, 30_000},
	)

	got, err := GroupBy(input, "1m", aggregation.Max)
	require.NoError(t, err)

	want := series([2]float64{3, 0}, [2]float64{10, 60_000}, [2]float64{8, 240_000})
	assert.True(t, want.Equal(got), "got %v", got)
	assert.True(t, got.IsSorted())
}

func TestGroupBy_InvalidInterval(t *testing.T) {
	_, err := GroupBy(series([2]float64{1, 0}), "1 minute", aggregation.Average)
	require.Error(t, err)
	assert.True(t, errors.Is(err, interval.ErrInvalidInterval))

	_, err = GroupByPerf(series([2]float64{1, 0}), "", aggregation.Average)
	require.Error(t, err)
	assert.True(t, errors.Is(err, interval.ErrInvalidInterval))
}

func TestGroupBy_Empty(t *testing.T) {
	got, err := GroupBy(nil, "1m", aggregation.Sum)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = GroupByPerf(models.Series{}, "1m", aggregation.Sum)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGroupByPerf_FillsGapsWithNull(t *testing.T) {
	input := series(
		[2]float64{1, 0}, [2]float64{3, 30_000},
		[2]float64{10, 60_000},
		[2]float64{4, 240_000}, [2]float64{8, 299_999},
	)

	got, err := GroupByPerf(input, "1m", aggregation.Average)
	require.NoError(t, err)

	want := models.Series{
		models.NewPoint(2, 0),
		models.NewPoint(10, 60_000),
		models.NullPoint(120_000),
		models.NullPoint(180_000),
		models.NewPoint(6, 240_000),
	}
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestGroupByPerf_SingleBucket(t *testing.T) {
	input := series([2]float64{1, 1000}, [2]float64{2, 2000})

	got := GroupByPerfMs(input, 60_000, aggregation.Sum)

	assert.True(t, series([2]float64{3, 0}).Equal(got), "got %v", got)
}

func TestGroupByPerf_DropsOutOfOrderPoints(t *testing.T) {
	input := series([2]float64{1, 60_000}, [2]float64{100, 0}, [2]float64{2, 61_000})

	got := GroupByPerfMs(input, 60_000, aggregation.Sum)

	// the point in bucket 0 arrives after bucket 60000 is open and is dropped
	assert.True(t, series([2]float64{3, 60_000}).Equal(got), "got %v", got)
}

func TestGroupByPerf_NegativeTimestamps(t *testing.T) {
	input := series([2]float64{1, -1500}, [2]float64{2, -500}, [2]float64{3, 500})

	got := GroupByPerfMs(input, 1000, aggregation.Sum)

	want := series([2]float64{1, -2000}, [2]float64{2, -1000}, [2]float64{3, 0})
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestGroupByPerf_MatchesGroupByOnSharedBuckets(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	input := make(models.Series, 0, 1000)
	ts := int64(0)
	for i := 0; i < 1000; i++ {
		ts += rng.Int63n(20_000)
		input = append(input, models.NewPoint(rng.Float64()*100, ts))
	}

	for _, typ := range aggregation.ValidTypes() {
		fn, err := aggregation.Lookup(string(typ))
		require.NoError(t, err)

		naive := GroupByMs(input, 60_000, fn)
		perf := GroupByPerfMs(input, 60_000, fn)

		byTs := make(map[int64]models.Value, len(naive))
		for _, p := range naive {
			byTs[p.Timestamp] = p.Value
		}

		filled := 0
		for _, p := range perf {
			v, ok := byTs[p.Timestamp]
			if !ok {
				assert.False(t, p.Value.Valid, "%s: gap bucket %d must be null", typ, p.Timestamp)
				filled++
				continue
			}
			assert.Truef(t, v.Equal(p.Value), "%s: bucket %d: groupBy %v, groupByPerf %v", typ, p.Timestamp, v, p.Value)
		}
		assert.Equal(t, len(naive), len(perf)-filled, typ)
	}
}

func BenchmarkGroupByPerf(b *testing.B) {
	input := make(models.Series, 100_000)
	for i := range input {
		input[i] = models.NewPoint(float64(i), int64(i)*1000)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GroupByPerfMs(input, 60_000, aggregation.Average)
	}
}

func BenchmarkGroupBy(b *testing.B) {
	input := make(models.Series, 100_000)
	for i := range input {
		input[i] = models.NewPoint(float64(i), int64(i)*1000)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GroupByMs(input, 60_000, aggregation.Average)
	}
}
