package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/pepychart/internal/models"
)

func TestAggregate(t *testing.T) {
	raw := models.RawStats{
		"2023-01-01": {"1.0": 5, "1.1": 3},
		"2023-01-02": {"1.1": 10},
		"2023-01-03": {"1.0": 0, "1.1": 2, "2.0": 40},
	}

	totals, err := Aggregate(raw)
	require.NoError(t, err)

	assert.Len(t, totals, len(raw))
	assert.Equal(t, models.DailyTotals{
		"2023-01-01": 8,
		"2023-01-02": 10,
		"2023-01-03": 42,
	}, totals)
}

func TestAggregateSumsEveryDate(t *testing.T) {
	raw := models.RawStats{}
	for day := 1; day <= 28; day++ {
		date := time.Date(2024, time.February, day, 0, 0, 0, 0, time.UTC).Format(models.DateLayout)
		raw[date] = map[string]int64{"0.1": int64(day), "0.2": int64(day * 2), "0.3": 1}
	}

	totals, err := Aggregate(raw)
	require.NoError(t, err)
	require.Len(t, totals, 28)

	for date, versions := range raw {
		var want int64
		for _, n := range versions {
			want += n
		}
		assert.Equal(t, want, totals[date], "date %s", date)
	}
}

func TestAggregateEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawStats
	}{
		{"nil", nil},
		{"empty", models.RawStats{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := Aggregate(tt.raw)
			assert.ErrorIs(t, err, ErrEmptyData)
			assert.Nil(t, totals)
		})
	}
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	raw := models.RawStats{"2023-01-01": {"1.0": 5, "1.1": 3}}

	_, err := Aggregate(raw)
	require.NoError(t, err)

	assert.Equal(t, models.RawStats{"2023-01-01": {"1.0": 5, "1.1": 3}}, raw)
}

func TestSummarize(t *testing.T) {
	totals := models.DailyTotals{
		"2023-01-03": 30,
		"2023-01-01": 10,
		"2023-01-02": 50,
		"2023-01-04": 10,
	}

	summary := Summarize("requests", 1000, totals)

	assert.Equal(t, "requests", summary.Package)
	assert.Equal(t, int64(1000), summary.TotalDownloads)
	assert.Equal(t, int64(100), summary.PeriodTotal)
	assert.Equal(t, 4, summary.Days)
	assert.Equal(t, "2023-01-01", summary.FirstDay.Format(models.DateLayout))
	assert.Equal(t, "2023-01-04", summary.LastDay.Format(models.DateLayout))
	assert.Equal(t, "2023-01-02", summary.PeakDay.Format(models.DateLayout))
	assert.Equal(t, int64(50), summary.PeakDownloads)
	assert.InDelta(t, 25.0, summary.MeanPerDay, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize("requests", 0, models.DailyTotals{})

	assert.Zero(t, summary.Days)
	assert.Zero(t, summary.MeanPerDay)
	assert.True(t, summary.PeakDay.IsZero())
}
