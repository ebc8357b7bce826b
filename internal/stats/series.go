package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/AI2HU/pepychart/internal/models"
)

// MalformedDateError is returned when a date key cannot be parsed
type MalformedDateError struct {
	Date string
	Err  error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date %q: %v", e.Date, e.Err)
}

func (e *MalformedDateError) Unwrap() error {
	return e.Err
}

// BuildSeries orders the daily totals by date and, when window > 0,
// replaces every value with the trailing rolling mean.
func BuildSeries(totals models.DailyTotals, window int) (*models.Series, error) {
	type observation struct {
		day   time.Time
		total int64
	}

	observations := make([]observation, 0, len(totals))
	for date, total := range totals {
		day, err := time.Parse(models.DateLayout, date)
		if err != nil {
			return nil, &MalformedDateError{Date: date, Err: err}
		}
		observations = append(observations, observation{day: day, total: total})
	}

	sort.Slice(observations, func(i, j int) bool {
		return observations[i].day.Before(observations[j].day)
	})

	timestamps := make([]time.Time, len(observations))
	values := make([]float64, len(observations))
	for i, o := range observations {
		timestamps[i] = o.day
		values[i] = float64(o.total)
	}

	series := &models.Series{
		Name:       "downloads",
		Timestamps: timestamps,
		Values:     values,
	}

	if window > 0 {
		series.Values = RollingMean(values, window)
		series.Window = window
		series.Name = fmt.Sprintf("downloads_ma%d", window)
	}

	return series, nil
}

// RollingMean returns the trailing mean over window values for each position.
// Positions with fewer than window values available are NaN.
func RollingMean(values []float64, window int) []float64 {
	result := make([]float64, len(values))
	if window <= 0 {
		copy(result, values)
		return result
	}

	for i := range values {
		if i < window-1 {
			result[i] = math.NaN()
			continue
		}
		result[i] = stat.Mean(values[i-window+1:i+1], nil)
	}

	return result
}
