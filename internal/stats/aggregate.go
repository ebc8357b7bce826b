package stats

import (
	"errors"
	"sort"
	"time"

	"github.com/AI2HU/pepychart/internal/models"
)

// ErrEmptyData is returned when there are no per-date download statistics
var ErrEmptyData = errors.New("no download statistics available")

// Aggregate sums the per-version counts of every date
func Aggregate(raw models.RawStats) (models.DailyTotals, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyData
	}

	totals := make(models.DailyTotals, len(raw))
	for date, versions := range raw {
		var sum int64
		for _, downloads := range versions {
			sum += downloads
		}
		totals[date] = sum
	}

	return totals, nil
}

// Summarize computes summary statistics over the daily totals.
// Dates that do not parse are ignored here; BuildSeries reports them.
func Summarize(pkg string, totalDownloads int64, totals models.DailyTotals) *models.Summary {
	summary := &models.Summary{
		Package:        pkg,
		TotalDownloads: totalDownloads,
	}

	dates := make([]string, 0, len(totals))
	for date := range totals {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		day, err := time.Parse(models.DateLayout, date)
		if err != nil {
			continue
		}
		downloads := totals[date]

		if summary.Days == 0 {
			summary.FirstDay = day
		}
		summary.LastDay = day
		summary.Days++
		summary.PeriodTotal += downloads

		if summary.Days == 1 || downloads > summary.PeakDownloads {
			summary.PeakDay = day
			summary.PeakDownloads = downloads
		}
	}

	if summary.Days > 0 {
		summary.MeanPerDay = float64(summary.PeriodTotal) / float64(summary.Days)
	}

	return summary
}
