// Package stats turns raw per-version download counts into daily series.
//
// The pipeline is made of pure functions:
//
//	totals, err := stats.Aggregate(project.Downloads)
//	series, err := stats.BuildSeries(totals, 7)
//	summary := stats.Summarize("requests", project.TotalDownloads, totals)
//
// A rolling window leaves the first window-1 positions undefined (NaN) rather
// than averaging over a shorter window.
package stats
