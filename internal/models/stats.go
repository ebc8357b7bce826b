package models

import (
	"math"
	"time"
)

// DateLayout is the layout of the date keys returned by the statistics API
const DateLayout = "2006-01-02"

// RawStats maps a date to the download count of every version seen that day
type RawStats map[string]map[string]int64

// DailyTotals maps a date to the downloads of all versions summed for that day
type DailyTotals map[string]int64

// ProjectStats represents the body of a project statistics response
type ProjectStats struct {
	ID             string   `json:"id"`
	TotalDownloads int64    `json:"total_downloads"`
	Versions       []string `json:"versions"`
	Downloads      RawStats `json:"downloads"`
}

// Series is a chronologically ordered sequence of daily observations.
// Undefined values (the leading positions of a rolling mean) are NaN.
type Series struct {
	Name       string
	Window     int
	Timestamps []time.Time
	Values     []float64
}

// Len returns the number of observations
func (s *Series) Len() int {
	return len(s.Values)
}

// Defined reports whether position i holds a value
func (s *Series) Defined(i int) bool {
	return !math.IsNaN(s.Values[i])
}

// Points returns the series as JSON friendly points
func (s *Series) Points() []SeriesPoint {
	points := make([]SeriesPoint, s.Len())
	for i, ts := range s.Timestamps {
		points[i] = SeriesPoint{Date: ts.Format(DateLayout)}
		if s.Defined(i) {
			v := s.Values[i]
			points[i].Value = &v
		}
	}
	return points
}

// SeriesPoint represents one observation; Value is nil when undefined
type SeriesPoint struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// Summary represents aggregated statistics for a package over the fetched period
type Summary struct {
	Package        string    `json:"package"`
	TotalDownloads int64     `json:"total_downloads"`
	PeriodTotal    int64     `json:"period_total"`
	Days           int       `json:"days"`
	FirstDay       time.Time `json:"first_day"`
	LastDay        time.Time `json:"last_day"`
	PeakDay        time.Time `json:"peak_day"`
	PeakDownloads  int64     `json:"peak_downloads"`
	MeanPerDay     float64   `json:"mean_per_day"`
}
