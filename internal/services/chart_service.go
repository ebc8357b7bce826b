package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/AI2HU/pepychart/internal/config"
	"github.com/AI2HU/pepychart/internal/logger"
	"github.com/AI2HU/pepychart/internal/models"
	"github.com/AI2HU/pepychart/internal/opener"
	"github.com/AI2HU/pepychart/internal/stats"
)

// StatsFetcher retrieves the raw statistics of a package
type StatsFetcher interface {
	Fetch(ctx context.Context, pkg string) (*models.ProjectStats, error)
}

// ChartRenderer writes a series to an image file
type ChartRenderer interface {
	Render(title string, series *models.Series, path string) error
}

// ChartData is everything derived from one fetch
type ChartData struct {
	Package string
	Project *models.ProjectStats
	Totals  models.DailyTotals
	Series  *models.Series
	Summary *models.Summary
}

// ChartService runs fetch, aggregate, build series, render and open in order
type ChartService struct {
	fetcher  StatsFetcher
	renderer ChartRenderer
	opener   opener.Opener
}

// NewChartService creates a new chart service. renderer and op may be nil
// when the caller never creates images.
func NewChartService(fetcher StatsFetcher, renderer ChartRenderer, op opener.Opener) *ChartService {
	if op == nil {
		op = opener.Nop{}
	}
	return &ChartService{
		fetcher:  fetcher,
		renderer: renderer,
		opener:   op,
	}
}

// Title returns the chart title used for a package
func Title(pkg string) string {
	return fmt.Sprintf("%s downloads", pkg)
}

// Load fetches the statistics of pkg and derives the daily series
func (s *ChartService) Load(ctx context.Context, pkg string, window int) (*ChartData, error) {
	project, err := s.fetcher.Fetch(ctx, pkg)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	totals, err := stats.Aggregate(project.Downloads)
	if err != nil {
		if errors.Is(err, stats.ErrEmptyData) {
			return nil, fmt.Errorf("there are no statistics available from pepy for %s: %w", pkg, err)
		}
		return nil, err
	}

	series, err := stats.BuildSeries(totals, window)
	if err != nil {
		return nil, fmt.Errorf("failed to build series for %s: %w", pkg, err)
	}
	series.Name = pkg

	logger.Debug("Built series for %s: %d days, window %d", pkg, series.Len(), window)

	return &ChartData{
		Package: pkg,
		Project: project,
		Totals:  totals,
		Series:  series,
		Summary: stats.Summarize(pkg, project.TotalDownloads, totals),
	}, nil
}

// Create loads the data and, when asked, renders and opens the chart
func (s *ChartService) Create(ctx context.Context, opts *config.CreateOptions) (*ChartData, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	data, err := s.Load(ctx, opts.Package, opts.RollingWindow)
	if err != nil {
		return nil, err
	}

	if !opts.CreateImage {
		return data, nil
	}

	if s.renderer == nil {
		return nil, fmt.Errorf("no chart renderer configured")
	}
	if err := s.renderer.Render(Title(opts.Package), data.Series, opts.OutputPath); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	logger.Info("Chart for %s saved to %s", opts.Package, opts.OutputPath)

	if opts.OpenImage {
		if err := s.opener.Open(opts.OutputPath); err != nil {
			return nil, err
		}
	}

	return data, nil
}
