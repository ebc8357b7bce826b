package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/AI2HU/pepychart/internal/logger"
	"github.com/AI2HU/pepychart/internal/models"
	"github.com/AI2HU/pepychart/internal/pepy"
	"github.com/AI2HU/pepychart/internal/services"
	"github.com/AI2HU/pepychart/internal/stats"
)

const maxWindow = 365

// SeriesResponse is the body of GET /api/v1/projects/:package/series
type SeriesResponse struct {
	Package string               `json:"package"`
	Window  int                  `json:"window"`
	Points  []models.SeriesPoint `json:"points"`
	Summary *models.Summary      `json:"summary"`
}

var contentTypes = map[imaging.Format]string{
	imaging.PNG:  "image/png",
	imaging.JPEG: "image/jpeg",
	imaging.GIF:  "image/gif",
}

// getSeries handles GET /api/v1/projects/:package/series
func (s *Server) getSeries(c *gin.Context) {
	pkg := c.Param("package")

	window, err := s.parseWindow(c)
	if err != nil {
		s.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	data, err := s.loader.Load(c.Request.Context(), pkg, window)
	if err != nil {
		s.loadError(c, pkg, err)
		return
	}

	s.successResponse(c, SeriesResponse{
		Package: pkg,
		Window:  data.Series.Window,
		Points:  data.Series.Points(),
		Summary: data.Summary,
	})
}

// getChart handles GET /api/v1/projects/:package/chart
func (s *Server) getChart(c *gin.Context) {
	pkg := c.Param("package")

	window, err := s.parseWindow(c)
	if err != nil {
		s.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	format, err := imaging.FormatFromExtension(c.DefaultQuery("format", "png"))
	if err != nil {
		s.errorResponse(c, http.StatusBadRequest, "Invalid format: "+c.Query("format"))
		return
	}
	contentType, ok := contentTypes[format]
	if !ok {
		s.errorResponse(c, http.StatusBadRequest, "Unsupported format: "+c.Query("format"))
		return
	}

	data, err := s.loader.Load(c.Request.Context(), pkg, window)
	if err != nil {
		s.loadError(c, pkg, err)
		return
	}

	var buf bytes.Buffer
	if err := s.encoder.Encode(&buf, services.Title(pkg), data.Series, format); err != nil {
		s.errorResponse(c, http.StatusInternalServerError, "Failed to render chart: "+err.Error())
		return
	}

	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (s *Server) parseWindow(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("window"))
	if raw == "" {
		return s.defaultWindow, nil
	}

	window, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid window: %s", raw)
	}
	if window < 0 || window > maxWindow {
		return 0, fmt.Errorf("window must be between 0 and %d, got %d", maxWindow, window)
	}
	return window, nil
}

// loadError maps pipeline errors to HTTP statuses
func (s *Server) loadError(c *gin.Context, pkg string, err error) {
	var httpErr *pepy.HTTPError
	var dateErr *stats.MalformedDateError

	switch {
	case errors.As(err, &httpErr):
		if httpErr.StatusCode == http.StatusNotFound {
			s.errorResponse(c, http.StatusNotFound, "Package not found: "+pkg)
			return
		}
		s.errorResponse(c, http.StatusBadGateway, fmt.Sprintf("Upstream error (status %d)", httpErr.StatusCode))
	case errors.Is(err, stats.ErrEmptyData):
		s.errorResponse(c, http.StatusNotFound, "No statistics available for "+pkg)
	case errors.As(err, &dateErr):
		s.errorResponse(c, http.StatusBadGateway, "Upstream returned a malformed date: "+dateErr.Date)
	default:
		logger.Error("Failed to load %s: %v", pkg, err)
		s.errorResponse(c, http.StatusInternalServerError, "Failed to load statistics")
	}
}
