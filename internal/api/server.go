package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/AI2HU/pepychart/internal/logger"
	"github.com/AI2HU/pepychart/internal/models"
	"github.com/AI2HU/pepychart/internal/services"
)

const requestIDHeader = "X-Request-ID"

// Loader fetches and derives the series of a package
type Loader interface {
	Load(ctx context.Context, pkg string, window int) (*services.ChartData, error)
}

// Encoder draws a series into an image stream
type Encoder interface {
	Encode(w io.Writer, title string, series *models.Series, format imaging.Format) error
}

// Options configures the server
type Options struct {
	DefaultWindow     int
	RequestsPerMinute int
}

// Server represents the API server
type Server struct {
	router        *gin.Engine
	loader        Loader
	encoder       Encoder
	limiter       *rate.Limiter
	defaultWindow int
}

// NewServer creates a new API server
func NewServer(loader Loader, encoder Encoder, opts Options) *Server {
	s := &Server{
		router:        gin.New(),
		loader:        loader,
		encoder:       encoder,
		limiter:       newLimiter(opts.RequestsPerMinute),
		defaultWindow: opts.DefaultWindow,
	}

	s.router.Use(gin.LoggerWithWriter(logger.Writer(logger.INFO)))
	s.router.Use(gin.RecoveryWithWriter(logger.Writer(logger.ERROR)))
	s.router.Use(requestID())
	s.setupRoutes()

	return s
}

// newLimiter allows requestsPerMinute upstream fetches; zero or less means unlimited
func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := requestsPerMinute / 6
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), burst)
}

func (s *Server) setupRoutes() {
	v1 := s.router.Group("/api/v1")
	v1.GET("/health", s.health)

	projects := v1.Group("/projects/:package", s.rateLimit())
	projects.GET("/series", s.getSeries)
	projects.GET("/chart", s.getChart)
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server on address
func (s *Server) Run(address string) error {
	return s.router.Run(address)
}

// health handles GET /api/v1/health
func (s *Server) health(c *gin.Context) {
	s.successResponse(c, gin.H{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) errorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		RequestID: c.GetString(requestIDHeader),
	})
}

func (s *Server) successResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// rateLimit protects the upstream API key; every project request costs one fetch
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow() {
			s.errorResponse(c, http.StatusTooManyRequests, "Rate limit exceeded, try again later")
			return
		}
		c.Next()
	}
}
