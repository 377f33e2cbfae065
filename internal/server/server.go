package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"todolist/internal/apperror"
	"todolist/internal/models"
)

// TodoStore is the persistence gateway the handlers depend on.
type TodoStore interface {
	List(ctx context.Context) ([]models.Todo, error)
	Create(ctx context.Context, description string) error
	Toggle(ctx context.Context, id int64) error
	Rename(ctx context.Context, id int64, description string) error
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// Renderer turns the todo list into an HTML page.
type Renderer interface {
	Render(w io.Writer, todos []models.Todo) error
}

// Options holds the optional parts of the HTTP surface.
type Options struct {
	// StaticDir overrides the embedded stylesheet directory.
	StaticDir string
	// RateLimitRPS enables per-client rate limiting when positive.
	RateLimitRPS   float64
	RateLimitBurst int
	// Gatherer backs /metrics; nil means the default Prometheus registry.
	Gatherer prometheus.Gatherer
}

// Server provides HTTP handlers for the todo list.
type Server struct {
	engine   *gin.Engine
	store    TodoStore
	renderer Renderer
	logger   *slog.Logger
	opts     Options
}

// New constructs the HTTP server with routes and middleware configured.
func New(store TodoStore, renderer Renderer, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"))
	router.Use(instrument())
	if opts.RateLimitRPS > 0 {
		router.Use(newRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).middleware())
	}

	srv := &Server{
		engine:   router,
		store:    store,
		renderer: renderer,
		logger:   logger,
		opts:     opts,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires the page, form actions and operational endpoints.
func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.POST("/", s.handleCreate)
	s.engine.POST("/toggle/:id", s.handleToggle)
	s.engine.POST("/delete/:id", s.handleDelete)
	s.engine.POST("/rename/:id", s.handleRename)

	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))

	s.mountStatic()
}

// handleHealth reports whether the store answers.
func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.logger.Warn("health check failed", slog.String("error", err.Error()))
		c.String(http.StatusServiceUnavailable, "unavailable")
		return
	}
	c.String(http.StatusOK, "ok")
}

// parseID converts a path parameter to int64.
func parseID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.MalformedRequest(fmt.Errorf("invalid todo id %q", raw))
	}
	return id, nil
}

// respondError logs the error and writes its message as plain text.
func (s *Server) respondError(c *gin.Context, err error) {
	status := apperror.Status(err)
	attrs := []any{slog.String("path", c.Request.URL.Path), slog.Int("status", status), slog.String("error", err.Error())}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", attrs...)
	} else {
		s.logger.Info("request rejected", attrs...)
	}
	c.String(status, "%s", err.Error())
}

// redirectHome sends the browser back to the list after a form action.
func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}
