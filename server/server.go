// Package server exposes the session controller over HTTP
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/pomodoro"
	"github.com/doni-wahyudi/stillmove-planner-sub001/store"
)

const shutdownTimeout = 5 * time.Second

// Server serves the timer API for one controller.
type Server struct {
	clock  clockwork.Clock
	ctrl   *pomodoro.Controller
	db     store.DB
	logger *slog.Logger
}

type Option func(*Server)

func WithClock(clock clockwork.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func New(ctrl *pomodoro.Controller, db store.DB, opts ...Option) *Server {
	s := &Server{
		clock:  clockwork.NewRealClock(),
		ctrl:   ctrl,
		db:     db,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		level := slog.LevelDebug
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}

		s.logger.Log(c.Request.Context(), level, "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// Handler returns the gin engine with every route registered.
func (s *Server) Handler() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")

	timer := api.Group("/timer")
	timer.GET("", s.getState)
	timer.POST("/start", s.transition(s.ctrl.Start))
	timer.POST("/pause", s.transition(s.ctrl.Pause))
	timer.POST("/resume", s.transition(s.ctrl.Resume))
	timer.POST("/reset", s.transition(s.ctrl.Reset))
	timer.POST("/skip", s.transition(s.ctrl.Skip))
	timer.POST("/reconcile", s.reconcile)
	timer.PUT("/task", s.setTask)

	api.GET("/settings", s.getSettings)
	api.PUT("/settings", s.updateSettings)

	api.GET("/sessions", s.listSessions)
	api.GET("/stats", s.getStats)

	return engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)

	if serveErr := <-errCh; !errors.Is(serveErr, http.ErrServerClosed) {
		err = errors.Join(err, serveErr)
	}

	return err
}
