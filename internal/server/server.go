// Package server exposes the journal as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradezilla/internal/coach"
	"github.com/rustyeddy/tradezilla/internal/service"
	"github.com/rustyeddy/tradezilla/notify"
)

type Server struct {
	Journal *service.Journal
	Coach   *coach.Coach // nil disables the coach routes
	Notify  notify.Options
	Logger  *zap.Logger

	// Now is the clock used for period windows; time.Now when nil.
	Now func() time.Time
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Engine builds a gin engine with every route registered.
func (s *Server) Engine(mode string) *gin.Engine {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if mode != "" {
		gin.SetMode(mode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestID())
	engine.Use(accessLog(s.Logger))
	engine.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "not found", nil)
	})

	s.Register(engine)
	return engine
}

func (s *Server) Register(r *gin.Engine) {
	r.GET("/healthz", s.health)

	api := r.Group("/api")
	api.GET("/trades", s.listTrades)
	api.GET("/trades/:id", s.getTrade)
	api.POST("/trades", s.createTrade)
	api.PUT("/trades/:id", s.updateTrade)
	api.DELETE("/trades/:id", s.deleteTrade)

	api.GET("/metrics", s.getMetrics)
	api.GET("/equity", s.getEquity)
	api.GET("/daily", s.getDaily)
	api.GET("/calendar", s.getCalendar)
	api.GET("/report", s.getReport)
	api.GET("/notifications", s.getNotifications)

	api.GET("/profile", s.getProfile)
	api.PUT("/profile", s.putProfile)

	api.POST("/coach/review", s.coachReview)
	api.POST("/coach/chat", s.coachChat)
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, mode string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine(mode),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.Logger.Info("http server stopped")
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
