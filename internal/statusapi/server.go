// Package statusapi exposes a small read-only HTTP surface for health checks
// and dashboards. It reads live bot state through the console bridge, so it
// shares the same serialized view the operator console sees.
package statusapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"butler-bot/internal/console"
)

// Server answers GET /status and GET /guilds.
type Server struct {
	bridge *console.Bridge
	log    zerolog.Logger
}

func New(bridge *console.Bridge, logger zerolog.Logger) *Server {
	return &Server{bridge: bridge, log: logger}
}

// Run serves until ctx is cancelled, then shuts down gracefully. The status
// API is best-effort; failures are logged and never stop the bot.
func (s *Server) Run(ctx context.Context, addr string) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("status api shutdown")
		}
	}()

	s.log.Info().Str("addr", addr).Msg("status api listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error().Err(err).Msg("status api stopped")
	}
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/status", s.handleStatus)
	router.GET("/guilds", s.handleGuilds)
	return router
}

func (s *Server) handleStatus(c *gin.Context) {
	value, err := s.bridge.Submit(console.VerbStatus, nil)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	status, ok := value.(console.StatusView)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected status payload"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"online":     status.Online,
		"latency_ms": status.Latency.Milliseconds(),
		"guilds":     status.Guilds,
		"users":      status.Users,
		"uptime_sec": int(status.Uptime.Seconds()),
	})
}

func (s *Server) handleGuilds(c *gin.Context) {
	value, err := s.bridge.Submit(console.VerbGuilds, nil)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	guilds, ok := value.([]console.GuildView)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected guilds payload"})
		return
	}
	out := make([]gin.H, 0, len(guilds))
	for _, g := range guilds {
		out = append(out, gin.H{
			"id":      g.ID,
			"name":    g.Name,
			"owner":   g.Owner,
			"members": g.Members,
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "guilds": out})
}
