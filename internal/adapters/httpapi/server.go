// Package httpapi exposes the application services as a JSON API for the
// web client.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ctxutil"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
)

// ActorHeader carries the caller's public key.
const ActorHeader = "X-User-ID"

// Server is the life assistant API server.
type Server struct {
	users    primary.UserService
	chores   primary.ChoreService
	sessions primary.SessionService
	sweep    primary.SweepService
	router   *gin.Engine
}

// NewServer creates a new API server.
func NewServer(users primary.UserService, chores primary.ChoreService, sessions primary.SessionService, sweep primary.SweepService) *Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), actorMiddleware())

	s := &Server{
		users:    users,
		chores:   chores,
		sessions: sessions,
		sweep:    sweep,
		router:   router,
	}

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/users", s.handleRegisterUser)
		api.GET("/users/:id", s.handleGetUser)
		api.PUT("/users/:id/profile", s.handleUpdateProfile)
		api.PUT("/users/:id/push-token", s.handleSetPushToken)
		api.DELETE("/users/:id/push-token", s.handleClearPushToken)

		api.GET("/users/:id/chores", s.handleListChores)
		api.POST("/users/:id/chores", s.handleCreateChore)
		api.GET("/users/:id/chores/next", s.handleNextChore)
		api.POST("/chores/:id/complete", s.handleCompleteChore)
		api.DELETE("/chores/:id", s.handleDeleteChore)

		api.GET("/users/:id/sessions", s.handleListSessions)
		api.POST("/users/:id/sessions", s.handleStartSession)
		api.GET("/sessions/:id", s.handleGetSession)
		api.POST("/sessions/:id/toggle", s.handleToggleTask)

		api.POST("/sweep", s.handleRunSweep)
	}

	return s
}

// Handler returns the HTTP handler, for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// actorMiddleware moves the caller identity from the header into the
// request context for the audit trail.
func actorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := c.GetHeader(ActorHeader); actor != "" {
			c.Request = c.Request.WithContext(ctxutil.WithActorID(c.Request.Context(), actor))
		}
		c.Next()
	}
}
