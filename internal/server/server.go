// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the recipe page over HTTP. Each route stands in
// for one UI event of the page: it calls the matching controller action
// and answers with either the full page or, for requests that accept
// application/json, the state and the patches of the affected regions.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/forkify/internal/controller"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const shutdownTimeout = 5 * time.Second

// Server routes HTTP requests to controller actions.
type Server struct {
	ctrl   *controller.Controller
	log    *slog.Logger
	engine *gin.Engine
}

// New builds the router over ctrl and renders the initial page state.
func New(ctrl *controller.Controller, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{ctrl: ctrl, log: log, engine: gin.New()}
	s.engine.Use(gin.Recovery(), requestLogger(log))
	s.routes()

	ctrl.Init()
	return s
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/", s.handleIndex)
	r.GET("/healthz", handleHealth)
	r.GET("/static/*file", handleStatic)

	r.GET("/recipes/:id", s.handleRecipe)
	r.POST("/recipes", s.handleAddRecipe)
	r.GET("/upload", s.handleUploadForm)

	r.GET("/search", s.handleSearch)
	r.GET("/search/page/:page", s.handlePage)

	r.POST("/recipe/servings", s.handleServings)
	r.POST("/recipe/bookmark", s.handleBookmark)
	r.GET("/bookmarks", s.handleBookmarks)
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("serving", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func handleStatic(c *gin.Context) {
	c.FileFromFS("static"+c.Param("file"), http.FS(staticFS))
}
