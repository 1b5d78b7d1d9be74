// Package web implements the JSON HTTP API: chat, authentication,
// per-user history, and corpus file listing and download.
package web

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/lawgic-labs/lawgic/internal/app"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driving"
	"github.com/lawgic-labs/lawgic/internal/logger"
)

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// services groups the driving ports the handlers need.
type services struct {
	chat    driving.ChatService
	auth    driving.AuthService
	history driving.HistoryService
	files   driving.FileService
}

// Server is the lawgic HTTP server.
type Server struct {
	svc        services
	httpServer *http.Server
	indexPath  string
	reload     func() error
}

// NewServer creates the HTTP server for the assembled application.
func NewServer(a *app.App, addr string) (*Server, error) {
	s := newServer(services{
		chat:    a.Chat,
		auth:    a.Auth,
		history: a.History,
		files:   a.Files,
	}, a.IndexPath(), a.ReloadIndex)
	s.httpServer.Addr = addr
	return s, nil
}

// newServer wires the routes. Split from NewServer so handler tests can
// substitute stub services.
func newServer(svc services, indexPath string, reload func() error) *Server {
	s := &Server{
		svc:       svc,
		indexPath: indexPath,
		reload:    reload,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleStatus)
	mux.HandleFunc("POST /api/signup", s.handleSignup)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("POST /api/chat", s.requireAuth(s.handleChat))
	mux.HandleFunc("GET /api/history", s.requireAuth(s.handleHistory))
	mux.HandleFunc("GET /api/files", s.requireAuth(s.handleFiles))
	mux.HandleFunc("GET /download/{folder}/{filename}", s.requireAuth(s.handleDownload))

	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Handler returns the route handler. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, watching the vector store for an
// externally rebuilt index.
func (s *Server) Run(ctx context.Context) error {
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	if s.reload != nil {
		go s.watchIndex(watchCtx, filepath.Dir(s.indexPath))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

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
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown: %v", err)
		return s.httpServer.Close()
	}
	return nil
}
