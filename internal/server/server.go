// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the assistant over HTTP for the widget host. The
// surface is deliberately small: a health check and one query endpoint.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mashutosh934755/bennett-ashu-ai/pkg/types"
)

// QueryHandler answers one user turn. Satisfied by *assistant.Assistant.
type QueryHandler interface {
	HandleQuery(ctx context.Context, text, patronID string) string
}

// Server wraps the assistant behind a chi router.
type Server struct {
	cfg     types.ServerConfig
	handler QueryHandler
	logger  *zap.Logger
	router  chi.Router
}

// New builds the HTTP facade.
func New(cfg types.ServerConfig, handler QueryHandler, logger *zap.Logger) *Server {
	s := &Server{cfg: cfg, handler: handler, logger: logger}
	s.router = s.buildRouter()
	return s
}

// Router returns the configured router, mainly for tests.
func (s *Server) Router() http.Handler { return s.router }

// ListenAndServe starts the HTTP server on the configured address.
func (s *Server) ListenAndServe() error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		// A full fan-out can take up to the per-provider timeout.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.logger.Info("listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/v1/query", s.handleQuery)

	return r
}

// queryRequest is one user turn from the widget.
type queryRequest struct {
	Query    string `json:"query"`
	PatronID string `json:"patron_id,omitempty"`
}

// queryResponse carries the Markdown answer back.
type queryResponse struct {
	Answer string `json:"answer"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, `{"error":"query is required"}`, http.StatusBadRequest)
		return
	}

	answer := s.handler.HandleQuery(r.Context(), req.Query, req.PatronID)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(queryResponse{Answer: answer}); err != nil {
		s.logger.Warn("writing response", zap.Error(err))
	}
}
