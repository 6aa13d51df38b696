// Package api provides the HTTP REST API server for the CIM platform.
//
// It exposes endpoints for file ingestion, document generation, PDF
// export, and template listing.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/compiler"
	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/config"
	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/ingest"
	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/layout"
	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/narrative"
	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/pipeline"
	"github.com/vamsiiiiii/CIM-Automation-Platform/internal/template"
	"github.com/vamsiiiiii/CIM-Automation-Platform/pkg/models"
)

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	pipeline *pipeline.Service
	gemini   *narrative.GeminiGenerator
}

// NewServer creates a configured API server with all routes and middleware.
// Without a Gemini key the narrative stage runs in fallback mode.
func NewServer(cfg *config.Config) (*Server, error) {
	var (
		gen    narrative.Generator
		gemini *narrative.GeminiGenerator
	)
	if cfg.LLM.GeminiKey != "" {
		g, err := narrative.NewGeminiGenerator(context.Background(), cfg.LLM.GeminiKey, cfg.LLM.Model)
		if err != nil {
			return nil, fmt.Errorf("narrative setup failed: %w", err)
		}
		gen, gemini = g, g
	} else {
		log.Warn().Msg("no Gemini key configured, narrative generation disabled")
	}

	timeout := time.Duration(cfg.LLM.TimeoutSec) * time.Second
	narrator := narrative.NewAdapter(gen, narrative.WithTimeout(timeout))

	srv := &Server{
		cfg:      cfg,
		pipeline: pipeline.New(narrator, compiler.New()),
		gemini:   gemini,
	}
	srv.router = srv.buildRouter()
	return srv, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Close releases the narrative provider connection, if any.
func (s *Server) Close() error {
	if s.gemini != nil {
		return s.gemini.Close()
	}
	return nil
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	<-done
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// File ingestion
		r.Post("/files/upload", s.handleUpload)

		// Document generation and export
		r.Post("/cims/generate", s.handleGenerate)
		r.Post("/cims/export", s.handleExport)

		// Templates
		r.Get("/templates", s.handleTemplates)

		// Configuration
		r.Get("/config/keys", s.handleGetConfigKeys)
	})

	return r
}

// ════════════════════════════════════════════════════════════════════
// Response envelope
// ════════════════════════════════════════════════════════════════════

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ════════════════════════════════════════════════════════════════════
// Handlers
// ════════════════════════════════════════════════════════════════════

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":            "ok",
			"version":           "dev",
			"narrative_enabled": s.gemini != nil,
		},
	})
}

// handleUpload processes a multipart batch of spreadsheets and returns
// the merged extracted series.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.Upload.MaxSizeBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	var uploads []ingest.Upload
	var open []multipart.File
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("cannot read %s", fh.Filename))
			return
		}
		open = append(open, f)
		uploads = append(uploads, ingest.Upload{Name: fh.Filename, Reader: f})
	}
	defer func() {
		for _, f := range open {
			f.Close()
		}
	}()

	data, err := ingest.Process(uploads)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"message": fmt.Sprintf("Successfully processed %d file(s)", len(uploads)),
			"data":    data,
		},
	})
}

// handleGenerate runs the full analysis pipeline for one request body.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.pipeline.Generate(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
	})
}

// handleExport renders a compiled document to PDF.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var doc models.CompiledDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if res := compiler.Validate(&doc); !res.Valid {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("document is missing sections: %v", res.MissingSections))
		return
	}

	pdf, err := layout.Render(&doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", layout.Filename(doc.Title)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Error().Err(err).Msg("failed to write PDF response")
	}
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    template.All(),
	})
}

// handleGetConfigKeys reports API key status without exposing values.
func (s *Server) handleGetConfigKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    config.CheckAPIKeys(s.cfg),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
