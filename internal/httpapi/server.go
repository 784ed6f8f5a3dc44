// Package httpapi exposes the partitioning engine over HTTP: a single
// POST /partition endpoint that accepts a netlist body and returns the
// resulting PartitionRun summary as JSON. It is additive to the file-based
// CLI contract, not a replacement for it.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Davinais/FM-Heuristic/internal/service"
	"github.com/Davinais/FM-Heuristic/pkg/compression"
	"github.com/Davinais/FM-Heuristic/pkg/utils"
	"github.com/Davinais/FM-Heuristic/pkg/writer"
)

// Server is a minimal HTTP front end over a Service.
type Server struct {
	svc    *service.Service
	port   int
	logger utils.Logger
	server *http.Server
}

// NewServer creates a new HTTP server bound to the given service.
func NewServer(svc *service.Service, port int, logger utils.Logger) *Server {
	return &Server{svc: svc, port: port, logger: logger}
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/partition", s.handlePartition)
	mux.HandleFunc("/healthz", s.handleHealthz)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("Starting HTTP server at http://localhost:%d", s.port)
	s.logger.Info("Press Ctrl+C to stop")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handlePartition uploads the request body as a netlist, runs it to
// completion, and responds with the PartitionRun summary as JSON.
func (s *Server) handlePartition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	id := uuid.NewString()
	inputKey := fmt.Sprintf("uploads/%s.net", id)
	outputKey := fmt.Sprintf("results/%s.out", id)

	ctx := r.Context()
	if err := s.svc.UploadInput(ctx, inputKey, r.Body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	run, err := s.svc.RunPartition(ctx, inputKey, outputKey, compression.TypeNone)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := writer.NewJSONWriter[any]().Write(run, w); err != nil {
		s.logger.Error("failed to write partition response: %v", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.HealthCheck(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}
