// Package httpapi exposes the decode and analysis pipeline over HTTP. The
// handlers stay thin: request parsing and status mapping live here, all
// behavior lives in the domain services. Structural input errors produce
// explicit failure responses; analysis-quality failures are absorbed into
// successful responses carrying a conservative assessment, so callers are
// never blocked by a third-party outage.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/txlens/txlens/internal/fraudscan"
	"github.com/txlens/txlens/internal/pkg/logger"
	"github.com/txlens/txlens/internal/txanalysis"
	"github.com/txlens/txlens/internal/txdecode"
)

// Server wires the domain services to HTTP routes.
type Server struct {
	decoder  txdecode.Service
	analysis txanalysis.Service
	fraud    fraudscan.Service
}

// New creates the HTTP API server.
func New(decoder txdecode.Service, analysis txanalysis.Service, fraud fraudscan.Service) *Server {
	return &Server{
		decoder:  decoder,
		analysis: analysis,
		fraud:    fraud,
	}
}

// Handler returns the route table as an http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/decode", s.handleDecode)
	mux.HandleFunc("POST /api/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/v1/rpc", s.handleRPCAnalyze)
	mux.HandleFunc("POST /api/v1/rpc/ai", s.handleRPCAssess)
	mux.HandleFunc("GET /api/v1/types", s.handleTypes)
	return mux
}

// errorBody is the explicit failure response shape.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error(context.Background(), "response encoding failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorBody{Error: message, Details: details})
}
