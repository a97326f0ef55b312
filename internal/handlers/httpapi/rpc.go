package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/txlens/txlens/internal/pkg/transport/jsonrpc"
	"github.com/txlens/txlens/internal/txdecode"
)

// parseRPCRequest reads the JSON-RPC-shaped envelope and extracts the call
// parameter object.
func parseRPCRequest(r *http.Request) (jsonrpc.Request, txdecode.CallParams, error) {
	var req jsonrpc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return jsonrpc.Request{}, txdecode.CallParams{}, err
	}

	var params txdecode.CallParams
	if err := req.FirstParam(&params); err != nil {
		return req, txdecode.CallParams{}, err
	}

	return req, params, nil
}

// handleRPCAnalyze analyzes a transaction supplied as an RPC parameter
// object, mirroring the request id and method into the response.
func (s *Server) handleRPCAnalyze(w http.ResponseWriter, r *http.Request) {
	req, params, err := parseRPCRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, jsonrpc.NewErrorResponse(req, "invalid request", err.Error()))
		return
	}

	result := s.analysis.AnalyzeCall(r.Context(), params)
	if !result.Success {
		writeJSON(w, http.StatusBadRequest, jsonrpc.NewErrorResponse(req, "transaction analysis failed", result.Err))
		return
	}

	writeJSON(w, http.StatusOK, jsonrpc.NewResponse(req, result))
}

// handleRPCAssess runs the analysis pipeline and then the fraud assessment
// over an RPC parameter object. Reasoning-service failures never fail the
// request: the assessment degrades deterministically instead.
func (s *Server) handleRPCAssess(w http.ResponseWriter, r *http.Request) {
	req, params, err := parseRPCRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, jsonrpc.NewErrorResponse(req, "invalid request", err.Error()))
		return
	}

	tx, resolution, err := s.analysis.InspectCall(r.Context(), params)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, jsonrpc.NewErrorResponse(req, "transaction analysis failed", err.Error()))
		return
	}

	assessment := s.fraud.Evaluate(r.Context(), tx, resolution)
	writeJSON(w, http.StatusOK, jsonrpc.NewResponse(req, assessment))
}
