package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/txlens/txlens/internal/pkg/validator"
	"github.com/txlens/txlens/internal/txanalysis"
	"github.com/txlens/txlens/internal/txdecode"
)

// rawTxRequest is the body shared by the decode and analyze endpoints.
type rawTxRequest struct {
	RawTx string `json:"rawTx" validate:"required"`
}

// decodeResponse is the decode endpoint's success body.
type decodeResponse struct {
	Success     bool                       `json:"success"`
	Transaction txanalysis.TransactionView `json:"transaction"`
	Timestamp   string                     `json:"timestamp"`
}

// parseRawTxRequest reads and validates the request body.
func parseRawTxRequest(r *http.Request) (rawTxRequest, error) {
	var req rawTxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return rawTxRequest{}, err
	}
	return req, validator.Validate(req)
}

// handleDecode parses a raw envelope into its typed, display-formatted form.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	req, err := parseRawTxRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tx, err := s.decoder.Decode(r.Context(), req.RawTx)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, txdecode.ErrDecode) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "transaction decode failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, decodeResponse{
		Success:     true,
		Transaction: txanalysis.NewTransactionView(tx),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleAnalyze runs the full analysis pipeline over a raw envelope.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := parseRawTxRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result := s.analysis.AnalyzeRaw(r.Context(), req.RawTx)
	if !result.Success {
		// Structural failure: the envelope itself did not decode.
		writeJSON(w, http.StatusBadRequest, result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
