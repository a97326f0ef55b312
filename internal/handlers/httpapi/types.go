package httpapi

import (
	"net/http"

	"github.com/txlens/txlens/internal/txdecode"
)

// envelopeType is one entry of the supported envelope kind listing.
type envelopeType struct {
	Type  int    `json:"type"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// supportedEnvelopeTypes enumerates the envelope kinds the decoder
// understands, keyed by their wire type byte.
var supportedEnvelopeTypes = []envelopeType{
	{Type: 0, Kind: string(txdecode.EnvelopeLegacy), Label: "Legacy transaction"},
	{Type: 1, Kind: string(txdecode.EnvelopeAccessList), Label: "Access list transaction (EIP-2930)"},
	{Type: 2, Kind: string(txdecode.EnvelopeFeeMarket), Label: "Fee market transaction (EIP-1559)"},
}

// handleTypes serves the static envelope kind listing.
func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"types": supportedEnvelopeTypes,
	})
}
