package abiresolve

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Provenance is the origin and trust tag of a resolved contract interface.
type Provenance string

const (
	// ProvenanceVerified marks an interface retrieved from verified source
	// code published through the verification service.
	ProvenanceVerified Provenance = "verified-source"

	// ProvenanceGenericFallback marks the minimal token-transfer interface
	// substituted after a transport failure, when that policy is enabled.
	ProvenanceGenericFallback Provenance = "generic-fallback"

	// ProvenanceNone marks the absence of any resolved interface.
	ProvenanceNone Provenance = "none"
)

// InterfaceResolution is the outcome of resolving a (chain id, address) pair
// to a call interface. Provenance ProvenanceNone implies ABI is nil. Err is
// preserved for diagnostics only and never fails the surrounding analysis.
type InterfaceResolution struct {
	ABI        *abi.ABI
	ABIJSON    string
	Provenance Provenance
	SourceText string
	Err        string
}

// VerifiedABI is the verification service's answer for one contract.
type VerifiedABI struct {
	Verified bool   // whether the contract has verified source code
	ABIJSON  string // the interface definition, set only when Verified
	Message  string // service-reported reason when not verified
}

// Verifier is the port to the external contract verification service.
type Verifier interface {
	// FetchABI looks up the verified interface for a contract. A non-nil
	// error means the lookup itself failed (network, timeout, malformed
	// response); an unverified contract is a successful lookup with
	// Verified=false.
	FetchABI(ctx context.Context, chainID uint64, address string) (VerifiedABI, error)

	// FetchSource retrieves the verified source-code text for a contract.
	FetchSource(ctx context.Context, chainID uint64, address string) (string, error)
}

// ResolutionCache stores verified interface definitions across requests. It
// is a layered optimization: resolution must behave identically with the nop
// implementation.
type ResolutionCache interface {
	// GetABI returns the cached interface JSON for the pair, or ok=false on
	// a miss. Errors are treated as misses by the caller.
	GetABI(ctx context.Context, chainID uint64, address string) (string, bool, error)

	// PutABI stores a verified interface JSON for the pair.
	PutABI(ctx context.Context, chainID uint64, address string, abiJSON string) error
}

// nopCache is the default ResolutionCache: every lookup misses.
type nopCache struct{}

func (nopCache) GetABI(context.Context, uint64, string) (string, bool, error) { return "", false, nil }
func (nopCache) PutABI(context.Context, uint64, string, string) error         { return nil }
