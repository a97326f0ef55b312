// Package txanalysis orchestrates the decode-classify-resolve pipeline for
// one transaction: envelope decoding, interface resolution for contract
// interactions, call-data decoding with selector fallback, and deterministic
// risk tiering. Interface-resolution failures degrade the analysis quality
// but never fail the request.
package txanalysis

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"github.com/txlens/txlens/internal/abiresolve"
	"github.com/txlens/txlens/internal/pkg/logger"
	"github.com/txlens/txlens/internal/txdecode"
)

// Service runs the analysis pipeline.
type Service interface {
	// AnalyzeRaw decodes and analyzes a serialized transaction envelope.
	AnalyzeRaw(ctx context.Context, rawTx string) AnalysisResult

	// AnalyzeCall analyzes an RPC-style call parameter object.
	AnalyzeCall(ctx context.Context, p txdecode.CallParams) AnalysisResult

	// InspectCall runs the decode and resolution stages for an RPC-style
	// payload and returns the intermediate artifacts, for callers that feed
	// them into a further assessment stage.
	InspectCall(ctx context.Context, p txdecode.CallParams) (txdecode.DecodedTransaction, abiresolve.InterfaceResolution, error)
}

type service struct {
	decoder  txdecode.Service
	resolver abiresolve.Service
}

var _ Service = (*service)(nil)

// New creates the analysis service on top of the decoder and the interface
// resolver.
func New(decoder txdecode.Service, resolver abiresolve.Service) *service {
	return &service{
		decoder:  decoder,
		resolver: resolver,
	}
}

func (s *service) AnalyzeRaw(ctx context.Context, rawTx string) AnalysisResult {
	tx, err := s.decoder.Decode(ctx, rawTx)
	if err != nil {
		return failedResult(err)
	}

	tx, resolution := s.enrich(ctx, tx)
	return s.report(tx, resolution)
}

func (s *service) AnalyzeCall(ctx context.Context, p txdecode.CallParams) AnalysisResult {
	tx, resolution, err := s.InspectCall(ctx, p)
	if err != nil {
		return failedResult(err)
	}
	return s.report(tx, resolution)
}

func (s *service) InspectCall(ctx context.Context, p txdecode.CallParams) (txdecode.DecodedTransaction, abiresolve.InterfaceResolution, error) {
	tx, err := s.decoder.FromCallParams(p)
	if err != nil {
		return txdecode.DecodedTransaction{}, abiresolve.InterfaceResolution{}, err
	}

	tx, resolution := s.enrich(ctx, tx)
	return tx, resolution, nil
}

// enrich resolves the target contract's interface and decodes the embedded
// call for contract interactions. Other classifications pass through
// untouched.
func (s *service) enrich(ctx context.Context, tx txdecode.DecodedTransaction) (txdecode.DecodedTransaction, abiresolve.InterfaceResolution) {
	if !tx.IsContractInteraction {
		return tx, abiresolve.InterfaceResolution{Provenance: abiresolve.ProvenanceNone}
	}

	resolution := s.resolver.Resolve(ctx, chainIDOf(tx), tx.To)
	if resolution.Err != "" {
		logger.Debug(ctx, "interface resolution degraded",
			"contract.address", tx.To,
			"resolution.provenance", resolution.Provenance,
			"resolution.error", resolution.Err,
		)
	}

	data := callDataBytes(tx.Data)

	// Prefer the structured decode whenever an interface resolved; fall back
	// to the selector table otherwise or when the interface does not match.
	if resolution.ABI != nil {
		if call, ok := txdecode.DecodeWithABI(data, resolution.ABI); ok {
			tx.Call = &call
		}
	}
	if tx.Call == nil {
		call := txdecode.DecodeBySelector(data)
		tx.Call = &call
	}

	tx.InterfaceProvenance = string(resolution.Provenance)
	return tx, resolution
}

// report assembles the final result for a successfully decoded transaction.
func (s *service) report(tx txdecode.DecodedTransaction, resolution abiresolve.InterfaceResolution) AnalysisResult {
	return AnalysisResult{
		Success:     true,
		Transaction: NewTransactionView(tx),
		Analysis: Analysis{
			Classification: tx.Classification,
			RiskTier:       ClassifyRisk(tx.Classification, tx.Value),
			Description:    describe(tx),
			ContractInfo:   newContractInfo(tx, resolution),
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// failedResult is the empty-placeholder response for structurally invalid
// input.
func failedResult(err error) AnalysisResult {
	return AnalysisResult{
		Success:   false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Err:       err.Error(),
	}
}

// chainIDOf parses the decimal chain id carried by the transaction; malformed
// or missing values map to zero, which the resolver rejects.
func chainIDOf(tx txdecode.DecodedTransaction) uint64 {
	var id uint64
	for _, r := range tx.ChainID {
		if r < '0' || r > '9' {
			return 0
		}
		id = id*10 + uint64(r-'0')
	}
	return id
}

// callDataBytes decodes the 0x-prefixed call data held on the transaction.
func callDataBytes(data string) []byte {
	s := strings.TrimPrefix(data, "0x")
	if s == "" {
		return nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}
