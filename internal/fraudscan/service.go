// Package fraudscan orchestrates the qualitative fraud assessment of a
// decoded transaction. Plain transfers short-circuit to a fixed low-risk
// verdict, unknown shapes to a fixed high-risk one; contract interactions are
// sent to an external reasoning service under a strict response schema, and
// every failure degrades deterministically to a pessimistic assessment.
package fraudscan

import (
	"context"
	"errors"
	"time"

	"github.com/txlens/txlens/internal/abiresolve"
	"github.com/txlens/txlens/internal/pkg/ethunit"
	"github.com/txlens/txlens/internal/pkg/logger"
	"github.com/txlens/txlens/internal/txanalysis"
	"github.com/txlens/txlens/internal/txdecode"
)

// ErrReasonerRequired is returned by New when no reasoning client is
// supplied: the orchestrator must fail fast at construction rather than
// silently degrade every request.
var ErrReasonerRequired = errors.New("fraudscan requires a reasoning service client")

// defaultAssessTimeout bounds one reasoning-service invocation.
const defaultAssessTimeout = 30 * time.Second

// Service produces fraud assessments.
type Service interface {
	// Evaluate assesses one decoded transaction. It never returns an error:
	// reasoning-service failures are absorbed into a deterministic,
	// pessimistic assessment so callers are not blocked by an outage.
	Evaluate(ctx context.Context, tx txdecode.DecodedTransaction, resolution abiresolve.InterfaceResolution) FraudAssessment
}

type service struct {
	reasoner Reasoner
	timeout  time.Duration
}

var _ Service = (*service)(nil)

// Option configures the orchestrator.
type Option func(*service)

// WithTimeout bounds each reasoning-service call. Default: 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(s *service) {
		s.timeout = d
	}
}

// New creates the fraud assessment orchestrator. The reasoner is mandatory.
func New(r Reasoner, opts ...Option) (*service, error) {
	if r == nil {
		return nil, ErrReasonerRequired
	}

	s := &service{
		reasoner: r,
		timeout:  defaultAssessTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) Evaluate(ctx context.Context, tx txdecode.DecodedTransaction, resolution abiresolve.InterfaceResolution) FraudAssessment {
	switch {
	case tx.Classification == txdecode.ClassificationEthTransfer:
		// Simple transfers are not worth the external call cost.
		return s.plainTransferAssessment(tx)
	case tx.Classification == txdecode.ClassificationContractInteraction && tx.To != "":
		return s.assessInteraction(ctx, tx, resolution)
	default:
		return s.unknownPatternAssessment(tx)
	}
}

// assessInteraction assembles the context bundle, invokes the reasoning
// service, and enforces the response schema.
func (s *service) assessInteraction(ctx context.Context, tx txdecode.DecodedTransaction, resolution abiresolve.InterfaceResolution) FraudAssessment {
	req := AssessmentRequest{
		Classification:     string(tx.Classification),
		ChainID:            tx.ChainID,
		To:                 tx.To,
		ValueWei:           tx.Value,
		ValueEther:         ethunit.ToEther(tx.Value),
		GasLimit:           tx.GasLimit,
		CallData:           tx.Data,
		DecodedCall:        tx.Call,
		InterfaceAvailable: resolution.ABI != nil,
		Provenance:         string(resolution.Provenance),
		SourceText:         resolution.SourceText,
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.reasoner.Assess(ctx, req)
	if err != nil {
		logger.Warn(ctx, "reasoning service call failed", "contract.address", tx.To, "error", err)
		return s.degradedAssessment(tx)
	}

	reply, err := parseReasonerReply(raw)
	if err != nil {
		logger.Warn(ctx, "reasoning service response rejected", "contract.address", tx.To, "error", err)
		return s.degradedAssessment(tx)
	}

	return FraudAssessment{
		Success: true,
		Assessment: Assessment{
			Classification: string(tx.Classification),
			RiskTier:       *reply.RiskLevel,
			FraudScore:     *reply.FraudScore,
			Description:    *reply.Description,
			Reasoning:      *reply.Reasoning,
			Warnings:       reply.Warnings,
			ContractInfo: &AssessedContract{
				FunctionName:        *reply.FunctionName,
				FunctionDescription: *reply.FunctionDescription,
			},
			AIConfidence: *reply.AIConfidence,
		},
		Timestamp: timestamp(),
	}
}

// plainTransferAssessment is the fixed verdict for simple value transfers.
func (s *service) plainTransferAssessment(tx txdecode.DecodedTransaction) FraudAssessment {
	return FraudAssessment{
		Success: true,
		Assessment: Assessment{
			Classification: string(tx.Classification),
			RiskTier:       string(txanalysis.RiskLow),
			FraudScore:     5,
			Description:    "Simple ETH transfer",
			Reasoning:      "Plain value transfers carry no contract execution and minimal fraud surface",
			Warnings:       []string{},
			AIConfidence:   95,
		},
		Timestamp: timestamp(),
	}
}

// unknownPatternAssessment is the fixed verdict for contract creations and
// unclassifiable transactions, produced without invoking the reasoning
// service.
func (s *service) unknownPatternAssessment(tx txdecode.DecodedTransaction) FraudAssessment {
	return FraudAssessment{
		Success: true,
		Assessment: Assessment{
			Classification: string(tx.Classification),
			RiskTier:       string(txanalysis.RiskHigh),
			FraudScore:     100,
			Description:    "Transaction pattern could not be assessed",
			Reasoning:      "Only contract interactions and plain transfers have defined assessment paths",
			Warnings:       []string{"Unknown transaction pattern"},
			AIConfidence:   0,
		},
		Timestamp: timestamp(),
	}
}

// degradedAssessment is the deterministic, intentionally pessimistic verdict
// used whenever the reasoning service cannot produce a valid answer: the
// inability to assess is treated as high risk.
func (s *service) degradedAssessment(tx txdecode.DecodedTransaction) FraudAssessment {
	return FraudAssessment{
		Success: true,
		Assessment: Assessment{
			Classification: string(tx.Classification),
			RiskTier:       string(txanalysis.RiskHigh),
			FraudScore:     100,
			Description:    "AI analysis failed",
			Reasoning:      "Unable to analyze transaction due to AI service error",
			Warnings:       []string{"AI analysis unavailable"},
			AIConfidence:   0,
		},
		Timestamp: timestamp(),
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
