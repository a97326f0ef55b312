package fraudscan

import (
	"context"
	"encoding/json"

	"github.com/txlens/txlens/internal/txdecode"
)

// AssessmentRequest is the context bundle handed to the reasoning service for
// a contract interaction.
type AssessmentRequest struct {
	Classification     string                `json:"classification"`
	ChainID            string                `json:"chainId"`
	To                 string                `json:"to"`
	ValueWei           string                `json:"valueWei"`
	ValueEther         string                `json:"valueEther"`
	GasLimit           uint64                `json:"gasLimit"`
	CallData           string                `json:"callData"`
	DecodedCall        *txdecode.DecodedCall `json:"decodedCall,omitempty"`
	InterfaceAvailable bool                  `json:"interfaceAvailable"`
	Provenance         string                `json:"provenance"`
	SourceText         string                `json:"sourceText,omitempty"`
}

// Reasoner is the port to the external reasoning service. Implementations
// return the service's assessment object as raw JSON; schema enforcement is
// the orchestrator's job so transport adapters stay dumb.
type Reasoner interface {
	Assess(ctx context.Context, req AssessmentRequest) (json.RawMessage, error)
}
