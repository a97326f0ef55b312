package fraudscan

import (
	"encoding/json"
	"fmt"

	"github.com/txlens/txlens/internal/pkg/validator"
)

// Assessment is the qualitative fraud verdict for one transaction.
type Assessment struct {
	Classification string            `json:"classification"`
	RiskTier       string            `json:"riskTier"`
	FraudScore     int               `json:"fraudScore"`
	Description    string            `json:"description"`
	Reasoning      string            `json:"reasoning"`
	Warnings       []string          `json:"warnings"`
	ContractInfo   *AssessedContract `json:"contractInfo,omitempty"`
	AIConfidence   int               `json:"aiConfidence"`
}

// AssessedContract carries the reasoning service's reading of the invoked
// function.
type AssessedContract struct {
	FunctionName        string `json:"functionName"`
	FunctionDescription string `json:"functionDescription"`
}

// FraudAssessment aggregates one assessment response.
type FraudAssessment struct {
	Success    bool       `json:"success"`
	Assessment Assessment `json:"assessment"`
	Timestamp  string     `json:"timestamp"`
	Err        string     `json:"error,omitempty"`
}

// reasonerReply is the strict schema the reasoning service must return.
// Pointer fields distinguish "absent or null" from "zero value", so a missing
// fraudScore cannot masquerade as 0. Warnings may legitimately be empty but
// must be present and non-null.
type reasonerReply struct {
	RiskLevel           *string  `json:"riskLevel"           validate:"required,oneof=low medium high"`
	FraudScore          *int     `json:"fraudScore"          validate:"required,min=0,max=100"`
	Description         *string  `json:"description"         validate:"required"`
	Reasoning           *string  `json:"reasoning"           validate:"required"`
	Warnings            []string `json:"warnings"`
	FunctionName        *string  `json:"functionName"        validate:"required"`
	FunctionDescription *string  `json:"functionDescription" validate:"required"`
	AIConfidence        *int     `json:"aiConfidence"        validate:"required,min=0,max=100"`
}

// mandatoryReplyFields lists every key the reasoning service must include.
var mandatoryReplyFields = []string{
	"riskLevel",
	"fraudScore",
	"description",
	"reasoning",
	"warnings",
	"functionName",
	"functionDescription",
	"aiConfidence",
}

// parseReasonerReply decodes and validates the reasoning service's raw
// response against the mandatory schema. Any violation is a service failure,
// never a partial success.
func parseReasonerReply(raw json.RawMessage) (reasonerReply, error) {
	// Presence check on the raw object: required-tag semantics on slices
	// would reject a legitimately empty warnings array, so field presence is
	// verified key by key instead.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return reasonerReply{}, fmt.Errorf("malformed reasoning response: %w", err)
	}
	for _, key := range mandatoryReplyFields {
		if _, ok := fields[key]; !ok {
			return reasonerReply{}, fmt.Errorf("reasoning response is missing the mandatory %q field", key)
		}
	}

	var reply reasonerReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return reasonerReply{}, fmt.Errorf("malformed reasoning response: %w", err)
	}

	if reply.Warnings == nil {
		return reasonerReply{}, fmt.Errorf("reasoning response carries a null warnings field")
	}

	if err := validator.Validate(reply); err != nil {
		return reasonerReply{}, fmt.Errorf("reasoning response violates the assessment schema: %w", err)
	}

	return reply, nil
}
