package txanalysis

import (
	"math/big"

	"github.com/txlens/txlens/internal/txdecode"
)

// RiskTier is the deterministic three-level risk classification, distinct
// from the probabilistic fraud score produced by the reasoning service.
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// highValueThresholdWei is 10 ether. Any transaction moving more than this is
// high risk regardless of its classification.
var highValueThresholdWei, _ = new(big.Int).SetString("10000000000000000000", 10)

// ClassifyRisk derives the risk tier from the transaction classification and
// its wei value. The value threshold dominates: a large plain transfer is
// high risk even though transfers are otherwise low risk. Unparsable values
// are treated as zero.
func ClassifyRisk(classification txdecode.Classification, valueWei string) RiskTier {
	value, ok := new(big.Int).SetString(valueWei, 10)
	if !ok {
		value = new(big.Int)
	}

	if value.Cmp(highValueThresholdWei) > 0 {
		return RiskHigh
	}

	switch classification {
	case txdecode.ClassificationContractInteraction, txdecode.ClassificationContractCreation:
		return RiskMedium
	default:
		return RiskLow
	}
}
