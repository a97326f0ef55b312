package types

import (
	"encoding/json"
	"fmt"
)

// ChainID is a canonical, normalized chain identifier. Upstream payloads
// carry chain ids as hex strings, decimal strings, or JSON numbers; ChainID
// accepts all three at the boundary and rejects anything ambiguous instead of
// defaulting.
type ChainID uint64

// Uint64 returns the chain id as a plain uint64.
func (c ChainID) Uint64() uint64 {
	return uint64(c)
}

// IsValid reports whether the chain id is positive. Zero or absent chain ids
// are never valid lookup keys.
func (c ChainID) IsValid() bool {
	return c > 0
}

// MarshalJSON encodes the chain id as a JSON number.
func (c ChainID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint64(c))
}

// UnmarshalJSON normalizes the three observed chain id representations into
// one canonical integer.
func (c *ChainID) UnmarshalJSON(data []byte) error {
	var q Quantity
	if err := q.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid chain id: %w", err)
	}

	v, err := q.Uint64()
	if err != nil {
		return fmt.Errorf("invalid chain id: %w", err)
	}

	*c = ChainID(v)
	return nil
}
