package types

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Quantity represents a blockchain numeric quantity that may arrive either as
// a 0x-prefixed hexadecimal string or as a decimal string. It preserves the
// original textual form and converts to big.Int on demand, so 256-bit values
// never pass through a float or a platform integer.
type Quantity string

// QuantityFromString validates the input and returns a Quantity if it parses
// as either hexadecimal (0x-prefixed) or decimal.
func QuantityFromString(s string) (Quantity, error) {
	q := Quantity(s)
	if _, err := q.BigInt(); err != nil {
		return "", err
	}
	return q, nil
}

// BigInt decodes the quantity into a big.Int. Empty quantities decode to zero.
func (q Quantity) BigInt() (*big.Int, error) {
	s := string(q)
	if s == "" {
		return new(big.Int), nil
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, ok := new(big.Int).SetString(s[2:], 16)
		if !ok {
			return nil, fmt.Errorf("invalid hexadecimal quantity %q", s)
		}
		return v, nil
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal quantity %q", s)
	}
	return v, nil
}

// Decimal returns the quantity rendered as a decimal string, or an error when
// the quantity does not parse.
func (q Quantity) Decimal() (string, error) {
	v, err := q.BigInt()
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Uint64 decodes the quantity into a uint64, failing on overflow or negative
// values.
func (q Quantity) Uint64() (uint64, error) {
	v, err := q.BigInt()
	if err != nil {
		return 0, err
	}
	if v.Sign() < 0 || !v.IsUint64() {
		return 0, fmt.Errorf("quantity %q does not fit in uint64", string(q))
	}
	return v.Uint64(), nil
}

// IsEmpty reports whether the quantity carries no value at all.
func (q Quantity) IsEmpty() bool {
	return q == ""
}

// MarshalJSON encodes the Quantity as a JSON string.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(q))
}

// UnmarshalJSON accepts a JSON string (hex or decimal) or a JSON number. Any
// other representation is rejected explicitly rather than silently defaulted.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Fall back to a bare JSON number, e.g. `"value": 1000`.
		var n json.Number
		if numErr := json.Unmarshal(data, &n); numErr != nil {
			return fmt.Errorf("quantity must be a string or number: %w", err)
		}
		s = n.String()
	}

	parsed, err := QuantityFromString(s)
	if err != nil {
		return err
	}

	*q = parsed
	return nil
}
