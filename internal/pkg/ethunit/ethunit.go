// Package ethunit converts wei amounts between display denominations using
// exact arbitrary-precision decimal scaling. Conversions never pass through a
// float, so values beyond 2^53 keep full precision.
package ethunit

import (
	"math/big"
	"strings"
)

const (
	// etherDecimals is the wei-to-ether scaling exponent.
	etherDecimals = 18

	// gweiDecimals is the wei-to-gwei scaling exponent.
	gweiDecimals = 9
)

// ToEther renders a wei amount (decimal string) as an exact ether decimal.
// Malformed input is returned unchanged: formatting is best-effort display,
// not validation.
func ToEther(wei string) string {
	return FromWei(wei, etherDecimals)
}

// ToGwei renders a wei amount (decimal string) as an exact gwei decimal.
// Malformed input is returned unchanged.
func ToGwei(wei string) string {
	return FromWei(wei, gweiDecimals)
}

// FromWei divides a decimal-string amount by 10^decimals and renders the
// exact result, trimming trailing zeros from the fractional part. Input that
// does not parse as a decimal integer is returned as-is.
func FromWei(amount string, decimals uint) string {
	value, ok := new(big.Int).SetString(strings.TrimSpace(amount), 10)
	if !ok {
		return amount
	}

	sign := ""
	if value.Sign() < 0 {
		sign = "-"
		value = new(big.Int).Abs(value)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(value, scale, new(big.Int))

	if frac.Sign() == 0 {
		return sign + whole.String()
	}

	fracStr := frac.String()
	if pad := int(decimals) - len(fracStr); pad > 0 {
		fracStr = strings.Repeat("0", pad) + fracStr
	}
	fracStr = strings.TrimRight(fracStr, "0")

	return sign + whole.String() + "." + fracStr
}
