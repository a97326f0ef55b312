package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity_BigInt(t *testing.T) {
	t.Run("parses a decimal string", func(t *testing.T) {
		v, err := Quantity("1000000000000000000").BigInt()
		require.NoError(t, err)
		assert.Equal(t, "1000000000000000000", v.String())
	})

	t.Run("parses a 0x-prefixed hex string", func(t *testing.T) {
		v, err := Quantity("0xde0b6b3a7640000").BigInt()
		require.NoError(t, err)
		assert.Equal(t, "1000000000000000000", v.String())
	})

	t.Run("parses an uppercase 0X prefix", func(t *testing.T) {
		v, err := Quantity("0X5208").BigInt()
		require.NoError(t, err)
		assert.Equal(t, "21000", v.String())
	})

	t.Run("empty quantity decodes to zero", func(t *testing.T) {
		v, err := Quantity("").BigInt()
		require.NoError(t, err)
		assert.Zero(t, v.Sign())
	})

	t.Run("preserves values above 2^64", func(t *testing.T) {
		v, err := Quantity("115792089237316195423570985008687907853269984665640564039457584007913129639935").BigInt()
		require.NoError(t, err)
		assert.Equal(t, 256, v.BitLen())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := Quantity("one ether").BigInt()
		assert.Error(t, err)
	})

	t.Run("rejects invalid hex digits", func(t *testing.T) {
		_, err := Quantity("0xzz").BigInt()
		assert.Error(t, err)
	})
}

func TestQuantity_Uint64(t *testing.T) {
	t.Run("decodes a small quantity", func(t *testing.T) {
		v, err := Quantity("0x5208").Uint64()
		require.NoError(t, err)
		assert.Equal(t, uint64(21000), v)
	})

	t.Run("rejects overflow", func(t *testing.T) {
		_, err := Quantity("18446744073709551616").Uint64()
		assert.Error(t, err)
	})

	t.Run("rejects negative values", func(t *testing.T) {
		_, err := Quantity("-1").Uint64()
		assert.Error(t, err)
	})
}

func TestQuantity_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Value Quantity `json:"value"`
	}

	t.Run("accepts a JSON string", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"value":"0xde0b6b3a7640000"}`), &p))
		d, err := p.Value.Decimal()
		require.NoError(t, err)
		assert.Equal(t, "1000000000000000000", d)
	})

	t.Run("accepts a bare JSON number", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"value":21000}`), &p))
		v, err := p.Value.Uint64()
		require.NoError(t, err)
		assert.Equal(t, uint64(21000), v)
	})

	t.Run("rejects objects", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"value":{}}`), &p))
	})

	t.Run("rejects unparsable strings", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"value":"lots"}`), &p))
	})
}

func TestChainID_UnmarshalJSON(t *testing.T) {
	type payload struct {
		ChainID ChainID `json:"chainId"`
	}

	for _, tc := range []struct {
		name string
		in   string
		want ChainID
	}{
		{name: "JSON number", in: `{"chainId":1}`, want: 1},
		{name: "decimal string", in: `{"chainId":"137"}`, want: 137},
		{name: "hex string", in: `{"chainId":"0x89"}`, want: 137},
	} {
		t.Run("normalizes a "+tc.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tc.in), &p))
			assert.Equal(t, tc.want, p.ChainID)
		})
	}

	t.Run("rejects negative ids", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"chainId":"-5"}`), &p))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"chainId":"mainnet"}`), &p))
	})
}

func TestChainID_IsValid(t *testing.T) {
	assert.False(t, ChainID(0).IsValid())
	assert.True(t, ChainID(1).IsValid())
}
