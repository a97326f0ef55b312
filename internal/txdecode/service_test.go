package txdecode

import (
	"math/big"
	"strings"
	"testing"

	"github.com/txlens/txlens/internal/pkg/types"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eip155RawTx is the canonical EIP-155 example transaction: nonce 9, gas
// price 20 gwei, gas 21000, one ether to 0x3535...35, signed for chain id 1.
const eip155RawTx = "0xf86c098504a817c800825208943535353535353535353535353535353535353535880de0b6b3a76400008025a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276a067cbe9d8997f761aecb703304b3800ccf555c9f3dc64214b297fb1966a3b6d83"

// rawHexOf builds a transaction envelope and returns its hex encoding. The
// signature fields are filled with placeholder values; decoding does not
// verify signatures, so sender recovery simply fails and leaves From empty.
func rawHexOf(t *testing.T, inner gethtypes.TxData) string {
	t.Helper()

	raw, err := gethtypes.NewTx(inner).MarshalBinary()
	require.NoError(t, err)
	return hexutil.Encode(raw)
}

func legacyTx(to *common.Address, value *big.Int, data []byte) gethtypes.TxData {
	return &gethtypes.LegacyTx{
		Nonce:    7,
		GasPrice: big.NewInt(20_000_000_000),
		Gas:      21000,
		To:       to,
		Value:    value,
		Data:     data,
		V:        big.NewInt(27),
		R:        big.NewInt(1),
		S:        big.NewInt(1),
	}
}

func feeMarketTx(to *common.Address, value *big.Int, data []byte) gethtypes.TxData {
	return &gethtypes.DynamicFeeTx{
		ChainID:   big.NewInt(1),
		Nonce:     3,
		GasTipCap: big.NewInt(1_000_000_000),
		GasFeeCap: big.NewInt(30_000_000_000),
		Gas:       120_000,
		To:        to,
		Value:     value,
		Data:      data,
		V:         big.NewInt(0),
		R:         big.NewInt(1),
		S:         big.NewInt(1),
	}
}

func TestService_Decode(t *testing.T) {
	svc := New()

	t.Run("decodes the canonical EIP-155 transfer", func(t *testing.T) {
		tx, err := svc.Decode(t.Context(), eip155RawTx)
		require.NoError(t, err)

		assert.Equal(t, EnvelopeLegacy, tx.Kind)
		assert.Equal(t, uint64(9), tx.Nonce)
		assert.Equal(t, uint64(21000), tx.GasLimit)
		assert.Equal(t, "20000000000", tx.GasPrice)
		assert.Equal(t, "1000000000000000000", tx.Value)
		assert.Equal(t, "1", tx.ChainID)
		assert.Equal(t, common.HexToAddress("0x3535353535353535353535353535353535353535").Hex(), tx.To)
		assert.Equal(t, common.HexToAddress("0x9d8A62f656a8d1615C1294fd71e9CFb3E4855A4F").Hex(), tx.From)
		assert.Equal(t, ClassificationEthTransfer, tx.Classification)
		require.NotNil(t, tx.Call)
		assert.Equal(t, "transfer", tx.Call.Method)
		assert.Empty(t, tx.Call.Arguments)
		assert.True(t, strings.HasPrefix(tx.Hash, "0x"))
	})

	t.Run("accepts envelopes without the 0x prefix", func(t *testing.T) {
		tx, err := svc.Decode(t.Context(), strings.TrimPrefix(eip155RawTx, "0x"))
		require.NoError(t, err)
		assert.Equal(t, ClassificationEthTransfer, tx.Classification)
	})

	t.Run("classifies a value transfer with empty data as eth_transfer", func(t *testing.T) {
		to := common.HexToAddress("0x00000000000000000000000000000000000000AB")
		raw := rawHexOf(t, legacyTx(&to, big.NewInt(1_000_000_000_000_000_000), nil))

		tx, err := svc.Decode(t.Context(), raw)
		require.NoError(t, err)

		assert.Equal(t, ClassificationEthTransfer, tx.Classification)
		assert.False(t, tx.IsContractCreation)
		assert.False(t, tx.IsContractInteraction)
		assert.Equal(t, "0x", tx.Data)
		require.NotNil(t, tx.Call)
		assert.Equal(t, "transfer", tx.Call.Method)
	})

	t.Run("zero value is still a valid transfer", func(t *testing.T) {
		to := common.HexToAddress("0x00000000000000000000000000000000000000AB")
		raw := rawHexOf(t, legacyTx(&to, big.NewInt(0), nil))

		tx, err := svc.Decode(t.Context(), raw)
		require.NoError(t, err)
		assert.Equal(t, ClassificationEthTransfer, tx.Classification)
	})

	t.Run("classifies a missing recipient as contract_creation", func(t *testing.T) {
		raw := rawHexOf(t, legacyTx(nil, big.NewInt(0), []byte{0x60, 0x80, 0x60, 0x40}))

		tx, err := svc.Decode(t.Context(), raw)
		require.NoError(t, err)

		assert.Equal(t, ClassificationContractCreation, tx.Classification)
		assert.True(t, tx.IsContractCreation)
		assert.Empty(t, tx.To)
		assert.Nil(t, tx.Call)
	})

	t.Run("classifies recipient plus call data as contract_interaction", func(t *testing.T) {
		to := common.HexToAddress("0x00000000000000000000000000000000000000CD")
		data := common.FromHex("0xa9059cbb")
		raw := rawHexOf(t, feeMarketTx(&to, big.NewInt(0), data))

		tx, err := svc.Decode(t.Context(), raw)
		require.NoError(t, err)

		assert.Equal(t, EnvelopeFeeMarket, tx.Kind)
		assert.Equal(t, "30000000000", tx.MaxFeePerGas)
		assert.Equal(t, "1000000000", tx.MaxPriorityFeePerGas)
		assert.Empty(t, tx.GasPrice)
		assert.Equal(t, ClassificationContractInteraction, tx.Classification)
		assert.True(t, tx.IsContractInteraction)
		// The decoded call is the pipeline's job, after interface resolution.
		assert.Nil(t, tx.Call)
	})

	t.Run("identifies access-list envelopes", func(t *testing.T) {
		to := common.HexToAddress("0x00000000000000000000000000000000000000CD")
		raw := rawHexOf(t, &gethtypes.AccessListTx{
			ChainID:  big.NewInt(1),
			Nonce:    1,
			GasPrice: big.NewInt(10_000_000_000),
			Gas:      50_000,
			To:       &to,
			Value:    big.NewInt(0),
			V:        big.NewInt(0),
			R:        big.NewInt(1),
			S:        big.NewInt(1),
		})

		tx, err := svc.Decode(t.Context(), raw)
		require.NoError(t, err)
		assert.Equal(t, EnvelopeAccessList, tx.Kind)
		assert.Equal(t, "10000000000", tx.GasPrice)
	})

	t.Run("rejects malformed envelopes with ErrDecode", func(t *testing.T) {
		_, err := svc.Decode(t.Context(), "0xdeadbeef")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("rejects non-hex input with ErrDecode", func(t *testing.T) {
		_, err := svc.Decode(t.Context(), "0xzzzz")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("rejects empty input with ErrDecode", func(t *testing.T) {
		_, err := svc.Decode(t.Context(), "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDecode)
	})
}

func TestService_IsValidRawTransaction(t *testing.T) {
	svc := New()

	t.Run("accepts a parseable envelope", func(t *testing.T) {
		assert.True(t, svc.IsValidRawTransaction(eip155RawTx))
	})

	t.Run("rejects invalid hex", func(t *testing.T) {
		assert.False(t, svc.IsValidRawTransaction("0xnothex"))
	})

	t.Run("rejects valid hex that is not an envelope", func(t *testing.T) {
		assert.False(t, svc.IsValidRawTransaction("0x1234"))
	})
}

func TestService_FromCallParams(t *testing.T) {
	svc := New()

	t.Run("classifies recipient with empty data as eth_transfer", func(t *testing.T) {
		tx, err := svc.FromCallParams(CallParams{
			ChainID: types.ChainID(1),
			Value:   types.Quantity("1000000000000000000"),
			To:      "0x00000000000000000000000000000000000000ab",
			Data:    "0x",
		})
		require.NoError(t, err)

		assert.Equal(t, ClassificationEthTransfer, tx.Classification)
		assert.Equal(t, "1000000000000000000", tx.Value)
		assert.Equal(t, "1", tx.ChainID)
		require.NotNil(t, tx.Call)
		assert.Equal(t, "transfer", tx.Call.Method)
	})

	t.Run("accepts hex quantities", func(t *testing.T) {
		tx, err := svc.FromCallParams(CallParams{
			ChainID: types.ChainID(1),
			Gas:     types.Quantity("0x5208"),
			Value:   types.Quantity("0xde0b6b3a7640000"),
			To:      "0x00000000000000000000000000000000000000ab",
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(21000), tx.GasLimit)
		assert.Equal(t, "1000000000000000000", tx.Value)
	})

	t.Run("classifies a missing recipient as contract_creation", func(t *testing.T) {
		tx, err := svc.FromCallParams(CallParams{
			ChainID: types.ChainID(1),
			Data:    "0x6080",
		})
		require.NoError(t, err)
		assert.Equal(t, ClassificationContractCreation, tx.Classification)
		assert.True(t, tx.IsContractCreation)
	})

	t.Run("classifies recipient plus data as contract_interaction", func(t *testing.T) {
		tx, err := svc.FromCallParams(CallParams{
			ChainID: types.ChainID(1),
			To:      "0x00000000000000000000000000000000000000cd",
			Data:    "0xa9059cbb",
		})
		require.NoError(t, err)
		assert.Equal(t, ClassificationContractInteraction, tx.Classification)
		assert.Nil(t, tx.Call)
	})

	t.Run("classifies an unusable recipient as unknown", func(t *testing.T) {
		tx, err := svc.FromCallParams(CallParams{
			ChainID: types.ChainID(1),
			To:      "not-an-address",
		})
		require.NoError(t, err)
		assert.Equal(t, ClassificationUnknown, tx.Classification)
		assert.False(t, tx.IsContractCreation)
		assert.False(t, tx.IsContractInteraction)
	})

	t.Run("rejects an unparsable value with ErrInvalidInput", func(t *testing.T) {
		_, err := svc.FromCallParams(CallParams{
			ChainID: types.ChainID(1),
			Value:   types.Quantity("one ether"),
			To:      "0x00000000000000000000000000000000000000ab",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects unparsable call data with ErrInvalidInput", func(t *testing.T) {
		_, err := svc.FromCallParams(CallParams{
			ChainID: types.ChainID(1),
			To:      "0x00000000000000000000000000000000000000ab",
			Data:    "0xzz",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
