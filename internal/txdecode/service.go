// Package txdecode parses serialized Ethereum transaction envelopes into
// typed, classified transactions and decodes embedded contract calls. The
// byte-level RLP and keccak work is delegated to go-ethereum; this package
// owns field mapping, intent classification, and call-data interpretation.
package txdecode

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/txlens/txlens/internal/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// Service decodes raw transaction envelopes and RPC-style call parameter
// objects into DecodedTransaction values.
type Service interface {
	// Decode parses a hex-encoded envelope (0x prefix optional), classifies
	// its intent, and returns the typed result. Malformed input yields an
	// error wrapping ErrDecode.
	Decode(ctx context.Context, rawTx string) (DecodedTransaction, error)

	// IsValidRawTransaction reports whether the input is syntactically valid
	// hex and parses as a transaction envelope. It is a cheap pre-check; it
	// performs no classification.
	IsValidRawTransaction(rawTx string) bool

	// FromCallParams builds a classified DecodedTransaction from an RPC-style
	// parameter object. No envelope exists on this path, so the hash is left
	// empty and the envelope kind is unknown.
	FromCallParams(p CallParams) (DecodedTransaction, error)
}

type service struct{}

var _ Service = (*service)(nil)

// New creates the transaction decoding service.
func New() *service {
	return &service{}
}

// normalizeRawHex strips an optional 0x/0X prefix and decodes the remaining
// hex characters.
func normalizeRawHex(rawTx string) ([]byte, error) {
	s := strings.TrimSpace(rawTx)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if s == "" {
		return nil, fmt.Errorf("empty transaction payload")
	}
	return hex.DecodeString(s)
}

// envelopeKind maps a go-ethereum transaction type byte to the envelope kind
// taxonomy. Types beyond fee-market (blob, set-code) are reported as unknown.
func envelopeKind(txType uint8) EnvelopeKind {
	switch txType {
	case types.LegacyTxType:
		return EnvelopeLegacy
	case types.AccessListTxType:
		return EnvelopeAccessList
	case types.DynamicFeeTxType:
		return EnvelopeFeeMarket
	default:
		return EnvelopeUnknown
	}
}

func (s *service) Decode(ctx context.Context, rawTx string) (DecodedTransaction, error) {
	raw, err := normalizeRawHex(rawTx)
	if err != nil {
		return DecodedTransaction{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return DecodedTransaction{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	decoded := DecodedTransaction{
		Hash:     tx.Hash().Hex(),
		Value:    tx.Value().String(),
		GasLimit: tx.Gas(),
		Nonce:    tx.Nonce(),
		Data:     hexutil.Encode(tx.Data()),
		Kind:     envelopeKind(tx.Type()),
		ChainID:  tx.ChainId().String(),
	}

	switch tx.Type() {
	case types.DynamicFeeTxType:
		decoded.MaxFeePerGas = tx.GasFeeCap().String()
		decoded.MaxPriorityFeePerGas = tx.GasTipCap().String()
	default:
		decoded.GasPrice = tx.GasPrice().String()
	}

	// Sender recovery is best-effort display information: an unrecoverable
	// signature leaves From empty rather than failing the decode.
	if from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx); err == nil {
		decoded.From = from.Hex()
	} else {
		logger.Debug(ctx, "sender recovery failed", "tx.hash", decoded.Hash, "error", err)
	}

	if to := tx.To(); to != nil {
		decoded.To = to.Hex()
	}

	classify(&decoded, tx.Data())
	return decoded, nil
}

func (s *service) IsValidRawTransaction(rawTx string) bool {
	raw, err := normalizeRawHex(rawTx)
	if err != nil {
		return false
	}
	return new(types.Transaction).UnmarshalBinary(raw) == nil
}

func (s *service) FromCallParams(p CallParams) (DecodedTransaction, error) {
	value := "0"
	if !p.Value.IsEmpty() {
		v, err := p.Value.Decimal()
		if err != nil {
			return DecodedTransaction{}, fmt.Errorf("%w: value: %w", ErrInvalidInput, err)
		}
		value = v
	}

	var gasLimit uint64
	if !p.Gas.IsEmpty() {
		g, err := p.Gas.Uint64()
		if err != nil {
			return DecodedTransaction{}, fmt.Errorf("%w: gas: %w", ErrInvalidInput, err)
		}
		gasLimit = g
	}

	data, err := normalizeCallData(p.Data)
	if err != nil {
		return DecodedTransaction{}, fmt.Errorf("%w: data: %w", ErrInvalidInput, err)
	}

	decoded := DecodedTransaction{
		Value:    value,
		GasLimit: gasLimit,
		Data:     hexutil.Encode(data),
		Kind:     EnvelopeUnknown,
		ChainID:  fmt.Sprintf("%d", p.ChainID.Uint64()),
	}

	if p.From != "" && common.IsHexAddress(p.From) {
		decoded.From = common.HexToAddress(p.From).Hex()
	}

	switch {
	case p.To == "":
		// absent recipient, classified below as contract creation
	case common.IsHexAddress(p.To):
		decoded.To = common.HexToAddress(p.To).Hex()
	default:
		// Recipient information present but unusable: the transaction shape
		// cannot be determined.
		decoded.Classification = ClassificationUnknown
		return decoded, nil
	}

	classify(&decoded, data)
	return decoded, nil
}

// normalizeCallData decodes the optional 0x-prefixed call data field. "" and
// "0x" are both the empty-byte sentinel.
func normalizeCallData(data string) ([]byte, error) {
	if data == "" || data == "0x" || data == "0X" {
		return nil, nil
	}
	s := strings.TrimPrefix(strings.TrimPrefix(data, "0x"), "0X")
	return hex.DecodeString(s)
}

// classify derives the intent category and companion booleans from recipient
// presence and call-data emptiness. Plain transfers get a synthetic decoded
// call; contract interactions leave the call unset for the caller to fill in
// after interface resolution.
func classify(tx *DecodedTransaction, data []byte) {
	switch {
	case tx.To == "":
		tx.Classification = ClassificationContractCreation
		tx.IsContractCreation = true
	case len(data) == 0:
		tx.Classification = ClassificationEthTransfer
		tx.Call = syntheticTransferCall()
	default:
		tx.Classification = ClassificationContractInteraction
		tx.IsContractInteraction = true
	}
}
