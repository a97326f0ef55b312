package txdecode

import (
	"github.com/txlens/txlens/internal/pkg/types"
)

// EnvelopeKind identifies the wire-format variant of a transaction,
// determined by the leading type marker of the serialized envelope.
type EnvelopeKind string

const (
	EnvelopeLegacy     EnvelopeKind = "legacy"      // type 0, no prefix byte
	EnvelopeAccessList EnvelopeKind = "access-list" // EIP-2930, type byte 1
	EnvelopeFeeMarket  EnvelopeKind = "fee-market"  // EIP-1559, type byte 2
	EnvelopeUnknown    EnvelopeKind = "unknown"
)

// Classification is the intent category of a transaction. Exactly one holds
// per transaction; it is computed once during decoding and never re-derived.
type Classification string

const (
	ClassificationEthTransfer         Classification = "eth_transfer"
	ClassificationContractCreation    Classification = "contract_creation"
	ClassificationContractInteraction Classification = "contract_interaction"
	ClassificationUnknown             Classification = "unknown"
)

// Argument is one decoded call argument. Values are rendered as strings so
// 256-bit integers survive JSON round trips.
type Argument struct {
	Name  string `json:"name,omitempty"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// DecodedCall describes the contract method a transaction invokes. When the
// method was recovered from the selector table alone, Arguments is always
// empty: selector-only decoding cannot reconstruct argument values without a
// full interface.
type DecodedCall struct {
	Method    string     `json:"method"`
	Arguments []Argument `json:"arguments"`
}

// DecodedTransaction is the immutable result of decoding one transaction
// envelope. All 256-bit quantities are carried as decimal strings.
//
// Invariants: IsContractCreation == (To is empty), and IsContractInteraction
// implies To is present and Data is non-empty.
type DecodedTransaction struct {
	Hash                 string         `json:"hash"`
	From                 string         `json:"from,omitempty"` // empty when sender recovery fails
	To                   string         `json:"to,omitempty"`   // empty means contract creation
	Value                string         `json:"value"`
	GasLimit             uint64         `json:"gasLimit"`
	GasPrice             string         `json:"gasPrice,omitempty"`             // legacy and access-list envelopes
	MaxFeePerGas         string         `json:"maxFeePerGas,omitempty"`         // fee-market envelopes
	MaxPriorityFeePerGas string         `json:"maxPriorityFeePerGas,omitempty"` // fee-market envelopes
	Nonce                uint64         `json:"nonce"`
	Data                 string         `json:"data"` // 0x-prefixed hex, "0x" when empty
	Kind                 EnvelopeKind   `json:"type"`
	ChainID              string         `json:"chainId"`
	IsContractCreation   bool           `json:"isContractCreation"`
	IsContractInteraction bool          `json:"isContractInteraction"`
	Classification       Classification `json:"classification"`
	Call                 *DecodedCall   `json:"decodedCall,omitempty"`
	InterfaceProvenance  string         `json:"interfaceProvenance,omitempty"`
}

// CallParams is the transaction shape accepted on the RPC surface, mirroring
// the eth_sendTransaction parameter object. Quantities accept both hex and
// decimal string forms; the chain id additionally accepts a bare number.
type CallParams struct {
	ChainID types.ChainID  `json:"chainId"`
	Gas     types.Quantity `json:"gas"`
	Value   types.Quantity `json:"value"`
	From    string         `json:"from"`
	To      string         `json:"to"`
	Data    string         `json:"data"`
}
