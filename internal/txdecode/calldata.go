package txdecode

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// selectorLength is the number of leading call-data bytes identifying the
// invoked method.
const selectorLength = 4

// syntheticTransferCall is attached to transactions whose call data is empty:
// they carry value only, which is an implicit ETH transfer shape.
func syntheticTransferCall() *DecodedCall {
	return &DecodedCall{Method: "transfer", Arguments: []Argument{}}
}

// DecodeBySelector recovers the method name from the leading 4-byte selector
// using the static signature table. Argument values cannot be reconstructed
// without a full interface, so Arguments is always empty. Empty call data maps
// to the synthetic transfer call; selectors absent from the table produce
// "unknown_<selector-hex>".
func DecodeBySelector(data []byte) DecodedCall {
	if len(data) == 0 {
		return *syntheticTransferCall()
	}

	if len(data) < selectorLength {
		return DecodedCall{
			Method:    fmt.Sprintf("unknown_%s", hex.EncodeToString(data)),
			Arguments: []Argument{},
		}
	}

	selector := hex.EncodeToString(data[:selectorLength])
	if sig, ok := LookupSelector(selector); ok {
		return DecodedCall{Method: sig, Arguments: []Argument{}}
	}

	return DecodedCall{
		Method:    fmt.Sprintf("unknown_%s", selector),
		Arguments: []Argument{},
	}
}

// DecodeWithABI attempts a structured decode of call data against a resolved
// contract interface. It returns ok=false on any mismatch (unknown selector,
// truncated data, argument encoding that does not unpack) rather than an
// error, so callers can fall through to selector-only decoding.
func DecodeWithABI(data []byte, contractABI *abi.ABI) (DecodedCall, bool) {
	if contractABI == nil || len(data) < selectorLength {
		return DecodedCall{}, false
	}

	method, err := contractABI.MethodById(data[:selectorLength])
	if err != nil {
		return DecodedCall{}, false
	}

	values, err := method.Inputs.Unpack(data[selectorLength:])
	if err != nil {
		return DecodedCall{}, false
	}

	args := make([]Argument, 0, len(values))
	for i, value := range values {
		input := method.Inputs[i]
		args = append(args, Argument{
			Name:  input.Name,
			Type:  input.Type.String(),
			Value: formatABIValue(input.Type, value),
		})
	}

	return DecodedCall{Method: method.Sig, Arguments: args}, true
}

// formatABIValue renders a decoded ABI value as a display string. Composite
// types recurse element-wise.
func formatABIValue(t abi.Type, value any) string {
	switch t.T {
	case abi.SliceTy, abi.ArrayTy:
		rv := reflect.ValueOf(value)
		out := "["
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				out += ","
			}
			out += formatABIValue(*t.Elem, rv.Index(i).Interface())
		}
		return out + "]"
	case abi.StringTy:
		s, _ := value.(string)
		return s
	case abi.IntTy, abi.UintTy:
		if v, ok := value.(*big.Int); ok {
			return v.String()
		}
		return fmt.Sprintf("%d", value)
	case abi.BoolTy:
		return fmt.Sprintf("%t", value)
	case abi.AddressTy:
		if addr, ok := value.(common.Address); ok {
			return addr.Hex()
		}
		return fmt.Sprintf("%v", value)
	case abi.HashTy:
		if h, ok := value.(common.Hash); ok {
			return h.Hex()
		}
		return fmt.Sprintf("%v", value)
	case abi.BytesTy:
		if b, ok := value.([]byte); ok {
			return hexutil.Encode(b)
		}
		return fmt.Sprintf("%v", value)
	case abi.FixedBytesTy, abi.FunctionTy:
		// Fixed-size byte arrays arrive as [N]byte; copy them out via reflect.
		rv := reflect.ValueOf(value)
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)
		return hexutil.Encode(b)
	default:
		return fmt.Sprintf("%v", value)
	}
}
