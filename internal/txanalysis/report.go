package txanalysis

import (
	"fmt"

	"github.com/txlens/txlens/internal/abiresolve"
	"github.com/txlens/txlens/internal/pkg/ethunit"
	"github.com/txlens/txlens/internal/txdecode"
)

// TransactionView is the display-formatted projection of a decoded
// transaction. Raw wei quantities stay as decimal strings and are accompanied
// by their ether/gwei renderings.
type TransactionView struct {
	txdecode.DecodedTransaction

	ValueEther              string `json:"valueEther"`
	GasPriceGwei            string `json:"gasPriceGwei,omitempty"`
	MaxFeePerGasGwei        string `json:"maxFeePerGasGwei,omitempty"`
	MaxPriorityFeePerGasGwei string `json:"maxPriorityFeePerGasGwei,omitempty"`
}

// ContractInfo summarizes the interface resolution for the target contract.
type ContractInfo struct {
	Address            string `json:"address"`
	InterfaceAvailable bool   `json:"interfaceAvailable"`
	Provenance         string `json:"provenance"`
}

// Analysis is the deterministic portion of an analysis response.
type Analysis struct {
	Classification txdecode.Classification `json:"classification"`
	RiskTier       RiskTier                `json:"riskTier"`
	Description    string                  `json:"description"`
	ContractInfo   *ContractInfo           `json:"contractInfo,omitempty"`
}

// AnalysisResult aggregates one analyzed transaction. On failure, Transaction
// is an empty placeholder and Err carries the reason.
type AnalysisResult struct {
	Success     bool            `json:"success"`
	Transaction TransactionView `json:"transaction"`
	Analysis    Analysis        `json:"analysis"`
	Timestamp   string          `json:"timestamp"`
	Err         string          `json:"error,omitempty"`
}

// NewTransactionView attaches display denominations to a decoded transaction.
func NewTransactionView(tx txdecode.DecodedTransaction) TransactionView {
	view := TransactionView{
		DecodedTransaction: tx,
		ValueEther:         ethunit.ToEther(tx.Value),
	}
	if tx.GasPrice != "" {
		view.GasPriceGwei = ethunit.ToGwei(tx.GasPrice)
	}
	if tx.MaxFeePerGas != "" {
		view.MaxFeePerGasGwei = ethunit.ToGwei(tx.MaxFeePerGas)
	}
	if tx.MaxPriorityFeePerGas != "" {
		view.MaxPriorityFeePerGasGwei = ethunit.ToGwei(tx.MaxPriorityFeePerGas)
	}
	return view
}

// describe renders a one-sentence human summary of the transaction intent.
func describe(tx txdecode.DecodedTransaction) string {
	switch tx.Classification {
	case txdecode.ClassificationEthTransfer:
		return fmt.Sprintf("Transfers %s ETH to %s", ethunit.ToEther(tx.Value), tx.To)
	case txdecode.ClassificationContractCreation:
		return "Deploys a new contract"
	case txdecode.ClassificationContractInteraction:
		method := "an unidentified method"
		if tx.Call != nil {
			method = tx.Call.Method
		}
		summary := fmt.Sprintf("Calls %s on contract %s", method, tx.To)
		if tx.Value != "" && tx.Value != "0" {
			summary += fmt.Sprintf(", sending %s ETH", ethunit.ToEther(tx.Value))
		}
		return summary
	default:
		return "Transaction intent could not be determined"
	}
}

// newContractInfo builds the contract summary for interaction transactions.
func newContractInfo(tx txdecode.DecodedTransaction, res abiresolve.InterfaceResolution) *ContractInfo {
	if !tx.IsContractInteraction {
		return nil
	}
	return &ContractInfo{
		Address:            tx.To,
		InterfaceAvailable: res.ABI != nil,
		Provenance:         string(res.Provenance),
	}
}
