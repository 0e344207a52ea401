// Package rollup enriches raw chain events into a display-oriented annotated
// transaction history, grouped by block.
package rollup

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsim/go-projection/types"
)

// SequenceID locates a transaction inside the chain: the slot whose block it
// was validated in and its index within that block.
type SequenceID struct {
	Slot    types.Slot `json:"slot"`
	TxIndex int        `json:"txIndex"`
}

// DereferencedInput resolves a transaction input back to the output it
// spends, when that output was observed earlier in the same stream.
type DereferencedInput struct {
	Ref    types.OutputRef `json:"ref"`
	Output types.Output    `json:"output"`
	Found  bool            `json:"found"`
}

// AnnotatedTx is a validated transaction enriched for display.
type AnnotatedTx struct {
	SequenceID         SequenceID          `json:"sequenceId"`
	TxID               common.Hash         `json:"txId"`
	Tx                 *types.Tx           `json:"tx"`
	DereferencedInputs []DereferencedInput `json:"dereferencedInputs"`
}

// Rollup is the incremental enrichment primitive: an initial state, a
// handler invoked once per chain event in event order, and a final
// extraction of the per-block annotated transaction view.
type Rollup[S any] interface {
	Initial() S
	Handle(prior S, ev types.ChainEvent) S
	Annotated(final S) [][]AnnotatedTx
}
