package projection

import (
	"github.com/chainsim/go-projection/fold"
	"github.com/chainsim/go-projection/rollup"
	"github.com/chainsim/go-projection/types"
)

// ChainEvents collects every chain event in encounter order.
func ChainEvents() fold.Fold[types.Event, []types.ChainEvent] {
	return fold.FilterMap(chainEvent, fold.Collect[types.ChainEvent]())
}

// ValidatedTransactions collects every validated transaction in validation
// order, without deduplication.
func ValidatedTransactions() fold.Fold[types.Event, []*types.Tx] {
	return fold.FilterMap(validatedTx, fold.Collect[*types.Tx]())
}

// FailedTransactions collects every failed validation in encounter order.
func FailedTransactions() fold.Fold[types.Event, []*types.TxnValidationFail] {
	return fold.FilterMap(failedValidation, fold.Collect[*types.TxnValidationFail]())
}

// grouping is the block-grouping state: the still-open block and the closed
// blocks in arrival order. SlotAdd closes the open block, possibly empty;
// TxnValidate prepends to the open block; TxnValidationFail changes nothing.
type grouping struct {
	current   types.Block
	completed []types.Block
}

// Blockchain groups validated transactions into slot-delimited blocks.
// Blocks are listed oldest first with the still-open block last; the open
// block is included even when the stream ends without a final SlotAdd, and
// an empty stream yields a single empty block. Transactions within a block
// appear newest first.
func Blockchain() fold.Fold[types.Event, []types.Block] {
	return fold.FilterMap(chainEvent, fold.New(
		func() *grouping { return &grouping{} },
		func(g *grouping, ev types.ChainEvent) *grouping {
			switch e := ev.(type) {
			case *types.SlotAdd:
				g.completed = append(g.completed, g.current)
				g.current = nil
			case *types.TxnValidate:
				g.current = append(types.Block{e.Tx}, g.current...)
			}
			return g
		},
		func(g *grouping) []types.Block {
			out := make([]types.Block, 0, len(g.completed)+1)
			out = append(out, g.completed...)
			return append(out, g.current)
		},
	))
}

// AnnotatedBlockchain folds chain events through the rollup primitive and
// extracts its per-block annotated transaction view.
func AnnotatedBlockchain[S any](r rollup.Rollup[S]) fold.Fold[types.Event, [][]rollup.AnnotatedTx] {
	return fold.FilterMap(chainEvent, fold.New(r.Initial, r.Handle, r.Annotated))
}
