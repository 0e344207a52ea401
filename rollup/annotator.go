package rollup

import "github.com/chainsim/go-projection/types"

// Annotator is the reference Rollup. Blocks follow slot boundaries the same
// way block grouping does; transactions within a block keep validation
// order, and inputs are dereferenced against outputs seen earlier in the
// stream.
type Annotator struct{}

// State is the annotator's incremental state. Callers treat it as opaque.
type State struct {
	slot      types.Slot
	current   []AnnotatedTx
	completed [][]AnnotatedTx
	seen      map[types.OutputRef]types.Output
}

var _ Rollup[*State] = Annotator{}

func (Annotator) Initial() *State {
	return &State{seen: make(map[types.OutputRef]types.Output)}
}

func (Annotator) Handle(prior *State, ev types.ChainEvent) *State {
	switch e := ev.(type) {
	case *types.SlotAdd:
		prior.completed = append(prior.completed, prior.current)
		prior.current = nil
		prior.slot = e.Slot
	case *types.TxnValidate:
		prior.current = append(prior.current, prior.annotate(e))
	case *types.TxnValidationFail:
		// rejected transactions never enter a block
	}
	return prior
}

func (Annotator) Annotated(final *State) [][]AnnotatedTx {
	out := make([][]AnnotatedTx, 0, len(final.completed)+1)
	out = append(out, final.completed...)
	out = append(out, final.current)
	return out
}

func (s *State) annotate(e *types.TxnValidate) AnnotatedTx {
	inputs := make([]DereferencedInput, len(e.Tx.Inputs))
	for i, ref := range e.Tx.Inputs {
		out, found := s.seen[ref]
		inputs[i] = DereferencedInput{Ref: ref, Output: out, Found: found}
	}
	for i, out := range e.Tx.Outputs {
		s.seen[types.OutputRef{TxID: e.TxID, Index: uint32(i)}] = out
	}
	return AnnotatedTx{
		SequenceID:         SequenceID{Slot: s.slot, TxIndex: len(s.current)},
		TxID:               e.TxID,
		Tx:                 e.Tx,
		DereferencedInputs: inputs,
	}
}
