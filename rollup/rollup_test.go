package rollup

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsim/go-projection/types"
)

func TestAnnotatorSequenceIDs(t *testing.T) {
	w := types.NewWallet(1)
	tx1 := &types.Tx{Outputs: []types.Output{{Address: w.Address(), Value: big.NewInt(1)}}}
	tx2 := &types.Tx{Outputs: []types.Output{{Address: w.Address(), Value: big.NewInt(2)}}}
	tx3 := &types.Tx{Outputs: []types.Output{{Address: w.Address(), Value: big.NewInt(3)}}}

	a := Annotator{}
	s := a.Initial()
	s = a.Handle(s, &types.TxnValidate{TxID: tx1.ID(), Tx: tx1})
	s = a.Handle(s, &types.SlotAdd{Slot: 1})
	s = a.Handle(s, &types.TxnValidate{TxID: tx2.ID(), Tx: tx2})
	s = a.Handle(s, &types.TxnValidate{TxID: tx3.ID(), Tx: tx3})
	blocks := a.Annotated(s)

	require.Len(t, blocks, 2)
	require.Len(t, blocks[0], 1)
	require.Len(t, blocks[1], 2)
	assert.Equal(t, SequenceID{Slot: 0, TxIndex: 0}, blocks[0][0].SequenceID)
	assert.Equal(t, SequenceID{Slot: 1, TxIndex: 0}, blocks[1][0].SequenceID)
	assert.Equal(t, SequenceID{Slot: 1, TxIndex: 1}, blocks[1][1].SequenceID)
}

func TestAnnotatorDereferencesKnownInputs(t *testing.T) {
	w := types.NewWallet(1)
	fund := &types.Tx{Outputs: []types.Output{{Address: w.Address(), Value: big.NewInt(50)}}}
	spend := &types.Tx{
		Inputs:  []types.OutputRef{fund.OutRef(0)},
		Outputs: []types.Output{{Address: w.Address(), Value: big.NewInt(50)}},
	}
	unknown := &types.Tx{
		Inputs: []types.OutputRef{{TxID: spend.ID(), Index: 99}},
	}

	a := Annotator{}
	s := a.Initial()
	s = a.Handle(s, &types.TxnValidate{TxID: fund.ID(), Tx: fund})
	s = a.Handle(s, &types.TxnValidate{TxID: spend.ID(), Tx: spend})
	s = a.Handle(s, &types.TxnValidate{TxID: unknown.ID(), Tx: unknown})
	blocks := a.Annotated(s)

	require.Len(t, blocks, 1)
	require.Len(t, blocks[0], 3)

	deref := blocks[0][1].DereferencedInputs
	require.Len(t, deref, 1)
	assert.True(t, deref[0].Found)
	assert.Equal(t, big.NewInt(50), deref[0].Output.Value)

	missing := blocks[0][2].DereferencedInputs
	require.Len(t, missing, 1)
	assert.False(t, missing[0].Found)
}

func TestAnnotatorIgnoresFailedValidations(t *testing.T) {
	w := types.NewWallet(1)
	bad := &types.Tx{Outputs: []types.Output{{Address: w.Address(), Value: big.NewInt(1)}}}

	a := Annotator{}
	s := a.Initial()
	s = a.Handle(s, &types.TxnValidationFail{TxID: bad.ID(), Tx: bad, Reason: "conflict"})
	blocks := a.Annotated(s)
	require.Len(t, blocks, 1)
	assert.Empty(t, blocks[0])
}
