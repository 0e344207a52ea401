package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsim/go-projection/types"
)

func TestApplyAddsOutputsForWatchedAddress(t *testing.T) {
	w1 := types.NewWallet(1)
	w2 := types.NewWallet(2)
	tx := &types.Tx{Outputs: []types.Output{
		{Address: w1.Address(), Value: big.NewInt(100)},
		{Address: w2.Address(), Value: big.NewInt(40)},
	}}

	view := StandardUpdater{}.Apply(NewAddressView(w1.Address()), tx)
	require.Len(t, view.Outputs, 1)
	out, ok := view.Outputs[tx.OutRef(0)]
	require.True(t, ok)
	assert.Equal(t, big.NewInt(100), out.Value)
	assert.Equal(t, big.NewInt(100), view.TotalValue())
}

func TestApplyConsumesSpentOutputs(t *testing.T) {
	w1 := types.NewWallet(1)
	fund := &types.Tx{Outputs: []types.Output{{Address: w1.Address(), Value: big.NewInt(100)}}}
	spend := &types.Tx{
		Inputs:  []types.OutputRef{fund.OutRef(0)},
		Outputs: []types.Output{{Address: w1.Address(), Value: big.NewInt(60)}},
	}

	u := StandardUpdater{}
	view := NewAddressView(w1.Address())
	view = u.Apply(view, fund)
	view = u.Apply(view, spend)

	require.Len(t, view.Outputs, 1)
	_, spent := view.Outputs[fund.OutRef(0)]
	assert.False(t, spent, "consumed output must leave the view")
	assert.Equal(t, big.NewInt(60), view.TotalValue())
}

func TestRefsStableOrder(t *testing.T) {
	w1 := types.NewWallet(1)
	a := &types.Tx{Outputs: []types.Output{
		{Address: w1.Address(), Value: big.NewInt(1)},
		{Address: w1.Address(), Value: big.NewInt(2)},
	}}
	b := &types.Tx{Outputs: []types.Output{{Address: w1.Address(), Value: big.NewInt(3)}}}

	u := StandardUpdater{}
	view := NewAddressView(w1.Address())
	view = u.Apply(view, a)
	view = u.Apply(view, b)

	first := view.Refs()
	second := view.Refs()
	require.Len(t, first, 3)
	assert.Equal(t, first, second)
}
