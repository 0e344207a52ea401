// Package ledger tracks the unspent outputs paid to a watched address.
package ledger

import (
	"bytes"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsim/go-projection/types"
)

// AddressView is the unspent output set currently paid to one watched
// address. It is built incrementally by applying validated transactions
// oldest to newest; it is never re-derived from scratch.
type AddressView struct {
	Address common.Address
	Outputs map[types.OutputRef]types.Output
}

// NewAddressView is the empty view watching exactly addr.
func NewAddressView(addr common.Address) *AddressView {
	return &AddressView{
		Address: addr,
		Outputs: make(map[types.OutputRef]types.Output),
	}
}

// Updater applies one validated transaction to a prior view and returns the
// next view. Application order is strict transaction-validation order and
// the result must be deterministic.
type Updater interface {
	Apply(prior *AddressView, tx *types.Tx) *AddressView
}

// StandardUpdater is the reference Updater: inputs consume tracked outputs,
// outputs paying the watched address are added under their output reference.
type StandardUpdater struct{}

func (StandardUpdater) Apply(prior *AddressView, tx *types.Tx) *AddressView {
	for _, ref := range tx.Inputs {
		delete(prior.Outputs, ref)
	}
	txID := tx.ID()
	for i, out := range tx.Outputs {
		if out.Address == prior.Address {
			prior.Outputs[types.OutputRef{TxID: txID, Index: uint32(i)}] = out
		}
	}
	return prior
}

// TotalValue sums the values of all unspent outputs in the view.
func (v *AddressView) TotalValue() *big.Int {
	total := new(big.Int)
	for _, out := range v.Outputs {
		total.Add(total, out.Value)
	}
	return total
}

// Refs lists the unspent output references in a stable order.
func (v *AddressView) Refs() []types.OutputRef {
	refs := make([]types.OutputRef, 0, len(v.Outputs))
	for ref := range v.Outputs {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		a, b := refs[i], refs[j]
		if c := bytes.Compare(a.TxID[:], b.TxID[:]); c != 0 {
			return c < 0
		}
		return a.Index < b.Index
	})
	return refs
}
