package projection

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsim/go-projection/fold"
	"github.com/chainsim/go-projection/ledger"
	"github.com/chainsim/go-projection/types"
)

// UnspentOutputsAt tracks the unspent outputs paid to addr by applying the
// ledger updater to every validated transaction in validation order,
// starting from an empty view watching exactly addr.
func UnspentOutputsAt(addr common.Address, u ledger.Updater) fold.Fold[types.Event, *ledger.AddressView] {
	return fold.FilterMap(validatedTx, fold.New(
		func() *ledger.AddressView { return ledger.NewAddressView(addr) },
		u.Apply,
		func(v *ledger.AddressView) *ledger.AddressView { return v },
	))
}

// TotalValueAt sums the values of the unspent outputs at addr.
func TotalValueAt(addr common.Address, u ledger.Updater) fold.Fold[types.Event, *big.Int] {
	return fold.MapResult(UnspentOutputsAt(addr, u), (*ledger.AddressView).TotalValue)
}

// WalletFunds resolves the wallet's address and reports the total value
// held there.
func WalletFunds(w types.Wallet, u ledger.Updater) fold.Fold[types.Event, *big.Int] {
	return TotalValueAt(w.Address(), u)
}

// WatchingAddress reports whether the wallet's chain index has started
// watching addr. Once true it never resets.
func WatchingAddress(w types.WalletID, addr common.Address) fold.Fold[types.Event, bool] {
	return fold.FilterMap(chainIndexEvents(w), fold.Any(func(ev types.ChainIndexEvent) bool {
		sw, ok := ev.(*types.AddressStartWatching)
		return ok && sw.Address == addr
	}))
}
