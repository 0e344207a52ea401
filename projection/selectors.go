// Package projection derives named read-only views from a recorded stream
// of emulator events. Each view is an incremental fold: it consumes the
// stream once, left-to-right, and keeps its own private accumulator.
package projection

import (
	"github.com/chainsim/go-projection/types"
)

// Selectors are total: they either produce the sub-event of interest or
// report false, never an error. Scoping keys (wallet, instance tag) are
// checked before the payload is interpreted, so events belonging to other
// scopes are skipped without any decode cost.

func chainEvent(ev types.Event) (types.ChainEvent, bool) {
	ce, ok := ev.(types.ChainEvent)
	return ce, ok
}

func validatedTx(ev types.Event) (*types.Tx, bool) {
	if v, ok := ev.(*types.TxnValidate); ok {
		return v.Tx, true
	}
	return nil, false
}

func failedValidation(ev types.Event) (*types.TxnValidationFail, bool) {
	f, ok := ev.(*types.TxnValidationFail)
	return f, ok
}

func chainIndexEvents(w types.WalletID) func(types.Event) (types.ChainIndexEvent, bool) {
	return func(ev types.Event) (types.ChainIndexEvent, bool) {
		cie, ok := ev.(types.ChainIndexEvent)
		if !ok || cie.GetWallet() != w {
			return nil, false
		}
		return cie, true
	}
}

func instanceMsgs(tag types.InstanceTag) func(types.Event) (types.InstanceMsg, bool) {
	return func(ev types.Event) (types.InstanceMsg, bool) {
		ie, ok := ev.(*types.InstanceEvent)
		if !ok || ie.Tag != tag {
			return nil, false
		}
		return ie.Msg, true
	}
}

func userMsg(ev types.Event) (string, bool) {
	if ue, ok := ev.(*types.UserThreadEvent); ok {
		return ue.Message, true
	}
	return "", false
}
