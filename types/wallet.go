package types

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// Wallet is a simulated wallet identity. Simulation wallets are deterministic:
// the public key is derived from the wallet number, so wallet N has the same
// address in every run.
type Wallet struct {
	ID     WalletID
	PubKey []byte
}

// NewWallet derives the deterministic wallet for the given ID.
func NewWallet(id WalletID) Wallet {
	seed := make([]byte, 8)
	binary.BigEndian.PutUint64(seed, uint64(id))
	pub := sha3.Sum256(append([]byte("chainsim-wallet"), seed...))
	return Wallet{ID: id, PubKey: pub[:]}
}

// Address is the last 20 bytes of the keccak256 of the public key,
// ethereum style.
func (w Wallet) Address() common.Address {
	h := sha3.NewLegacyKeccak256()
	h.Write(w.PubKey)
	return common.BytesToAddress(h.Sum(nil)[12:])
}
