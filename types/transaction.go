package types

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/minio/sha256-simd"
)

// OutputRef points at a single output of an earlier transaction.
type OutputRef struct {
	TxID  common.Hash `json:"txId"`
	Index uint32      `json:"index"`
}

// Output pays a value to an address.
type Output struct {
	Address common.Address `json:"address"`
	Value   *big.Int       `json:"value"`
}

// Tx is a simulated transaction: it consumes the outputs referenced by its
// inputs and produces new outputs.
type Tx struct {
	Inputs  []OutputRef `json:"inputs"`
	Outputs []Output    `json:"outputs"`
}

// ID is the sha256 of the canonical JSON encoding of the transaction.
// Identical transactions always hash to the same ID.
func (tx *Tx) ID() common.Hash {
	data, err := json.Marshal(tx)
	if err != nil {
		// Tx contains no unmarshalable fields.
		return common.Hash{}
	}
	return common.Hash(sha256.Sum256(data))
}

// OutRef builds the reference to the i-th output of this transaction.
func (tx *Tx) OutRef(i int) OutputRef {
	return OutputRef{TxID: tx.ID(), Index: uint32(i)}
}

// Block is the ordered list of transactions validated within one slot.
type Block []*Tx
