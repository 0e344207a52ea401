// Package eventlog persists recorded emulator event streams. A store is an
// append-only log keyed by sequence number; replay delivers events strictly
// in append order, which is what the projection folds require.
package eventlog

import (
	"encoding/binary"
	"errors"

	"github.com/chainsim/go-projection/types"
)

// Store is an append-only, replayable log of emulator events.
type Store interface {
	// Append records ev after every previously appended event.
	Append(ev types.Event) error
	// Replay calls fn once per stored event, in append order, with the
	// event's sequence number. The first error from fn stops the replay
	// and is returned.
	Replay(fn func(seq uint64, ev types.Event) error) error
	// Len is the number of stored events.
	Len() (uint64, error)
	Close() error
}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("eventlog: store closed")

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func keySeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
