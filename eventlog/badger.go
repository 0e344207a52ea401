package eventlog

import (
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v2"

	"github.com/chainsim/go-projection/log"
	"github.com/chainsim/go-projection/types"
)

var logger = log.NewLogger("eventlog")

// BadgerLog is a Store backed by badger. Keys are 8-byte big-endian
// sequence numbers, so badger's key order is append order.
type BadgerLog struct {
	db     *badger.DB
	mu     sync.Mutex
	next   uint64
	closed bool
}

var _ Store = (*BadgerLog)(nil)

// NewBadgerLog opens (or creates) a badger-backed log in dir.
func NewBadgerLog(dir string) (*BadgerLog, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = badgerLogger{logger}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger log %q: %w", dir, err)
	}
	l := &BadgerLog{db: db}
	if err := l.restoreNext(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug().Str("dir", dir).Uint64("len", l.next).Msg("opened badger event log")
	return l, nil
}

// restoreNext positions the sequence counter after the last stored event.
func (l *BadgerLog) restoreNext() error {
	return l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		it.Rewind()
		if it.Valid() {
			l.next = keySeq(it.Item().Key()) + 1
		}
		return nil
	})
}

func (l *BadgerLog) Append(ev types.Event) error {
	data, err := types.EncodeEvent(ev)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(seqKey(l.next), data)
	})
	if err != nil {
		return err
	}
	l.next++
	return nil
}

func (l *BadgerLog) Replay(fn func(seq uint64, ev types.Event) error) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.mu.Unlock()
	return l.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			seq := keySeq(item.Key())
			err := item.Value(func(data []byte) error {
				ev, err := types.DecodeEvent(data)
				if err != nil {
					return err
				}
				return fn(seq, ev)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (l *BadgerLog) Len() (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, ErrClosed
	}
	return l.next, nil
}

func (l *BadgerLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.db.Close()
}

// badgerLogger routes badger's internal logging through the module logger.
type badgerLogger struct {
	l *log.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error().Msgf(format, args...)
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn().Msgf(format, args...)
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debug().Msgf(format, args...)
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Debug().Msgf(format, args...)
}
