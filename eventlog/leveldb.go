package eventlog

import (
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/chainsim/go-projection/types"
)

// LevelLog is a Store backed by goleveldb, for callers that already run on
// leveldb. Same key layout as BadgerLog.
type LevelLog struct {
	db     *leveldb.DB
	mu     sync.Mutex
	next   uint64
	closed bool
}

var _ Store = (*LevelLog)(nil)

// NewLevelLog opens (or creates) a leveldb-backed log at path.
func NewLevelLog(path string) (*LevelLog, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("opening leveldb log %q: %w", path, err)
	}
	l := &LevelLog{db: db}

	iter := db.NewIterator(nil, nil)
	if iter.Last() {
		l.next = keySeq(iter.Key()) + 1
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *LevelLog) Append(ev types.Event) error {
	data, err := types.EncodeEvent(ev)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	if err := l.db.Put(seqKey(l.next), data, nil); err != nil {
		return err
	}
	l.next++
	return nil
}

func (l *LevelLog) Replay(fn func(seq uint64, ev types.Event) error) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.mu.Unlock()
	iter := l.db.NewIterator(nil, nil)
	defer iter.Release()
	for iter.Next() {
		ev, err := types.DecodeEvent(iter.Value())
		if err != nil {
			return err
		}
		if err := fn(keySeq(iter.Key()), ev); err != nil {
			return err
		}
	}
	return iter.Error()
}

func (l *LevelLog) Len() (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, ErrClosed
	}
	return l.next, nil
}

func (l *LevelLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.db.Close()
}
