package eventlog

import (
	"sync"

	"github.com/chainsim/go-projection/types"
)

// MemoryLog is an in-memory Store. Events are kept in their encoded form so
// replay exercises the same codec path as the persistent backends.
type MemoryLog struct {
	mu      sync.Mutex
	records [][]byte
	closed  bool
}

var _ Store = (*MemoryLog)(nil)

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) Append(ev types.Event) error {
	data, err := types.EncodeEvent(ev)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	l.records = append(l.records, data)
	return nil
}

func (l *MemoryLog) Replay(fn func(seq uint64, ev types.Event) error) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	records := l.records
	l.mu.Unlock()

	for i, data := range records {
		ev, err := types.DecodeEvent(data)
		if err != nil {
			return err
		}
		if err := fn(uint64(i), ev); err != nil {
			return err
		}
	}
	return nil
}

func (l *MemoryLog) Len() (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, ErrClosed
	}
	return uint64(len(l.records)), nil
}

func (l *MemoryLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}
