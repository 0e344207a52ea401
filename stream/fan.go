// Package stream fans a single ordered event sequence out to several
// independent projection runs. Each consumer keeps its own private
// accumulator; the fan only guarantees that every attached consumer sees
// the same events in the same order.
package stream

import (
	"sync"

	"github.com/chainsim/go-projection/fold"
	"github.com/chainsim/go-projection/log"
	"github.com/chainsim/go-projection/types"
)

var logger = log.NewLogger("stream")

// Consumer receives events in stream order.
type Consumer interface {
	Consume(ev types.Event) error
}

// Feed adapts a started effectful fold run into a Consumer.
func Feed[R any](r *fold.RunM[types.Event, R]) Consumer {
	return feedM[R]{r}
}

type feedM[R any] struct {
	r *fold.RunM[types.Event, R]
}

func (f feedM[R]) Consume(ev types.Event) error { return f.r.Step(ev) }

// FeedPure adapts a started pure fold run into a Consumer.
func FeedPure[R any](r *fold.Run[types.Event, R]) Consumer {
	return feed[R]{r}
}

type feed[R any] struct {
	r *fold.Run[types.Event, R]
}

func (f feed[R]) Consume(ev types.Event) error {
	f.r.Step(ev)
	return nil
}

// Fan delivers each published event to every attached consumer, in attach
// order, synchronously. A consumer error detaches that consumer only; the
// rest keep receiving events. Attach consumers before publishing.
type Fan struct {
	mu      sync.Mutex
	entries []*fanEntry
}

type fanEntry struct {
	consumer Consumer
	err      error
}

func NewFan() *Fan {
	return &Fan{}
}

// Attach registers a consumer and returns a handle for reading its failure
// state after the stream ends.
func (f *Fan) Attach(c Consumer) *Attached {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := &fanEntry{consumer: c}
	f.entries = append(f.entries, e)
	return &Attached{fan: f, entry: e}
}

// Publish delivers ev to every live consumer.
func (f *Fan) Publish(ev types.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.err != nil {
			continue
		}
		if err := e.consumer.Consume(ev); err != nil {
			e.err = err
			logger.Debug().Err(err).Msg("consumer failed, detaching")
		}
	}
}

// PublishAll replays a whole recorded sequence through the fan.
func (f *Fan) PublishAll(events []types.Event) {
	for _, ev := range events {
		f.Publish(ev)
	}
}

// Attached is the handle for one attached consumer.
type Attached struct {
	fan   *Fan
	entry *fanEntry
}

// Err is the error that detached the consumer, or nil while it is live.
func (a *Attached) Err() error {
	a.fan.mu.Lock()
	defer a.fan.mu.Unlock()
	return a.entry.err
}
