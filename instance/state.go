// Package instance models the reconstructed state of a contract instance:
// a resumable computation that issues requests and consumes recorded
// responses one at a time.
package instance

import (
	"encoding/json"

	"github.com/chainsim/go-projection/types"
)

// Request is one request issued by an instance and not yet answered at the
// time it was recorded. Balancing requests carry the unbalanced transactions
// the instance wants submitted.
type Request struct {
	ID         uint64          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	PendingTxs []*types.Tx     `json:"pendingTxs,omitempty"`
}

// Exchange is a request paired with the decoded response that answered it.
type Exchange[T any] struct {
	Request  Request
	Response T
}

// Status is the terminal flag of the instance computation.
type Status struct {
	Terminated bool
	Err        string          // non-empty when the computation failed
	Value      json.RawMessage // final value when the computation produced one
}

// State is the automaton state of one instance, rebuilt by folding its
// recorded responses in event order. History preserves insertion order.
type State[T any] struct {
	Status       Status
	OpenRequests []Request
	History      []Exchange[T]
}

// NewState is the empty not-yet-started state.
func NewState[T any]() *State[T] {
	return &State[T]{}
}

// Responses projects the exchange history to just the responses, oldest
// first.
func (s *State[T]) Responses() []T {
	out := make([]T, len(s.History))
	for i, ex := range s.History {
		out[i] = ex.Response
	}
	return out
}

// EmittedTransactions scans the full request history, answered exchanges
// first and then the still-open requests, and collects every pending
// unbalanced transaction in encounter order. The scan is repeated on every
// call rather than tracked incrementally.
func (s *State[T]) EmittedTransactions() []*types.Tx {
	var out []*types.Tx
	for _, ex := range s.History {
		out = append(out, ex.Request.PendingTxs...)
	}
	for _, req := range s.OpenRequests {
		out = append(out, req.PendingTxs...)
	}
	return out
}
