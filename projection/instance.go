package projection

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/chainsim/go-projection/fold"
	"github.com/chainsim/go-projection/instance"
	"github.com/chainsim/go-projection/types"
)

// Decoder turns an untyped recorded response payload into the instance's
// declared response type. It must be deterministic and side-effect free.
type Decoder[T any] func(json.RawMessage) (T, error)

// JSONDecoder decodes the payload as strict JSON: unknown fields are
// rejected so a recorded response for the wrong shape fails loudly instead
// of decoding to zero values.
func JSONDecoder[T any]() Decoder[T] {
	return func(raw json.RawMessage) (T, error) {
		var v T
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err := dec.Decode(&v)
		return v, err
	}
}

// Advancer applies one decoded response to the prior automaton state and
// returns the next state. It is total: decode failures are caught before
// the advancer is invoked.
type Advancer[T any] func(prior *instance.State[T], resp T) *instance.State[T]

// DecodeError reports a recorded response that could not be decoded into
// the instance's declared response type. The automaton state past the
// offending event is unusable, so the whole projection fails rather than
// returning a truncated view.
type DecodeError struct {
	Tag      types.InstanceTag
	Response json.RawMessage
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("instance %q: decoding response %s: %v", e.Tag, e.Response, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InstanceState reconstructs the automaton state of the instance tagged
// tag. Handled-response events for the tag are decoded with dec and applied
// with adv, in strict event order; events for other tags or with other
// message kinds are skipped without decoding. The first decode failure
// aborts the whole fold with a *DecodeError.
func InstanceState[T any](tag types.InstanceTag, dec Decoder[T], adv Advancer[T]) fold.FoldM[types.Event, *instance.State[T]] {
	sel := func(ev types.Event) (T, bool, error) {
		var zero T
		ie, ok := ev.(*types.InstanceEvent)
		if !ok || ie.Tag != tag {
			return zero, false, nil
		}
		hr, ok := ie.Msg.(*types.HandledResponse)
		if !ok {
			return zero, false, nil
		}
		v, err := dec(hr.Response)
		if err != nil {
			return zero, false, &DecodeError{Tag: tag, Response: hr.Response, Err: err}
		}
		return v, true, nil
	}
	return fold.FilterMapErr(sel, fold.NewM(
		instance.NewState[T],
		func(s *instance.State[T], resp T) (*instance.State[T], error) {
			return adv(s, resp), nil
		},
		func(s *instance.State[T]) (*instance.State[T], error) { return s, nil },
	))
}

// OpenRequests is the instance's currently unanswered requests. Callers
// composing several derived views should run InstanceState once and read
// the fields directly instead of re-folding per view.
func OpenRequests[T any](tag types.InstanceTag, dec Decoder[T], adv Advancer[T]) fold.FoldM[types.Event, []instance.Request] {
	return fold.MapResultErr(InstanceState(tag, dec, adv),
		func(s *instance.State[T]) ([]instance.Request, error) {
			return s.OpenRequests, nil
		})
}

// Responses is the response half of the instance's exchange history.
func Responses[T any](tag types.InstanceTag, dec Decoder[T], adv Advancer[T]) fold.FoldM[types.Event, []T] {
	return fold.MapResultErr(InstanceState(tag, dec, adv),
		func(s *instance.State[T]) ([]T, error) {
			return s.Responses(), nil
		})
}

// FinalOutcome classifies the instance's final state.
func FinalOutcome[T any](tag types.InstanceTag, dec Decoder[T], adv Advancer[T]) fold.FoldM[types.Event, instance.Outcome] {
	return fold.MapResultErr(InstanceState(tag, dec, adv),
		func(s *instance.State[T]) (instance.Outcome, error) {
			return s.Outcome(), nil
		})
}

// EmittedTransactions collects the pending unbalanced transactions carried
// by the instance's requests, in encounter order.
func EmittedTransactions[T any](tag types.InstanceTag, dec Decoder[T], adv Advancer[T]) fold.FoldM[types.Event, []*types.Tx] {
	return fold.MapResultErr(InstanceState(tag, dec, adv),
		func(s *instance.State[T]) ([]*types.Tx, error) {
			return s.EmittedTransactions(), nil
		})
}

// InstanceLog collects the log lines emitted by the instance, in order.
func InstanceLog(tag types.InstanceTag) fold.Fold[types.Event, []string] {
	msgs := instanceMsgs(tag)
	sel := func(ev types.Event) (string, bool) {
		msg, ok := msgs(ev)
		if !ok {
			return "", false
		}
		cl, ok := msg.(*types.ContractLog)
		if !ok {
			return "", false
		}
		return cl.Message, true
	}
	return fold.FilterMap(sel, fold.Collect[string]())
}
