// Package fold implements incremental single-pass aggregations over ordered
// input sequences. A fold pairs a hidden accumulator with a step function and
// a final extraction; combinators pre-filter, pre-transform and post-transform
// folds without exposing the accumulator type to composition code.
package fold

import "context"

// Fold is a pure incremental aggregation of Input values into one Result.
// The accumulator type is erased behind the closures built by New, so folds
// over different internal state compose freely.
//
// A Fold value is a description, not a running computation: every Run or
// Start builds a fresh accumulator, so the same Fold can be run any number
// of times and always yields the same result for the same inputs.
type Fold[I, R any] struct {
	fresh func() *run[I, R]
}

type run[I, R any] struct {
	step    func(I)
	extract func() R
}

// New builds a pure fold. initial must return a fresh accumulator on every
// call; step consumes one input left-to-right; extract is invoked exactly
// once, after the last input.
func New[I, S, R any](initial func() S, step func(S, I) S, extract func(S) R) Fold[I, R] {
	return Fold[I, R]{fresh: func() *run[I, R] {
		acc := initial()
		return &run[I, R]{
			step:    func(in I) { acc = step(acc, in) },
			extract: func() R { return extract(acc) },
		}
	}}
}

// Run folds every input in order and extracts the result.
func (f Fold[I, R]) Run(inputs []I) R {
	r := f.fresh()
	for _, in := range inputs {
		r.step(in)
	}
	return r.extract()
}

// Start begins a push-based run for callers that receive inputs one at a
// time instead of as a slice. Feed inputs with Step, then read Result once.
func (f Fold[I, R]) Start() *Run[I, R] {
	return &Run[I, R]{r: f.fresh()}
}

// Run is a started pure fold accepting pushed inputs.
type Run[I, R any] struct {
	r *run[I, R]
}

func (r *Run[I, R]) Step(in I) { r.r.step(in) }

func (r *Run[I, R]) Result() R { return r.r.extract() }

// FoldM is the effectful variant of Fold: a step may fail, which aborts the
// entire run and surfaces that first error to the caller. There are no
// partial results and no error aggregation.
type FoldM[I, R any] struct {
	fresh func() *runM[I, R]
}

type runM[I, R any] struct {
	step    func(I) error
	extract func() (R, error)
}

// NewM builds an effectful fold from fallible step and extract functions.
func NewM[I, S, R any](initial func() S, step func(S, I) (S, error), extract func(S) (R, error)) FoldM[I, R] {
	return FoldM[I, R]{fresh: func() *runM[I, R] {
		acc := initial()
		return &runM[I, R]{
			step: func(in I) error {
				next, err := step(acc, in)
				if err != nil {
					return err
				}
				acc = next
				return nil
			},
			extract: func() (R, error) { return extract(acc) },
		}
	}}
}

// Run folds every input in order. Cancellation is checked between steps: a
// cancelled run performs no further steps, never extracts, and returns
// ctx.Err().
func (f FoldM[I, R]) Run(ctx context.Context, inputs []I) (R, error) {
	var zero R
	r := f.fresh()
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		if err := r.step(in); err != nil {
			return zero, err
		}
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	return r.extract()
}

// Start begins a push-based effectful run. After a step fails the run is
// poisoned: further steps are not executed and Result repeats the error.
func (f FoldM[I, R]) Start() *RunM[I, R] {
	return &RunM[I, R]{r: f.fresh()}
}

// RunM is a started effectful fold accepting pushed inputs.
type RunM[I, R any] struct {
	r   *runM[I, R]
	err error
}

func (r *RunM[I, R]) Step(in I) error {
	if r.err != nil {
		return r.err
	}
	r.err = r.r.step(in)
	return r.err
}

func (r *RunM[I, R]) Result() (R, error) {
	if r.err != nil {
		var zero R
		return zero, r.err
	}
	return r.r.extract()
}
