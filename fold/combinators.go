package fold

// FilterMap applies sel to every input and folds only the accepted values
// into inner. Rejected inputs leave the accumulator untouched. Accepted
// values reach inner's step in their original order, never buffered or
// reordered.
func FilterMap[I, M, R any](sel func(I) (M, bool), inner Fold[M, R]) Fold[I, R] {
	return Fold[I, R]{fresh: func() *run[I, R] {
		ir := inner.fresh()
		return &run[I, R]{
			step: func(in I) {
				if m, ok := sel(in); ok {
					ir.step(m)
				}
			},
			extract: ir.extract,
		}
	}}
}

// FilterMapErr is FilterMap with a fallible selector: a selector error (for
// example a decode failure) aborts the whole fold immediately. A false
// selection still means "skip", not failure.
func FilterMapErr[I, M, R any](sel func(I) (M, bool, error), inner FoldM[M, R]) FoldM[I, R] {
	return FoldM[I, R]{fresh: func() *runM[I, R] {
		ir := inner.fresh()
		return &runM[I, R]{
			step: func(in I) error {
				m, ok, err := sel(in)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				return ir.step(m)
			},
			extract: ir.extract,
		}
	}}
}

// MapResult post-processes the final extracted result of a pure fold.
// Per-step behaviour is unchanged.
func MapResult[I, A, B any](inner Fold[I, A], f func(A) B) Fold[I, B] {
	return Fold[I, B]{fresh: func() *run[I, B] {
		ir := inner.fresh()
		return &run[I, B]{
			step:    ir.step,
			extract: func() B { return f(ir.extract()) },
		}
	}}
}

// MapResultErr post-processes the final result of an effectful fold through
// a possibly-failing function.
func MapResultErr[I, A, B any](inner FoldM[I, A], f func(A) (B, error)) FoldM[I, B] {
	return FoldM[I, B]{fresh: func() *runM[I, B] {
		ir := inner.fresh()
		return &runM[I, B]{
			step: ir.step,
			extract: func() (B, error) {
				a, err := ir.extract()
				if err != nil {
					var zero B
					return zero, err
				}
				return f(a)
			},
		}
	}}
}

// Lift embeds a pure fold into the effectful shape so it composes with
// combinators that require a FoldM.
func Lift[I, R any](f Fold[I, R]) FoldM[I, R] {
	return FoldM[I, R]{fresh: func() *runM[I, R] {
		ir := f.fresh()
		return &runM[I, R]{
			step: func(in I) error {
				ir.step(in)
				return nil
			},
			extract: func() (R, error) { return ir.extract(), nil },
		}
	}}
}
