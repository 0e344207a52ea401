package fold

// Collect gathers every input in encounter order.
func Collect[I any]() Fold[I, []I] {
	return New(
		func() []I { return nil },
		func(acc []I, in I) []I { return append(acc, in) },
		func(acc []I) []I { return acc },
	)
}

// Count counts inputs.
func Count[I any]() Fold[I, int] {
	return New(
		func() int { return 0 },
		func(acc int, _ I) int { return acc + 1 },
		func(acc int) int { return acc },
	)
}

// Reduce folds inputs with a binary combine function starting from init. The
// accumulator is the result type, so no final extraction is needed.
func Reduce[I, R any](init R, combine func(R, I) R) Fold[I, R] {
	return New(
		func() R { return init },
		combine,
		func(acc R) R { return acc },
	)
}

// Any reports whether any input satisfied pred. Once true it stays true for
// the rest of the run.
func Any[I any](pred func(I) bool) Fold[I, bool] {
	return New(
		func() bool { return false },
		func(acc bool, in I) bool { return acc || pred(in) },
		func(acc bool) bool { return acc },
	)
}
