package ops

import (
	"github.com/purpleidea/dagflow/pgraph"
	"github.com/purpleidea/dagflow/reactive"
)

// Fold accumulates an event stream into a signal: every event this turn is
// folded into the running accumulator in order, and the signal reports
// Changed at most once per turn regardless of how many events arrived.
func Fold[E, S any](ctx *reactive.Context, src reactive.Events[E], initial S, reducer func(acc S, e E) S) reactive.Signal[S] {
	reader := src.Reader()
	acc := initial
	compute := func() S {
		for _, e := range reader.Current() {
			acc = reducer(acc, e)
		}
		return acc
	}
	n := reactive.NewSignalNode[S](ctx, []pgraph.SlotID{src.SlotID()}, initial, compute, nil)
	return reactive.SignalFrom[S](ctx, n)
}

// Count is a thin Fold specialization: a signal of how many events an
// event stream has carried in total.
func Count[E any](ctx *reactive.Context, src reactive.Events[E]) reactive.Signal[int] {
	return Fold[E, int](ctx, src, 0, func(acc int, _ E) int { return acc + 1 })
}
