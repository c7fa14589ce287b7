// Package ops implements the signal/event combinators ("adaptors") built
// on top of the core node contract in package reactive. None of these
// types need engine support: each is a plain consumer of
// reactive.NewSignalNode / reactive.NewEventStreamNode, or, for Flatten,
// of the lower-level reactive.Base embedding used for dynamic
// re-subscription.
package ops

import (
	"github.com/purpleidea/dagflow/pgraph"
	"github.com/purpleidea/dagflow/reactive"
)

// Lift1 derives a signal from one input signal via a pure function.
func Lift1[S, R any](ctx *reactive.Context, src reactive.Signal[S], f func(S) R) reactive.Signal[R] {
	reader := src.Reader()
	compute := func() R { return f(reader.Current()) }
	n := reactive.NewSignalNode[R](ctx, []pgraph.SlotID{src.SlotID()}, compute(), compute, nil)
	return reactive.SignalFrom[R](ctx, n)
}

// Lift2 derives a signal from two input signals via a pure function.
// Higher arities compose by nesting: Lift2(ctx, Lift2(ctx, a, b, pair), c, combine).
func Lift2[S1, S2, R any](ctx *reactive.Context, a reactive.Signal[S1], b reactive.Signal[S2], f func(S1, S2) R) reactive.Signal[R] {
	ar, br := a.Reader(), b.Reader()
	compute := func() R { return f(ar.Current(), br.Current()) }
	n := reactive.NewSignalNode[R](ctx, []pgraph.SlotID{a.SlotID(), b.SlotID()}, compute(), compute, nil)
	return reactive.SignalFrom[R](ctx, n)
}
