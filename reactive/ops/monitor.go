package ops

import (
	"github.com/purpleidea/dagflow/pgraph"
	"github.com/purpleidea/dagflow/reactive"
)

// Monitor projects a signal's changes onto an event stream: one event,
// carrying the new value, per turn in which the signal changed.
func Monitor[S any](ctx *reactive.Context, src reactive.Signal[S]) reactive.Events[S] {
	reader := src.Reader()
	derive := func(out []S) []S {
		return append(out, reader.Current())
	}
	n := reactive.NewEventStreamNode[S](ctx, []pgraph.SlotID{src.SlotID()}, derive)
	return reactive.EventsFrom[S](ctx, n)
}

// Changed is Monitor without a payload: one zero-value event per turn in
// which the signal changed, for callers that only care that it changed.
func Changed[S any](ctx *reactive.Context, src reactive.Signal[S]) reactive.Events[struct{}] {
	reader := src.Reader()
	derive := func(out []struct{}) []struct{} {
		_ = reader.Current()
		return append(out, struct{}{})
	}
	n := reactive.NewEventStreamNode[struct{}](ctx, []pgraph.SlotID{src.SlotID()}, derive)
	return reactive.EventsFrom[struct{}](ctx, n)
}
