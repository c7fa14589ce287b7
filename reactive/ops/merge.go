package ops

import (
	"github.com/purpleidea/dagflow/pgraph"
	"github.com/purpleidea/dagflow/reactive"
)

// Merge unions N event streams of the same type into one. An event present
// in more than one source this turn appears once per source, in source
// order, matching the source library's merge semantics (no deduplication).
func Merge[E any](ctx *reactive.Context, sources ...reactive.Events[E]) reactive.Events[E] {
	readers := make([]reactive.EventsReader[E], len(sources))
	preds := make([]pgraph.SlotID, len(sources))
	for i, s := range sources {
		readers[i] = s.Reader()
		preds[i] = s.SlotID()
	}
	derive := func(out []E) []E {
		for _, reader := range readers {
			out = append(out, reader.Current()...)
		}
		return out
	}
	n := reactive.NewEventStreamNode[E](ctx, preds, derive)
	return reactive.EventsFrom[E](ctx, n)
}
