package ops

import (
	"github.com/purpleidea/dagflow/pgraph"
	"github.com/purpleidea/dagflow/reactive"
)

// Filter drops events of src that fail pred.
func Filter[E any](ctx *reactive.Context, src reactive.Events[E], pred func(E) bool) reactive.Events[E] {
	reader := src.Reader()
	derive := func(out []E) []E {
		for _, e := range reader.Current() {
			if pred(e) {
				out = append(out, e)
			}
		}
		return out
	}
	n := reactive.NewEventStreamNode[E](ctx, []pgraph.SlotID{src.SlotID()}, derive)
	return reactive.EventsFrom[E](ctx, n)
}
