package ops

import (
	"github.com/purpleidea/dagflow/pgraph"
	"github.com/purpleidea/dagflow/reactive"
)

// Transform maps every event of src through f. Multi-argument transforms
// (the source library's transform2..transform5 experiments) are not
// special-cased here — build them by Merge-ing or Zip-ping first, then
// Transform-ing the combined stream, per this repository's single-arity
// adaptor-shape decision.
func Transform[E1, E2 any](ctx *reactive.Context, src reactive.Events[E1], f func(E1) E2) reactive.Events[E2] {
	reader := src.Reader()
	derive := func(out []E2) []E2 {
		for _, e := range reader.Current() {
			out = append(out, f(e))
		}
		return out
	}
	n := reactive.NewEventStreamNode[E2](ctx, []pgraph.SlotID{src.SlotID()}, derive)
	return reactive.EventsFrom[E2](ctx, n)
}
