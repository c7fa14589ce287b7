package ops

import (
	"github.com/purpleidea/dagflow/pgraph"
	"github.com/purpleidea/dagflow/reactive"
)

// Hold is Monitor's dual: it turns an event stream into a signal holding
// the latest event's payload, unchanged between events.
func Hold[E any](ctx *reactive.Context, src reactive.Events[E], initial E) reactive.Signal[E] {
	reader := src.Reader()
	compute := func() E {
		events := reader.Current()
		if len(events) == 0 {
			return initial
		}
		return events[len(events)-1]
	}
	n := reactive.NewSignalNode[E](ctx, []pgraph.SlotID{src.SlotID()}, initial, compute, nil)
	return reactive.SignalFrom[E](ctx, n)
}
