package ops

import (
	"github.com/purpleidea/dagflow/pgraph"
	"github.com/purpleidea/dagflow/reactive"
)

// Zip pairwise-combines two event streams, buffering whichever side runs
// ahead in a private FIFO queue, matching the source library's
// detail/zip_base.hpp per-source buffering scheme. A combined event is
// only produced once both queues have at least one pending element.
func Zip[E1, E2, R any](ctx *reactive.Context, a reactive.Events[E1], b reactive.Events[E2], f func(E1, E2) R) reactive.Events[R] {
	ar, br := a.Reader(), b.Reader()
	var bufA []E1
	var bufB []E2
	derive := func(out []R) []R {
		bufA = append(bufA, ar.Current()...)
		bufB = append(bufB, br.Current()...)
		n := len(bufA)
		if len(bufB) < n {
			n = len(bufB)
		}
		for i := 0; i < n; i++ {
			out = append(out, f(bufA[i], bufB[i]))
		}
		bufA = append([]E1(nil), bufA[n:]...)
		bufB = append([]E2(nil), bufB[n:]...)
		return out
	}
	node := reactive.NewEventStreamNode[R](ctx, []pgraph.SlotID{a.SlotID(), b.SlotID()}, derive)
	return reactive.EventsFrom[R](ctx, node)
}
