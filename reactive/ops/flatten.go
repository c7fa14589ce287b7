package ops

import (
	"github.com/purpleidea/dagflow/pgraph"
	"github.com/purpleidea/dagflow/reactive"
)

// flattenNode is a signal-of-signal "switch": its value tracks whichever
// inner signal the outer signal currently names. It is the one node type
// in this package that actually exercises the Shifted / dynamic
// re-subscription machinery from §4.3, since it embeds reactive.Base
// directly instead of going through NewSignalNode's fixed Update behavior.
type flattenNode[S any] struct {
	reactive.Base
	outer      reactive.SignalReader[reactive.Signal[S]]
	inner      reactive.SignalReader[S]
	innerID    pgraph.SlotID
	value      S
	hasChanged func(old, new S) bool
}

// Flatten builds a signal that always mirrors the current value of
// outer's currently-named inner signal. When outer switches to a
// different inner signal, Flatten detaches from the old inner, attaches to
// the new one, and reports Shifted so the scheduler re-levels it before
// it reads a value again.
func Flatten[S any](ctx *reactive.Context, outer reactive.Signal[reactive.Signal[S]]) reactive.Signal[S] {
	initialInner := outer.Reader().Current()
	n := &flattenNode[S]{
		outer:      outer.Reader(),
		inner:      initialInner.Reader(),
		innerID:    initialInner.SlotID(),
		hasChanged: reactive.HasChanged[S],
	}
	n.value = n.inner.Current()
	n.Register(ctx, n)
	n.AttachTo(outer.SlotID(), n.innerID)
	return reactive.SignalFrom[S](ctx, n)
}

// Current returns this node's value, satisfying reactive.SignalReader.
func (n *flattenNode[S]) Current() S { return n.value }

// Update implements the re-subscription dance described in §4.3's
// "Dynamic re-subscription": detach from the stale inner, attach to the
// new one, and report Shifted without computing a value this pass — the
// scheduler re-queues this node at its corrected level, and the value is
// read on the following pass once every predecessor has settled.
func (n *flattenNode[S]) Update() pgraph.UpdateResult {
	newInner := n.outer.Current()
	if newInner.SlotID() != n.innerID {
		n.Reattach(n.innerID, newInner.SlotID())
		n.inner = newInner.Reader()
		n.innerID = newInner.SlotID()
		return pgraph.Shifted
	}
	candidate := n.inner.Current()
	if !n.hasChanged(n.value, candidate) {
		return pgraph.Unchanged
	}
	n.value = candidate
	return pgraph.Changed
}

// Finalize is a no-op; flatten carries no per-turn buffer to clear.
func (n *flattenNode[S]) Finalize() {}
