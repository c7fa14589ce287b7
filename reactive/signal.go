package reactive

import "github.com/purpleidea/dagflow/pgraph"

// SignalNode is the concrete node object behind a derived Signal[S] handle.
// Adaptors in package reactive/ops construct one per combinator (Lift,
// Fold, Hold, ...) by supplying a compute closure that reads already-
// updated predecessor values — legal per the node contract because, by the
// time this node's Update runs, every predecessor at a lower level has
// already run this turn.
type SignalNode[S any] struct {
	Base
	value      S
	compute    func() S
	hasChanged func(old, new S) bool
}

// NewSignalNode registers a derived signal node, attaches it to predecessors
// (in order), and gives it its initial value. compute is called once per
// Update to produce a candidate value; hasChanged decides whether the
// candidate constitutes a change (nil selects the default HasChanged).
func NewSignalNode[S any](ctx *Context, predecessors []pgraph.SlotID, initial S, compute func() S, hasChanged func(old, new S) bool) *SignalNode[S] {
	if hasChanged == nil {
		hasChanged = HasChanged[S]
	}
	n := &SignalNode[S]{value: initial, compute: compute, hasChanged: hasChanged}
	n.Register(ctx, n)
	n.AttachTo(predecessors...)
	return n
}

// Current returns this node's value without the public-handle re-entrancy
// check — the read path predecessors use from inside another node's own
// Update, which §6 permits explicitly.
func (n *SignalNode[S]) Current() S { return n.value }

// Update recomputes the candidate value and applies the calming rule.
func (n *SignalNode[S]) Update() pgraph.UpdateResult {
	return n.tryChangeValue(n.compute())
}

func (n *SignalNode[S]) tryChangeValue(candidate S) pgraph.UpdateResult {
	if !n.hasChanged(n.value, candidate) {
		return pgraph.Unchanged
	}
	n.value = candidate
	return pgraph.Changed
}

// Finalize is a no-op for signals; only event-stream nodes clear state here.
func (n *SignalNode[S]) Finalize() {}

// SignalReader is satisfied by any node that behaves like a signal: it has
// a current value and a graph identity. Package reactive's own SignalNode
// satisfies it, and so can a custom node type defined in another package
// (e.g. reactive/ops' dynamic-resubscription "flatten" node), letting that
// package produce a Signal[S] handle without its node type having to BE a
// *SignalNode[S].
type SignalReader[S any] interface {
	Current() S
	SlotID() pgraph.SlotID
}

// Signal is the read-only, copyable handle users and adaptors pass around.
// Two Signal[S] values compare equal (with ==) iff they wrap the same
// underlying reader, which for every node type in this module is itself a
// unique pointer — identity, not value, equality.
type Signal[S any] struct {
	ctx    *Context
	reader SignalReader[S]
}

// SignalFrom wraps an already-constructed SignalReader in its public
// handle. Adaptor constructors in reactive/ops call this after building
// their node.
func SignalFrom[S any](ctx *Context, reader SignalReader[S]) Signal[S] {
	return Signal[S]{ctx: ctx, reader: reader}
}

// Value reads the signal's current value. Forbidden while a callback is in
// progress — ordinary code calls this between turns; adaptors read
// predecessor values via Reader().Current() instead.
func (s Signal[S]) Value() S {
	s.ctx.graph.AssertNotInCallback("Signal.Value")
	return s.reader.Current()
}

// Reader exposes the underlying SignalReader so adaptors can read its
// current value without the public-handle guard and can attach to its
// SlotID.
func (s Signal[S]) Reader() SignalReader[S] { return s.reader }

// SlotID returns the underlying node's graph identity.
func (s Signal[S]) SlotID() pgraph.SlotID { return s.reader.SlotID() }
