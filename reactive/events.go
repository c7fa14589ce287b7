package reactive

import "github.com/purpleidea/dagflow/pgraph"

// EventStreamNode holds the current turn's buffer of events of type E.
// derive is called by Update to (re-)populate events for this turn by
// appending to the slice it's given (merge/filter/transform adaptors
// append predecessor events into it); the buffer is cleared by Finalize,
// which only runs on nodes that reported Changed, matching §4.7.
type EventStreamNode[E any] struct {
	Base
	events []E
	derive func(out []E) []E
}

// NewEventStreamNode registers a derived event-stream node and attaches it
// to predecessors. derive receives the (empty) buffer to append into and
// returns the new buffer — this mirrors an append-style reducer so
// adaptors don't need to manage slice identity themselves.
func NewEventStreamNode[E any](ctx *Context, predecessors []pgraph.SlotID, derive func(out []E) []E) *EventStreamNode[E] {
	n := &EventStreamNode[E]{derive: derive}
	n.Register(ctx, n)
	n.AttachTo(predecessors...)
	return n
}

// Current returns this turn's event buffer, read by a dependent during its
// own Update — legal per §6 since it reads a predecessor, not a public
// handle.
func (n *EventStreamNode[E]) Current() []E { return n.events }

// Update runs derive and reports Changed iff the resulting buffer is
// non-empty.
func (n *EventStreamNode[E]) Update() pgraph.UpdateResult {
	n.events = n.derive(n.events[:0])
	if len(n.events) == 0 {
		return pgraph.Unchanged
	}
	return pgraph.Changed
}

// Finalize clears the per-turn buffer.
func (n *EventStreamNode[E]) Finalize() { n.events = n.events[:0] }

// EventsReader is satisfied by any node that behaves like an event stream:
// a per-turn buffer plus a graph identity. Like SignalReader, this lets
// adaptor packages supply their own node types.
type EventsReader[E any] interface {
	Current() []E
	SlotID() pgraph.SlotID
}

// Events is the read-only, copyable handle for an event stream.
type Events[E any] struct {
	ctx    *Context
	reader EventsReader[E]
}

// EventsFrom wraps an already-constructed EventsReader in its public handle.
func EventsFrom[E any](ctx *Context, reader EventsReader[E]) Events[E] {
	return Events[E]{ctx: ctx, reader: reader}
}

// Current returns this turn's events. Like Signal.Value, this is the
// public-handle path and is forbidden mid-callback; adaptors read
// predecessor buffers via Reader().Current() instead.
func (e Events[E]) Current() []E {
	e.ctx.graph.AssertNotInCallback("Events.Current")
	return e.reader.Current()
}

// Reader exposes the underlying EventsReader for adaptors.
func (e Events[E]) Reader() EventsReader[E] { return e.reader }

// SlotID returns the underlying node's graph identity.
func (e Events[E]) SlotID() pgraph.SlotID { return e.reader.SlotID() }
