package reactive

import "github.com/purpleidea/dagflow/pgraph"

// InputEventNode is an event-stream node with no derive step — the "input
// event source" archetype of §3/§4.7. Emit buffers values in pendingEmits,
// and Update moves them into events when the turn runs.
type InputEventNode[E any] struct {
	EventStreamNode[E]
	pendingEmits []E
}

// NewInputEventNode registers a fresh input event source.
func NewInputEventNode[E any](ctx *Context) *InputEventNode[E] {
	n := &InputEventNode[E]{}
	n.Register(ctx, n)
	return n
}

// Update moves any values buffered by Emit since the last turn into events.
func (n *InputEventNode[E]) Update() pgraph.UpdateResult {
	if len(n.pendingEmits) == 0 {
		return pgraph.Unchanged
	}
	n.events = append(n.events[:0], n.pendingEmits...)
	n.pendingEmits = n.pendingEmits[:0]
	return pgraph.Changed
}

// Emit appends e to the pending buffer and schedules a turn (or folds into
// the current transaction).
func (n *InputEventNode[E]) Emit(e E) {
	n.ctx.graph.AssertNotInCallback("EventSource.Emit")
	n.pendingEmits = append(n.pendingEmits, e)
	n.ctx.graph.PushInput(n.id)
}

// EventSource is the user-facing handle for an input event stream.
type EventSource[E any] struct {
	node *InputEventNode[E]
}

// NewEventSource constructs a fresh input event source handle.
func NewEventSource[E any](ctx *Context) EventSource[E] {
	return EventSource[E]{node: NewInputEventNode[E](ctx)}
}

// Emit appends e to the stream, triggering a turn once the outermost
// transaction (if any) completes.
func (s EventSource[E]) Emit(e E) { s.node.Emit(e) }

// Events returns a read-only Events handle over the same node.
func (s EventSource[E]) Events() Events[E] {
	return EventsFrom[E](s.node.ctx, &s.node.EventStreamNode)
}

// SlotID returns the underlying node's graph identity.
func (s EventSource[E]) SlotID() pgraph.SlotID { return s.node.id }
