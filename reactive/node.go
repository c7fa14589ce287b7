package reactive

import "github.com/purpleidea/dagflow/pgraph"

// Base is the bookkeeping every node archetype embeds: its own graph id, a
// back-reference to the owning context, and the list of predecessor ids it
// is currently attached to (kept so Detach/re-attach don't need the caller
// to remember what was wired). It does not itself satisfy pgraph.Node —
// each archetype (and each custom adaptor node in reactive/ops) supplies
// its own Update/Finalize and embeds Base for the rest.
type Base struct {
	id    pgraph.SlotID
	ctx   *Context
	preds []pgraph.SlotID
}

// Register allocates this node's graph id. Must be called exactly once,
// after the embedding struct is otherwise fully constructed, since
// RegisterNode immediately stores the pgraph.Node interface value (which
// requires the struct's Update/Finalize methods to already be meaningful).
func (b *Base) Register(ctx *Context, self pgraph.Node) {
	b.ctx = ctx
	b.id = ctx.graph.RegisterNode(self)
}

// SlotID returns this node's graph-scoped identity.
func (b *Base) SlotID() pgraph.SlotID { return b.id }

// Context returns the owning context, for adaptors that need to reach the
// underlying graph directly (e.g. to push an input or assert the
// re-entrancy guard).
func (b *Base) Context() *Context { return b.ctx }

// AttachTo wires parents as this node's predecessors, in order.
func (b *Base) AttachTo(parents ...pgraph.SlotID) {
	for _, p := range parents {
		b.ctx.graph.AttachNode(b.id, p)
		b.preds = append(b.preds, p)
	}
}

// DetachAll removes this node from every predecessor's successor list.
func (b *Base) DetachAll() {
	for _, p := range b.preds {
		b.ctx.graph.DetachNode(b.id, p)
	}
	b.preds = nil
}

// Reattach swaps oldParent for newParent in this node's predecessor set —
// the operation a flatten/switch node performs when its inner subject
// changes, returning pgraph.Shifted to its caller afterwards.
func (b *Base) Reattach(oldParent, newParent pgraph.SlotID) {
	b.ctx.graph.DetachNode(b.id, oldParent)
	b.ctx.graph.AttachNode(b.id, newParent)
	for i, p := range b.preds {
		if p == oldParent {
			b.preds[i] = newParent
			return
		}
	}
	b.preds = append(b.preds, newParent)
}
