package reactive

import "github.com/purpleidea/dagflow/pgraph"

// InputSignalNode is the leaf signal archetype: it has no predecessors and
// no compute function, only an external Set/Modify surface per §4.6.
type InputSignalNode[S any] struct {
	SignalNode[S]
	pendingValue  S
	inputAdded    bool
	inputModified bool
}

// NewInputSignalNode registers a fresh input signal with the given initial
// value. hasChanged nil selects the default HasChanged.
func NewInputSignalNode[S any](ctx *Context, initial S, hasChanged func(old, new S) bool) *InputSignalNode[S] {
	if hasChanged == nil {
		hasChanged = HasChanged[S]
	}
	n := &InputSignalNode[S]{}
	n.value = initial
	n.hasChanged = hasChanged
	n.Register(ctx, n)
	return n
}

// Update applies exactly one of the two pending-input cases described in
// §4.6: a buffered Set is compared against the current value under the
// calming rule; a buffered Modify always reports Changed, since the engine
// cannot prove the in-place mutation left the value equal.
func (n *InputSignalNode[S]) Update() pgraph.UpdateResult {
	switch {
	case n.inputAdded:
		n.inputAdded = false
		if !n.hasChanged(n.value, n.pendingValue) {
			return pgraph.Unchanged
		}
		n.value = n.pendingValue
		return pgraph.Changed
	case n.inputModified:
		n.inputModified = false
		return pgraph.Changed
	default:
		return pgraph.Unchanged
	}
}

// Set buffers new as the pending value for the next turn.
func (n *InputSignalNode[S]) Set(new S) {
	n.ctx.graph.AssertNotInCallback("VarSignal.Set")
	n.pendingValue = new
	n.inputAdded = true
	n.inputModified = false
	n.ctx.graph.PushInput(n.id)
}

// Modify applies mutator to the pending value if a Set is already buffered
// this turn, or to the current value otherwise.
func (n *InputSignalNode[S]) Modify(mutator func(S) S) {
	n.ctx.graph.AssertNotInCallback("VarSignal.Modify")
	if n.inputAdded {
		n.pendingValue = mutator(n.pendingValue)
	} else {
		n.value = mutator(n.value)
		n.inputModified = true
	}
	n.ctx.graph.PushInput(n.id)
}

// VarSignal is the user-facing handle for an input signal.
type VarSignal[S any] struct {
	node *InputSignalNode[S]
}

// NewVar constructs a fresh input signal handle with the given initial value.
func NewVar[S any](ctx *Context, initial S) VarSignal[S] {
	return VarSignal[S]{node: NewInputSignalNode[S](ctx, initial, nil)}
}

// NewVarWithEquality is NewVar with an explicit calming comparator, for S
// that should use something other than the default HasChanged rule.
func NewVarWithEquality[S any](ctx *Context, initial S, hasChanged func(old, new S) bool) VarSignal[S] {
	return VarSignal[S]{node: NewInputSignalNode[S](ctx, initial, hasChanged)}
}

// Set schedules new as this input's value for the next turn (or the
// current transaction's eventual turn).
func (v VarSignal[S]) Set(new S) { v.node.Set(new) }

// Modify schedules an in-place mutation of this input's value.
func (v VarSignal[S]) Modify(mutator func(S) S) { v.node.Modify(mutator) }

// Value reads the current value. Forbidden mid-callback, like Signal.Value.
func (v VarSignal[S]) Value() S {
	v.node.ctx.graph.AssertNotInCallback("VarSignal.Value")
	return v.node.Current()
}

// Signal returns a read-only Signal handle over the same node, for passing
// to adaptors that only need to read, not mutate.
func (v VarSignal[S]) Signal() Signal[S] { return SignalFrom[S](v.node.ctx, &v.node.SignalNode) }

// SlotID returns the underlying node's graph identity.
func (v VarSignal[S]) SlotID() pgraph.SlotID { return v.node.id }
