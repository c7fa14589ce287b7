package pgraph

import (
	"fmt"

	"github.com/purpleidea/dagflow/dagerr"
)

// Graph owns one reactive context's slot map, topological queue, pending
// input list, and deferred-detach list, and drives the propagation turn
// across them. It is not safe for concurrent use: every public mutation
// must serialize through the owning goroutine, matching this engine's
// single-threaded-per-graph model.
type Graph struct {
	// Name is a diagnostic label only; it has no effect on behavior.
	Name string
	// Debug gates Logf calls. When false (the default) the graph never
	// calls Logf even if one is set.
	Debug bool
	// Logf is the sink the graph's logf helper forwards to when Debug is
	// true. Nil is a valid no-op default. None of the graph's operations
	// emit diagnostic lines through it.
	Logf func(format string, v ...interface{})

	slots   *SlotMap
	queue   *Queue
	pending []SlotID
	changed []SlotID

	txnDepth      int
	callbackDepth int

	deferred []func()
}

// NewGraph returns an empty graph.
func NewGraph(name string) *Graph {
	return &Graph{
		Name:  name,
		slots: NewSlotMap(),
		queue: NewQueue(),
	}
}

func (g *Graph) logf(format string, v ...interface{}) {
	if g.Debug && g.Logf != nil {
		g.Logf(format, v...)
	}
}

// assertNoCallback panics if called while a user callback (a node's Update
// or an observer's user function) is in progress. Every public mutation
// entry point that a callback must not legally reach calls this first.
func (g *Graph) assertNoCallback(op string) {
	if g.callbackDepth > 0 {
		panic(fmt.Sprintf("pgraph: %s called while a callback is in progress", op))
	}
}

// AssertNotInCallback is the exported form of the re-entrancy check, for use
// by package reactive's public handle methods (e.g. reading a signal's
// current value from outside the graph, which §4.3 forbids mid-callback).
func (g *Graph) AssertNotInCallback(op string) {
	g.assertNoCallback(op)
}

// InCallback reports whether a user callback is currently executing.
func (g *Graph) InCallback() bool {
	return g.callbackDepth > 0
}

// RegisterNode allocates metadata for n and returns its new id. The level
// starts at 0, matching a freshly attached leaf; AttachNode raises it as
// needed once predecessors are wired.
func (g *Graph) RegisterNode(n Node) SlotID {
	g.assertNoCallback("RegisterNode")
	return g.slots.Insert(Meta{Node: n})
}

// UnregisterNode erases id's metadata. Callers must ensure no handle or
// successor still references id; this is an ownership precondition, not
// something the graph can check.
func (g *Graph) UnregisterNode(id SlotID) {
	g.assertNoCallback("UnregisterNode")
	g.slots.Erase(id)
}

// AttachNode appends childID to parentID's successor list and bumps
// childID's level above parentID's if it isn't already. May be called
// during graph construction (outside a turn) or from inside a node's
// Update (dynamic re-subscription) — the latter is the one mutation a
// callback IS permitted to make, since it is how flatten/switch nodes work.
func (g *Graph) AttachNode(childID, parentID SlotID) {
	parent := g.slots.At(parentID)
	parent.Successors = append(parent.Successors, childID)
	child := g.slots.At(childID)
	if child.Level <= parent.Level {
		child.Level = parent.Level + 1
	}
}

// DetachNode removes childID from parentID's successor list.
func (g *Graph) DetachNode(childID, parentID SlotID) {
	parent := g.slots.At(parentID)
	for i, s := range parent.Successors {
		if s == childID {
			parent.Successors = append(parent.Successors[:i], parent.Successors[i+1:]...)
			return
		}
	}
}

// PushInput records that id (an input node) changed since the last
// propagation. If no transaction is open, it runs Propagate immediately.
func (g *Graph) PushInput(id SlotID) {
	g.assertNoCallback("PushInput")
	g.pending = append(g.pending, id)
	if g.txnDepth == 0 {
		g.Propagate()
	}
}

// StartTransaction opens (or nests inside) a transaction, deferring
// propagation until the matching FinishTransaction count reaches zero.
func (g *Graph) StartTransaction() {
	g.assertNoCallback("StartTransaction")
	g.txnDepth++
}

// FinishTransaction closes one transaction level. On the outermost close,
// if inputs were pushed during the transaction, it runs Propagate.
func (g *Graph) FinishTransaction() {
	if g.txnDepth == 0 {
		panic("pgraph: FinishTransaction called without a matching StartTransaction")
	}
	g.txnDepth--
	if g.txnDepth == 0 && len(g.pending) > 0 {
		g.Propagate()
	}
}

// DeferDetach queues fn to run after the current turn's finalize phase.
// Used by observer self-detach so a mid-turn stop doesn't perturb the
// batch currently being iterated.
func (g *Graph) DeferDetach(fn func()) {
	g.deferred = append(g.deferred, fn)
}

// runCallback invokes fn with the re-entrancy guard held, releasing the
// guard via defer even if fn panics. The panic is not recovered; it
// continues to the caller, so propagation errors are never swallowed.
func (g *Graph) runCallback(fn func() UpdateResult) (result UpdateResult) {
	g.callbackDepth++
	defer func() { g.callbackDepth-- }()
	return fn()
}

// Propagate runs one turn: apply inputs, drain the queue by levels,
// finalize changed nodes, then run deferred detaches.
func (g *Graph) Propagate() {
	g.changed = g.changed[:0]

	g.applyInputs()
	g.drainQueue()
	g.finalizeChanged()
	g.runDeferredDetaches()
}

func (g *Graph) applyInputs() {
	pending := g.pending
	g.pending = nil
	for _, id := range pending {
		meta := g.slots.At(id)
		result := g.runCallback(meta.Node.Update)
		if result == Changed {
			g.markChanged(id)
			g.enqueueSuccessors(id)
		}
	}
}

func (g *Graph) drainQueue() {
	for {
		batch, ok := g.queue.FetchNext()
		if !ok {
			return
		}
		for _, id := range batch {
			g.processQueued(id)
		}
	}
}

func (g *Graph) processQueued(id SlotID) {
	meta := g.slots.At(id)
	if meta.Level < meta.NewLevel {
		meta.Level = meta.NewLevel
		g.bumpSuccessorLevels(id, meta.Level)
		g.queue.Push(id, meta.Level)
		return
	}

	result := g.runCallback(meta.Node.Update)
	switch result {
	case Shifted:
		meta = g.slots.At(id)
		g.bumpSuccessorLevels(id, meta.Level)
		g.queue.Push(id, meta.Level)
		return
	case Changed:
		g.markChanged(id)
		g.enqueueSuccessors(id)
	}
	meta.Queued = false
}

func (g *Graph) bumpSuccessorLevels(id SlotID, level int) {
	meta := g.slots.At(id)
	for _, succID := range meta.Successors {
		succ := g.slots.At(succID)
		if level+1 > succ.NewLevel {
			succ.NewLevel = level + 1
		}
	}
}

func (g *Graph) enqueueSuccessors(id SlotID) {
	meta := g.slots.At(id)
	for _, succID := range meta.Successors {
		succ := g.slots.At(succID)
		if succ.Queued {
			continue
		}
		succ.Queued = true
		g.queue.Push(succID, succ.Level)
	}
}

func (g *Graph) markChanged(id SlotID) {
	g.changed = append(g.changed, id)
}

func (g *Graph) finalizeChanged() {
	for _, id := range g.changed {
		g.slots.At(id).Node.Finalize()
	}
}

func (g *Graph) runDeferredDetaches() {
	deferred := g.deferred
	g.deferred = nil
	for _, fn := range deferred {
		fn()
	}
}

// Validate is a debug/test-only invariant checker: every successor slot
// must be live, and level must increase strictly across every edge. It does
// not inspect queued bits. It is never called from a production
// propagation path.
func (g *Graph) Validate() error {
	var reterr error
	for id := SlotID(0); int(id) < len(g.slots.used); id++ {
		if !g.slots.used[id] {
			continue
		}
		meta := &g.slots.slots[id]
		for _, succID := range meta.Successors {
			if !g.slots.used[succID] {
				reterr = dagerr.Append(reterr, dagerr.New("edge %d->%d: successor slot not live", id, succID))
				continue
			}
			succ := &g.slots.slots[succID]
			if meta.Level >= succ.Level {
				reterr = dagerr.Append(reterr, dagerr.New("edge %d->%d: level(parent)=%d >= level(child)=%d", id, succID, meta.Level, succ.Level))
			}
		}
	}
	return reterr
}
