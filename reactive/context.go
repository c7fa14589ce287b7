// Package reactive implements the node archetypes, handle layer, and
// context/transaction façade of the propagation engine on top of the
// scheduling primitives in package pgraph.
package reactive

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/purpleidea/dagflow/pgraph"
)

// Context is the user-facing façade owning exactly one graph. Contexts are
// compared by identity; callers must not copy a *Context, only share the
// pointer, since every node constructed against a context holds a
// reference back to it.
type Context struct {
	// Debug gates Logf. BeginTransaction copies it onto the field of the
	// same name on the underlying graph so callers have one knob to set.
	Debug bool
	// Logf is copied onto the underlying graph, together with Debug, by
	// BeginTransaction. Nil is a valid no-op default. Neither the context
	// nor the graph emits diagnostic lines through it.
	Logf func(format string, v ...interface{})

	id    uuid.UUID
	graph *pgraph.Graph
}

// NewContext allocates a fresh, empty context. name is a diagnostic label
// only, passed through to the underlying graph.
func NewContext(name string) *Context {
	c := &Context{id: uuid.New()}
	c.graph = pgraph.NewGraph(name)
	return c
}

// ID returns this context's diagnostic identifier. It plays no role in
// node identity or equality — that remains the slot map's integer ids.
func (c *Context) ID() string { return c.id.String() }

func (c *Context) String() string {
	return fmt.Sprintf("context(%s/%s)", c.graph.Name, c.id)
}

func (c *Context) syncDebug() {
	c.graph.Debug = c.Debug
	c.graph.Logf = c.Logf
}

func (c *Context) logf(format string, v ...interface{}) {
	if c.Debug && c.Logf != nil {
		c.Logf(format, v...)
	}
}

// Transaction is an RAII-style guard: it increments the graph's transaction
// counter on creation and decrements it on Finish. Propagation occurs
// exactly once, when the outermost transaction finishes with pending
// inputs. Transactions are not reusable: Finish panics if called twice.
type Transaction struct {
	ctx    *Context
	active bool
}

// BeginTransaction opens (or nests inside) a transaction on c. Callers must
// call Finish exactly once on the returned Transaction; Go has no
// destructors, so unlike the source this is not automatic on scope exit —
// use Context.Transact for the automatic-on-panic-too form.
func (c *Context) BeginTransaction() *Transaction {
	c.syncDebug()
	c.graph.StartTransaction()
	return &Transaction{ctx: c, active: true}
}

// Finish closes this transaction level, triggering propagation if this was
// the outermost level and inputs are pending. Calling Finish twice panics.
func (t *Transaction) Finish() {
	if !t.active {
		panic("reactive: Transaction.Finish called twice")
	}
	t.active = false
	t.ctx.graph.FinishTransaction()
}

// Transact opens a transaction, runs fn, and finishes the transaction even
// if fn panics — the transactional equivalent of the callback guard's
// RAII release. Any number of Set/Modify/Emit calls inside fn collapse into
// exactly one turn when the outermost Transact call returns.
func (c *Context) Transact(fn func()) {
	txn := c.BeginTransaction()
	defer txn.Finish()
	fn()
}

// Validate runs the graph's debug invariant checker (live successors,
// level monotonicity). Intended for tests, not production call sites.
func (c *Context) Validate() error {
	return c.graph.Validate()
}
