package reactive

import "github.com/purpleidea/dagflow/pgraph"

// ObserverControl is the value an observer callback returns to tell the
// engine whether to keep observing.
type ObserverControl int

const (
	// ObserveNext keeps the observer attached.
	ObserveNext ObserverControl = iota
	// ObserveStopAndDetach requests that the observer be detached once
	// the current turn's finalize phase completes.
	ObserveStopAndDetach
)

// NotifyMode controls whether a signal observer fires once immediately at
// attach time. The zero value, SkipCurrent, matches §4.8's stated default.
type NotifyMode int

const (
	// SkipCurrent waits for the first change before firing. Default.
	SkipCurrent NotifyMode = iota
	// NotifyCurrent fires once at attach time with the subject's value
	// as it stands then, in addition to firing on every later change.
	NotifyCurrent
)

// observerImpl is the package-private contract every concrete observer
// node satisfies, letting the public Observer handle stay non-generic even
// though the node underneath is parameterized by its subject's type.
type observerImpl interface {
	pgraph.Node
	requestDetach()
}

// Observer is the user-facing, non-generic handle for any observer,
// regardless of whether its subject is a signal or an event stream.
type Observer struct {
	impl observerImpl
}

// Stop detaches the observer immediately. Forbidden mid-callback; an
// observer that wants to detach itself from inside its own callback must
// return ObserveStopAndDetach instead, which defers the detach safely.
func (o Observer) Stop() { o.impl.requestDetach() }

type signalObserverNode[S any] struct {
	Base
	subject  SignalReader[S]
	callback func(S) ObserverControl
	detached bool
}

// ObserveSignal attaches an observer to a signal. mode selects whether the
// callback also fires once immediately, at attach time, with the signal's
// current value.
func ObserveSignal[S any](ctx *Context, subject Signal[S], mode NotifyMode, callback func(S) ObserverControl) Observer {
	n := &signalObserverNode[S]{subject: subject.Reader(), callback: callback}
	n.Register(ctx, n)
	n.AttachTo(subject.SlotID())
	if mode == NotifyCurrent {
		if callback(n.subject.Current()) == ObserveStopAndDetach {
			n.detach()
		}
	}
	return Observer{impl: n}
}

func (n *signalObserverNode[S]) Update() pgraph.UpdateResult {
	if n.detached {
		return pgraph.Unchanged
	}
	if n.callback(n.subject.Current()) == ObserveStopAndDetach {
		n.ctx.graph.DeferDetach(n.detach)
	}
	return pgraph.Unchanged
}

func (n *signalObserverNode[S]) Finalize() {}

func (n *signalObserverNode[S]) requestDetach() {
	n.ctx.graph.AssertNotInCallback("Observer.Stop")
	n.detach()
}

func (n *signalObserverNode[S]) detach() {
	if n.detached {
		return
	}
	n.detached = true
	n.DetachAll()
	n.subject = nil
}

type eventsObserverNode[E any] struct {
	Base
	subject  EventsReader[E]
	callback func([]E) ObserverControl
	detached bool
}

// ObserveEvents attaches an observer to an event stream. The callback
// receives the whole turn's event range in one call, per §4.8.
func ObserveEvents[E any](ctx *Context, subject Events[E], callback func([]E) ObserverControl) Observer {
	n := &eventsObserverNode[E]{subject: subject.Reader(), callback: callback}
	n.Register(ctx, n)
	n.AttachTo(subject.SlotID())
	return Observer{impl: n}
}

func (n *eventsObserverNode[E]) Update() pgraph.UpdateResult {
	if n.detached {
		return pgraph.Unchanged
	}
	if n.callback(n.subject.Current()) == ObserveStopAndDetach {
		n.ctx.graph.DeferDetach(n.detach)
	}
	return pgraph.Unchanged
}

func (n *eventsObserverNode[E]) Finalize() {}

func (n *eventsObserverNode[E]) requestDetach() {
	n.ctx.graph.AssertNotInCallback("Observer.Stop")
	n.detach()
}

func (n *eventsObserverNode[E]) detach() {
	if n.detached {
		return
	}
	n.detached = true
	n.DetachAll()
	n.subject = nil
}
