package ops

import (
	"testing"

	"github.com/purpleidea/dagflow/reactive"
)

func TestHoldKeepsTheLatestEvent(t *testing.T) {
	ctx := reactive.NewContext("t")
	src := reactive.NewEventSource[int](ctx)
	held := Hold[int](ctx, src.Events(), -1)

	if held.Value() != -1 {
		t.Fatalf("Value() before any event = %d, want -1 (initial)", held.Value())
	}

	src.Emit(5)
	if held.Value() != 5 {
		t.Fatalf("Value() = %d, want 5", held.Value())
	}

	ctx.Transact(func() {
		src.Emit(10)
		src.Emit(20)
	})
	if held.Value() != 20 {
		t.Fatalf("Value() = %d, want 20 (the last event of the turn)", held.Value())
	}
}

func TestHoldDoesNotNotifyOnQuietTurns(t *testing.T) {
	ctx := reactive.NewContext("t")
	src := reactive.NewEventSource[int](ctx)
	held := Hold[int](ctx, src.Events(), 0)

	calls := 0
	reactive.ObserveSignal[int](ctx, held, reactive.SkipCurrent, func(int) reactive.ObserverControl {
		calls++
		return reactive.ObserveNext
	})

	src.Emit(1)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	// Nothing emitted inside this transaction, so no input is pending and
	// no turn runs: held is not recomputed and must not re-notify.
	ctx.Transact(func() {})
	if calls != 1 {
		t.Fatalf("calls = %d, want still 1 after a quiet turn", calls)
	}
}
