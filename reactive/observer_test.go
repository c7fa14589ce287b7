package reactive

import "testing"

func TestObserveSignalSkipCurrentDoesNotFireAtAttach(t *testing.T) {
	ctx := NewContext("t")
	v := NewVar[int](ctx, 1)

	calls := 0
	ObserveSignal[int](ctx, v.Signal(), SkipCurrent, func(int) ObserverControl {
		calls++
		return ObserveNext
	})

	if calls != 0 {
		t.Fatalf("SkipCurrent fired at attach time: calls = %d, want 0", calls)
	}

	v.Set(2)
	if calls != 1 {
		t.Fatalf("calls after Set = %d, want 1", calls)
	}
}

func TestObserveSignalNotifyCurrentFiresAtAttach(t *testing.T) {
	ctx := NewContext("t")
	v := NewVar[int](ctx, 7)

	var seen []int
	ObserveSignal[int](ctx, v.Signal(), NotifyCurrent, func(val int) ObserverControl {
		seen = append(seen, val)
		return ObserveNext
	})

	if len(seen) != 1 || seen[0] != 7 {
		t.Fatalf("seen = %v, want [7] immediately at attach", seen)
	}

	v.Set(8)
	if len(seen) != 2 || seen[1] != 8 {
		t.Fatalf("seen = %v, want [7 8] after Set", seen)
	}
}

func TestObserverStopDetachesImmediately(t *testing.T) {
	ctx := NewContext("t")
	v := NewVar[int](ctx, 1)

	calls := 0
	obs := ObserveSignal[int](ctx, v.Signal(), SkipCurrent, func(int) ObserverControl {
		calls++
		return ObserveNext
	})

	obs.Stop()
	v.Set(2)

	if calls != 0 {
		t.Fatalf("calls after Stop = %d, want 0", calls)
	}
}

func TestObserverStopPanicsFromInsideCallback(t *testing.T) {
	ctx := NewContext("t")
	v := NewVar[int](ctx, 1)

	var obs Observer
	panicked := false
	obs = ObserveSignal[int](ctx, v.Signal(), SkipCurrent, func(int) ObserverControl {
		func() {
			defer func() {
				if recover() != nil {
					panicked = true
				}
			}()
			obs.Stop()
		}()
		return ObserveNext
	})

	v.Set(2)

	if !panicked {
		t.Fatalf("Observer.Stop called from inside a callback did not panic")
	}
}

func TestObserverSelfDetachViaObserveStopAndDetach(t *testing.T) {
	ctx := NewContext("t")
	src := NewEventSource[int](ctx)

	var received []int
	ObserveEvents[int](ctx, src.Events(), func(batch []int) ObserverControl {
		for _, v := range batch {
			received = append(received, v)
			if v == -1 {
				return ObserveStopAndDetach
			}
		}
		return ObserveNext
	})

	src.Emit(1)
	src.Emit(2)
	src.Emit(3)
	src.Emit(-1)
	src.Emit(4)
	src.Emit(5)

	want := []int{1, 2, 3, -1}
	if len(received) != len(want) {
		t.Fatalf("received = %v, want %v", received, want)
	}
	for i := range want {
		if received[i] != want[i] {
			t.Fatalf("received = %v, want %v", received, want)
		}
	}
}
