package ops

import (
	"reflect"
	"testing"

	"github.com/purpleidea/dagflow/reactive"
)

func TestTransformMapsEveryEvent(t *testing.T) {
	ctx := reactive.NewContext("t")
	src := reactive.NewEventSource[int](ctx)
	doubled := Transform[int, int](ctx, src.Events(), func(v int) int { return v * 2 })

	var received []int
	reactive.ObserveEvents[int](ctx, doubled, func(batch []int) reactive.ObserverControl {
		received = append(received, batch...)
		return reactive.ObserveNext
	})

	ctx.Transact(func() {
		src.Emit(1)
		src.Emit(2)
		src.Emit(3)
	})

	want := []int{2, 4, 6}
	if !reflect.DeepEqual(received, want) {
		t.Fatalf("received = %v, want %v", received, want)
	}
}

func TestTransformChangesType(t *testing.T) {
	ctx := reactive.NewContext("t")
	src := reactive.NewEventSource[int](ctx)
	labels := Transform[int, string](ctx, src.Events(), func(v int) string {
		if v%2 == 0 {
			return "even"
		}
		return "odd"
	})

	var received []string
	reactive.ObserveEvents[string](ctx, labels, func(batch []string) reactive.ObserverControl {
		received = append(received, batch...)
		return reactive.ObserveNext
	})

	src.Emit(1)
	src.Emit(2)

	want := []string{"odd", "even"}
	if !reflect.DeepEqual(received, want) {
		t.Fatalf("received = %v, want %v", received, want)
	}
}
