package pgraph

import "testing"

func TestSlotMapInsertErase(t *testing.T) {
	m := NewSlotMap()
	a := m.Insert(Meta{Level: 1})
	b := m.Insert(Meta{Level: 2})
	c := m.Insert(Meta{Level: 3})

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	if m.At(a).Level != 1 || m.At(b).Level != 2 || m.At(c).Level != 3 {
		t.Fatalf("unexpected metadata after insert")
	}

	m.Erase(b)
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 after erase", m.Len())
	}

	d := m.Insert(Meta{Level: 4})
	if d != b {
		t.Fatalf("Insert() = %d, want reuse of erased slot %d", d, b)
	}
}

func TestSlotMapGrowsGeometrically(t *testing.T) {
	m := NewSlotMap()
	ids := make([]SlotID, 0, 20)
	for i := 0; i < 20; i++ {
		ids = append(ids, m.Insert(Meta{Level: i}))
	}
	for i, id := range ids {
		if m.At(id).Level != i {
			t.Fatalf("slot %d: Level = %d, want %d", id, m.At(id).Level, i)
		}
	}
}

func TestSlotMapShakesTrailingFreeSlots(t *testing.T) {
	m := NewSlotMap()
	a := m.Insert(Meta{})
	b := m.Insert(Meta{})
	c := m.Insert(Meta{})

	m.Erase(b)
	m.Erase(c)
	// Both b and c sat at or near the tail; erasing c (the true tail)
	// should shake b's free entry off too since nothing lives after it.
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}

	next := m.Insert(Meta{Level: 9})
	if next != b {
		t.Fatalf("Insert() = %d, want compacted reuse at %d", next, b)
	}
	_ = a
}

func TestSlotMapAccessPanicsOnErasedSlot(t *testing.T) {
	m := NewSlotMap()
	id := m.Insert(Meta{})
	m.Erase(id)

	defer func() {
		if recover() == nil {
			t.Fatalf("At() on an erased slot did not panic")
		}
	}()
	m.At(id)
}

func TestSlotMapAccessPanicsOutOfRange(t *testing.T) {
	m := NewSlotMap()
	defer func() {
		if recover() == nil {
			t.Fatalf("At() out of range did not panic")
		}
	}()
	m.At(42)
}
