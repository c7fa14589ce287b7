// Package pgraph implements the reactive propagation engine's graph storage
// and scheduling primitives: a slot map of node metadata, a level-indexed
// topological queue, and the Graph façade that drives one turn of
// propagation across them.
package pgraph

import "fmt"

// SlotID is a stable, graph-scoped identity for a registered node. It is
// valid from Insert to Erase; once erased the same integer value may be
// handed out again for an unrelated node, so callers must never retain a
// SlotID past the lifetime of the node it names.
type SlotID int

const invalidSlot SlotID = -1

const initialCapacity = 8

// SlotMap is dense, stable-index storage for per-node metadata. It grows
// geometrically (initial capacity 8, doubling thereafter). Insert reuses
// the highest-numbered free slot whenever the free list is non-empty and
// only appends at the end when it is empty; it does not prefer the end of
// storage over freed slots.
type SlotMap struct {
	slots  []Meta
	used   []bool
	free   []SlotID // sorted ascending; Insert takes from the tail
	length int
}

// NewSlotMap returns an empty slot map with its initial capacity reserved.
func NewSlotMap() *SlotMap {
	return &SlotMap{
		slots: make([]Meta, 0, initialCapacity),
		used:  make([]bool, 0, initialCapacity),
	}
}

// Len returns the number of live (non-erased) slots.
func (m *SlotMap) Len() int { return m.length }

// Insert stores meta and returns its new, stable SlotID.
func (m *SlotMap) Insert(meta Meta) SlotID {
	if n := len(m.free); n > 0 {
		id := m.free[n-1]
		m.free = m.free[:n-1]
		m.slots[id] = meta
		m.used[id] = true
		m.length++
		return id
	}
	if len(m.slots) == cap(m.slots) && cap(m.slots) > 0 {
		m.grow()
	}
	id := SlotID(len(m.slots))
	m.slots = append(m.slots, meta)
	m.used = append(m.used, true)
	m.length++
	return id
}

func (m *SlotMap) grow() {
	newCap := cap(m.slots) * 2
	if newCap == 0 {
		newCap = initialCapacity
	}
	grown := make([]Meta, len(m.slots), newCap)
	copy(grown, m.slots)
	m.slots = grown
	grownUsed := make([]bool, len(m.used), newCap)
	copy(grownUsed, m.used)
	m.used = grownUsed
}

// Erase frees id. Accessing an erased or never-allocated id afterwards is a
// programming error and panics, matching the "assertion, not exception"
// convention for this component.
func (m *SlotMap) Erase(id SlotID) {
	m.mustBeLive(id)
	m.used[id] = false
	m.slots[id] = Meta{}
	m.length--

	if int(id) == len(m.slots)-1 {
		// Erasing the tail: shake trailing contiguous free slots off
		// the end instead of re-inserting id into the free list, so
		// storage stays compact rather than scattering reuse.
		m.slots = m.slots[:id]
		m.used = m.used[:id]
		for len(m.free) > 0 && m.free[len(m.free)-1] == SlotID(len(m.slots))-1 {
			tail := m.free[len(m.free)-1]
			m.free = m.free[:len(m.free)-1]
			m.slots = m.slots[:tail]
			m.used = m.used[:tail]
		}
		return
	}
	m.insertFree(id)
}

func (m *SlotMap) insertFree(id SlotID) {
	i := len(m.free)
	for i > 0 && m.free[i-1] > id {
		i--
	}
	m.free = append(m.free, invalidSlot)
	copy(m.free[i+1:], m.free[i:])
	m.free[i] = id
}

// At returns a pointer to id's metadata for in-place mutation. Panics if id
// is out of range or erased.
func (m *SlotMap) At(id SlotID) *Meta {
	m.mustBeLive(id)
	return &m.slots[id]
}

func (m *SlotMap) mustBeLive(id SlotID) {
	if id < 0 || int(id) >= len(m.used) || !m.used[id] {
		panic(fmt.Sprintf("pgraph: slot %d is not a live slot", id))
	}
}
