// Package pqueue implements an indexed binary heap whose elements are told
// their own position on every internal move, the way lvlath's (other_examples)
// dstarlite priorityqueue.go keeps a State→index lookup map in step with
// container/heap's Swap/Push/Pop — except here the position is pushed to the
// element itself (a notifyPosition callback) rather than kept in a side map,
// so callers of greedy/murraychu can cache their own slot and issue O(log n)
// Update/Remove calls without a second lookup.
package pqueue

import "container/heap"

// Indexed is implemented by any value placed into a Heap. NotifyPosition is
// invoked by the heap whenever the element's slot changes (insert, sift,
// swap, removal — in which case the new position is -1), so the caller can
// cache its current index for later Update/Remove calls.
type Indexed interface {
	NotifyPosition(i int)
}

type entry struct {
	key   Indexed
	value float64
}

// Heap is an indexed max-heap over (Indexed, float64) pairs: Peek and PopMax
// return the entry with the largest value. The backing slice grows
// geometrically via append and is never shrunk back down.
type Heap struct {
	entries []entry
}

// New returns an empty max-heap.
func New() *Heap {
	return &Heap{}
}

// Len reports the number of elements currently stored.
//
// Complexity: O(1).
func (h *Heap) Len() int { return len(h.entries) }

// Less implements container/heap.Interface (max-heap: larger value is "less").
func (h *Heap) Less(i, j int) bool { return h.entries[i].value > h.entries[j].value }

// Swap implements container/heap.Interface and notifies both moved elements.
func (h *Heap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.entries[i].key.NotifyPosition(i)
	h.entries[j].key.NotifyPosition(j)
}

// Push implements container/heap.Interface. Use Insert, not this method, directly.
func (h *Heap) Push(x any) {
	e := x.(entry)
	h.entries = append(h.entries, e)
	e.key.NotifyPosition(len(h.entries) - 1)
}

// Pop implements container/heap.Interface. Use Remove/PopMax, not this method, directly.
func (h *Heap) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	e.key.NotifyPosition(-1)
	return e
}

// Insert adds key with the given value.
//
// Complexity: O(log n).
func (h *Heap) Insert(key Indexed, value float64) {
	heap.Push(h, entry{key: key, value: value})
}

// Remove deletes the element currently at index i (as reported to it via
// NotifyPosition).
//
// Complexity: O(log n).
func (h *Heap) Remove(i int) {
	heap.Remove(h, i)
}

// Update changes the value of the element at index i and restores heap
// order. This is the decrease-/increase-key operation.
//
// Complexity: O(log n).
func (h *Heap) Update(i int, newValue float64) {
	h.entries[i].value = newValue
	heap.Fix(h, i)
}

// Peek returns the maximum-value element without removing it.
//
// Complexity: O(1).
func (h *Heap) Peek() (Indexed, float64, bool) {
	if len(h.entries) == 0 {
		return nil, 0, false
	}
	return h.entries[0].key, h.entries[0].value, true
}

// PopMax removes and returns the maximum-value element.
//
// Complexity: O(log n).
func (h *Heap) PopMax() (Indexed, float64, bool) {
	if len(h.entries) == 0 {
		return nil, 0, false
	}
	e := heap.Pop(h).(entry)
	return e.key, e.value, true
}

// MinHeap delegates to Heap by negating stored values, per the sibling
// min-heap described alongside the max-heap: a single implementation
// backs both orderings.
type MinHeap struct {
	h *Heap
}

// NewMin returns an empty min-heap.
func NewMin() *MinHeap {
	return &MinHeap{h: New()}
}

// Len reports the number of elements currently stored.
func (m *MinHeap) Len() int { return m.h.Len() }

// Insert adds key with the given value.
//
// Complexity: O(log n).
func (m *MinHeap) Insert(key Indexed, value float64) {
	m.h.Insert(key, -value)
}

// Remove deletes the element currently at index i.
//
// Complexity: O(log n).
func (m *MinHeap) Remove(i int) {
	m.h.Remove(i)
}

// Update changes the value of the element at index i.
//
// Complexity: O(log n).
func (m *MinHeap) Update(i int, newValue float64) {
	m.h.Update(i, -newValue)
}

// Peek returns the minimum-value element without removing it.
func (m *MinHeap) Peek() (Indexed, float64, bool) {
	k, v, ok := m.h.Peek()
	return k, -v, ok
}

// PopMin removes and returns the minimum-value element.
//
// Complexity: O(log n).
func (m *MinHeap) PopMin() (Indexed, float64, bool) {
	k, v, ok := m.h.PopMax()
	return k, -v, ok
}
