// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"

	"github.com/wsnk/concur/internal/slab"
)

const (
	slotFree  uint64 = 0
	slotReady uint64 = 1
)

// ScmpRing is a single-consumer multi-producer bounded ring.
//
// Producers first take a unit from a shared capacity counter. A decrement
// that drives the counter negative is undone and reported as ErrWouldBlock;
// otherwise the producer owns a unique index from fetch-add on the write
// cursor, writes the slot unconditionally and marks it READY.
//
// The consumer only looks at the slot under its own cursor and advances after
// a successful READY→FREE CAS. A producer that claimed a slot but has not
// marked it yet therefore hides every later slot until it does. No ordering
// is guaranteed between racing producers.
//
// The counter never exceeds the number of free slots: a failed claim only
// ever subtracts before it adds back, so it can make a concurrent claim fail
// spuriously but never succeed wrongly.
type ScmpRing[T any] struct {
	_      cpu.CacheLinePad
	avail  atomix.Int64 // free slots not yet claimed
	_      cpu.CacheLinePad
	head   atomix.Uint64 // write cursor (FAA)
	_      cpu.CacheLinePad
	tail   uint64 // read cursor (consumer only)
	_      cpu.CacheLinePad
	slots  *slab.Slab[scmpSlot[T]]
	length int64
}

type scmpSlot[T any] struct {
	state atomix.Uint64
	data  T
}

// NewScmpRing creates an initialized ScmpRing.
func NewScmpRing[T any](capacity int) *ScmpRing[T] {
	r := new(ScmpRing[T])
	r.Init(capacity)
	return r
}

// Init allocates capacity slots. It must be called exactly once.
func (r *ScmpRing[T]) Init(capacity int) {
	r.slots = initSlab[scmpSlot[T]]("ScmpRing.Init", r.slots, capacity)
	r.length = int64(capacity)
	r.avail.StoreRelaxed(int64(capacity))
}

// Push adds an element (multiple producers safe).
// Returns ErrWouldBlock if the ring is full, ErrNilElement if elem is nil.
func (r *ScmpRing[T]) Push(elem *T) error {
	if r.slots == nil {
		violation("ScmpRing.Push", ErrNotInitialized)
	}
	if elem == nil {
		return ErrNilElement
	}
	if r.avail.AddAcqRel(-1) < 0 {
		r.avail.AddAcqRel(1)
		return ErrWouldBlock
	}

	s := r.slots.At(r.head.AddAcqRel(1) - 1)
	s.data = *elem
	s.state.StoreRelease(slotReady)
	return nil
}

// Pop removes and returns the element at the read cursor (single consumer).
// Returns (zero-value, ErrWouldBlock) if that slot is not READY yet, even
// when later slots are.
func (r *ScmpRing[T]) Pop() (T, error) {
	if r.slots == nil {
		violation("ScmpRing.Pop", ErrNotInitialized)
	}
	s := r.slots.At(r.tail)
	if !s.state.CompareAndSwapAcqRel(slotReady, slotFree) {
		var zero T
		return zero, ErrWouldBlock
	}
	elem := s.data
	var zero T
	s.data = zero
	r.tail++
	r.avail.AddAcqRel(1)
	return elem, nil
}

// Len returns a best-effort count of claimed slots.
func (r *ScmpRing[T]) Len() int {
	n := r.length - r.avail.LoadRelaxed()
	switch {
	case n < 0:
		return 0
	case n > r.length:
		return int(r.length)
	}
	return int(n)
}

// Cap returns the ring capacity.
func (r *ScmpRing[T]) Cap() int {
	return int(r.length)
}
