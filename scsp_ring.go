// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"

	"github.com/wsnk/concur/internal/slab"
)

// ScspRing is a single-producer single-consumer bounded ring.
//
// Every slot carries its own "has data" flag. The producer only looks at the
// slot under its cursor: acquire-load the flag, write, release-store true.
// The consumer mirrors that with false. No counter is shared between the two
// roles; capacity is enforced by the flags alone.
//
// Strict FIFO.
type ScspRing[T any] struct {
	_     cpu.CacheLinePad
	head  uint64 // producer cursor
	_     cpu.CacheLinePad
	tail  uint64 // consumer cursor
	_     cpu.CacheLinePad
	slots *slab.Slab[scspSlot[T]]
}

type scspSlot[T any] struct {
	full atomix.Bool
	data T
}

// NewScspRing creates an initialized ScspRing with exactly capacity slots.
func NewScspRing[T any](capacity int) *ScspRing[T] {
	r := new(ScspRing[T])
	r.Init(capacity)
	return r
}

// Init allocates capacity slots. It must be called exactly once, before the
// ring is shared.
func (r *ScspRing[T]) Init(capacity int) {
	r.slots = initSlab[scspSlot[T]]("ScspRing.Init", r.slots, capacity)
}

// Push adds an element (producer only).
// Returns ErrWouldBlock if the ring is full, ErrNilElement if elem is nil.
func (r *ScspRing[T]) Push(elem *T) error {
	if elem == nil {
		return ErrNilElement
	}
	s := r.at(r.head)
	if s.full.LoadAcquire() {
		return ErrWouldBlock
	}
	s.data = *elem
	s.full.StoreRelease(true)
	r.head++
	return nil
}

// Pop removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the ring is empty.
func (r *ScspRing[T]) Pop() (T, error) {
	s := r.at(r.tail)
	if !s.full.LoadAcquire() {
		var zero T
		return zero, ErrWouldBlock
	}
	elem := s.data
	var zero T
	s.data = zero
	s.full.StoreRelease(false)
	r.tail++
	return elem, nil
}

// Cap returns the ring capacity.
func (r *ScspRing[T]) Cap() int {
	if r.slots == nil {
		return 0
	}
	return r.slots.Len()
}

func (r *ScspRing[T]) at(i uint64) *scspSlot[T] {
	if r.slots == nil {
		violation("ScspRing", ErrNotInitialized)
	}
	return r.slots.At(i)
}

// initSlab allocates the backing slab for a ring once.
func initSlab[S any](op string, cur *slab.Slab[S], capacity int) *slab.Slab[S] {
	if cur != nil {
		violation(op, ErrAlreadyInitialized)
	}
	s, err := slab.New[S](capacity)
	if err != nil {
		violation(op, err)
	}
	return s
}
