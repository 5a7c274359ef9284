// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/wsnk/concur/internal/slab"
)

// ScspPtrRing is a single-producer single-consumer ring of pointers.
//
// A slot holds nothing but an atomic pointer, nil meaning free. Push is a
// CAS from nil, Pop a swap with nil. The pointee is never copied: ownership
// moves from producer to consumer.
type ScspPtrRing[T any] struct {
	_     cpu.CacheLinePad
	head  uint64 // producer cursor
	_     cpu.CacheLinePad
	tail  uint64 // consumer cursor
	_     cpu.CacheLinePad
	slots *slab.Slab[atomic.Pointer[T]]
}

// NewScspPtrRing creates an initialized ScspPtrRing.
func NewScspPtrRing[T any](capacity int) *ScspPtrRing[T] {
	r := new(ScspPtrRing[T])
	r.Init(capacity)
	return r
}

// Init allocates capacity slots. It must be called exactly once.
func (r *ScspPtrRing[T]) Init(capacity int) {
	r.slots = initSlab[atomic.Pointer[T]]("ScspPtrRing.Init", r.slots, capacity)
}

// Push hands p to the consumer (producer only).
// Returns ErrWouldBlock if the ring is full, ErrNilElement if p is nil.
func (r *ScspPtrRing[T]) Push(p *T) error {
	if p == nil {
		return ErrNilElement
	}
	if !r.at(r.head).CompareAndSwap(nil, p) {
		return ErrWouldBlock
	}
	r.head++
	return nil
}

// Pop takes the next pointer (consumer only).
// Returns (nil, ErrWouldBlock) if the ring is empty.
func (r *ScspPtrRing[T]) Pop() (*T, error) {
	p := r.at(r.tail).Swap(nil)
	if p == nil {
		return nil, ErrWouldBlock
	}
	r.tail++
	return p, nil
}

// Cap returns the ring capacity.
func (r *ScspPtrRing[T]) Cap() int {
	if r.slots == nil {
		return 0
	}
	return r.slots.Len()
}

func (r *ScspPtrRing[T]) at(i uint64) *atomic.Pointer[T] {
	if r.slots == nil {
		violation("ScspPtrRing", ErrNotInitialized)
	}
	return r.slots.At(i)
}
