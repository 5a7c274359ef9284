// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import (
	"sync"

	"github.com/wsnk/concur"
	"github.com/wsnk/concur/internal/reap"
	"github.com/wsnk/concur/internal/slab"
)

// PtrRingPool is a mutex-guarded ring of caller-owned pointers. Any
// goroutine may take and release.
//
// The pool starts empty after Alloc; callers stock it with Release.
type PtrRingPool[T any] struct {
	mu    sync.Mutex
	slots *slab.Slab[*T]
	head  uint64 // next slot to fill
	tail  uint64 // next slot to take
}

// NewPtrRingPool creates an empty pool with room for size pointers.
func NewPtrRingPool[T any](size int) *PtrRingPool[T] {
	p := new(PtrRingPool[T])
	p.Alloc(size)
	return p
}

// Alloc allocates room for size pointers. Must be called exactly once.
func (p *PtrRingPool[T]) Alloc(size int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.slots != nil {
		violation("PtrRingPool.Alloc", concur.ErrAlreadyInitialized)
	}
	slots, err := slab.New[*T](size)
	if err != nil {
		violation("PtrRingPool.Alloc", err)
	}
	p.slots = slots
}

// Take removes and returns the oldest pointer, or nil if the pool is empty.
func (p *PtrRingPool[T]) Take() *T {
	p.mu.Lock()
	defer p.mu.Unlock()
	slot := p.ring("PtrRingPool.Take").At(p.tail)
	v := *slot
	if v != nil {
		*slot = nil
		p.tail++
	}
	return v
}

// Release stores ptr. Returns ErrWouldBlock if the pool is full and
// ErrNilElement if ptr is nil.
func (p *PtrRingPool[T]) Release(ptr *T) error {
	if ptr == nil {
		return concur.ErrNilElement
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	slot := p.ring("PtrRingPool.Release").At(p.head)
	if *slot != nil {
		return concur.ErrWouldBlock
	}
	*slot = ptr
	p.head++
	return nil
}

// Len returns the number of stored pointers.
func (p *PtrRingPool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(p.head - p.tail)
}

// Close takes every stored pointer and calls fn on it. Panics in fn are
// recovered and logged. Returns the number of pointers visited.
func (p *PtrRingPool[T]) Close(fn func(*T)) int {
	n := 0
	for v := p.Take(); v != nil; v = p.Take() {
		reap.Call("PtrRingPool", fn, v)
		n++
	}
	return n
}

func (p *PtrRingPool[T]) ring(op string) *slab.Slab[*T] {
	if p.slots == nil {
		violation(op, concur.ErrNotInitialized)
	}
	return p.slots
}
