// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"

	"github.com/wsnk/concur"
	"github.com/wsnk/concur/internal/slab"
)

// ScmrRingPool is a ring-backed pool for one consumer and any number of
// releasers.
//
// The ring has exactly as many slots as the pool has elements. A releaser
// claims a slot with fetch-add on the release cursor and stores the element
// pointer; the consumer swaps the slot under its cursor with nil. Because
// elements are never created after Init, a releaser's slot has always been
// emptied by the consumer before it is claimed again.
type ScmrRingPool[T any] struct {
	_     cpu.CacheLinePad
	cnum  uint64 // consume cursor
	_     cpu.CacheLinePad
	rnum  atomix.Uint64 // release cursor
	_     cpu.CacheLinePad
	slots *slab.Slab[atomic.Pointer[Element[T]]]
}

// NewScmrRingPool creates a pool holding count elements built by newFn.
func NewScmrRingPool[T any](count int, newFn func() T) *ScmrRingPool[T] {
	p := new(ScmrRingPool[T])
	p.Init(count, newFn)
	return p
}

// Init allocates the ring and fills it with count elements. Must be called
// exactly once, before the pool is shared.
func (p *ScmrRingPool[T]) Init(count int, newFn func() T) {
	if p.slots != nil {
		violation("ScmrRingPool.Init", concur.ErrAlreadyInitialized)
	}
	slots, err := slab.New[atomic.Pointer[Element[T]]](count)
	if err != nil {
		violation("ScmrRingPool.Init", err)
	}
	for i := range count {
		e := newElement[T](p, build(newFn))
		e.state.StoreRelaxed(stateAvailable)
		slots.At(uint64(i)).Store(e)
	}
	p.slots = slots
	p.rnum.StoreRelaxed(uint64(count))
}

// Pop takes an element (consumer only). Returns nil if the slot under the
// consume cursor is empty.
func (p *ScmrRingPool[T]) Pop() *Element[T] {
	e := p.ring("ScmrRingPool.Pop").At(p.cnum).Swap(nil)
	if e == nil {
		return nil
	}
	p.cnum++
	e.checkOut()
	return e
}

// PopHandle is Pop wrapped in a Handle.
func (p *ScmrRingPool[T]) PopHandle() Handle[T] {
	e := p.Pop()
	if e == nil {
		return Handle[T]{}
	}
	return Handle[T]{e: e, to: p}
}

// Release returns e to the pool (any goroutine).
func (p *ScmrRingPool[T]) Release(e *Element[T]) {
	p.release(e)
}

func (p *ScmrRingPool[T]) release(e *Element[T]) {
	slots := p.ring("ScmrRingPool.Release")
	e.checkIn("ScmrRingPool.Release", p)
	slots.At(p.rnum.AddAcqRel(1) - 1).Store(e)
}

// Cap returns the number of elements the pool was created with.
func (p *ScmrRingPool[T]) Cap() int {
	if p.slots == nil {
		return 0
	}
	return p.slots.Len()
}

// Close pops every available element and calls fn on its value (consumer
// only). Returns the number of elements visited.
func (p *ScmrRingPool[T]) Close(fn func(*T)) int {
	return closeAll("ScmrRingPool", p.Pop, fn)
}

func (p *ScmrRingPool[T]) ring(op string) *slab.Slab[atomic.Pointer[Element[T]]] {
	if p.slots == nil {
		violation(op, concur.ErrNotInitialized)
	}
	return p.slots
}
