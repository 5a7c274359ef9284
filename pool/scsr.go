// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import (
	"golang.org/x/sys/cpu"

	"github.com/wsnk/concur"
)

// ScsrPool is a pool for one consumer and one releaser.
//
// Available elements form a chain from tail (consumer end) to head
// (releaser end). Pop swaps tail's link with nil and, on success, hands out
// the old tail and makes its successor the new tail. The last element of the
// chain therefore always stays behind as a placeholder; Init allocates one
// extra element so that exactly count are poppable.
//
// Release is a plain store into head's link; the consumer acquires it
// through the swap.
type ScsrPool[T any] struct {
	_     cpu.CacheLinePad
	tail  *Element[T] // consumer only
	_     cpu.CacheLinePad
	head  *Element[T] // releaser only
	_     cpu.CacheLinePad
	owner releaser[T]
}

// NewScsrPool creates a pool holding count elements built by newFn.
func NewScsrPool[T any](count int, newFn func() T) *ScsrPool[T] {
	p := new(ScsrPool[T])
	p.Init(count, newFn)
	return p
}

// Init fills the pool with count elements built by newFn. A nil newFn
// yields zero values. Init must be called exactly once.
func (p *ScsrPool[T]) Init(count int, newFn func() T) {
	p.init("ScsrPool.Init", p, count, newFn)
}

func (p *ScsrPool[T]) init(op string, owner releaser[T], count int, newFn func() T) {
	if p.tail != nil {
		violation(op, concur.ErrAlreadyInitialized)
	}
	if count < 0 {
		violation(op, concur.ErrExhausted)
	}
	p.owner = owner
	p.tail = newElement(owner, build(newFn))
	p.tail.state.StoreRelaxed(stateAvailable)
	p.head = p.tail
	for range count {
		e := newElement(owner, build(newFn))
		e.state.StoreRelaxed(stateAvailable)
		p.link(e)
	}
}

// Pop takes an element (consumer only). It returns nil if none is left.
func (p *ScsrPool[T]) Pop() *Element[T] {
	if p.tail == nil {
		violation("ScsrPool.Pop", concur.ErrNotInitialized)
	}
	next := p.tail.next.Swap(nil)
	if next == nil {
		return nil
	}
	e := p.tail
	p.tail = next
	e.checkOut()
	return e
}

// PopHandle takes an element wrapped in a Handle that releases it back
// into p. The Handle is empty if the pool is.
func (p *ScsrPool[T]) PopHandle() Handle[T] {
	e := p.Pop()
	if e == nil {
		return Handle[T]{}
	}
	return Handle[T]{e: e, to: p}
}

// Release returns e to the pool (releaser only).
func (p *ScsrPool[T]) Release(e *Element[T]) {
	p.release(e)
}

func (p *ScsrPool[T]) release(e *Element[T]) {
	if p.head == nil {
		violation("ScsrPool.Release", concur.ErrNotInitialized)
	}
	e.checkIn("ScsrPool.Release", p.owner)
	p.link(e)
}

func (p *ScsrPool[T]) link(e *Element[T]) {
	p.head.next.Store(e)
	p.head = e
}

// Close pops every available element and calls fn on its value (consumer
// only). Panics in fn are recovered and logged. Returns the number of
// elements visited.
func (p *ScsrPool[T]) Close(fn func(*T)) int {
	return closeAll("ScsrPool", p.Pop, fn)
}

func build[T any](newFn func() T) T {
	if newFn == nil {
		var zero T
		return zero
	}
	return newFn()
}
