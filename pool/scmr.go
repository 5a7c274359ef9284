// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"

	"github.com/wsnk/concur"
)

// ScmrPool is a pool for one consumer and any number of releasers.
//
// Releasers publish with the same tear/bind pair as concur.ScmpQueue: swap
// the shared head for the element, then store it into the old head's link.
// The consumer keeps a placeholder at tail. Pop moves the value of the
// placeholder's successor into the placeholder, hands the placeholder out
// and keeps the successor as the new placeholder, so the element a caller
// receives is not necessarily the one that was released.
//
// As with the queue, a releaser stalled between its two steps hides the
// elements released after it; Pop reports an empty pool meanwhile.
type ScmrPool[T any] struct {
	_       cpu.CacheLinePad
	tail    *Element[T] // placeholder, consumer only
	_       cpu.CacheLinePad
	head    atomic.Pointer[Element[T]]
	_       cpu.CacheLinePad
	created atomix.Int64
	home    releaser[T]
}

// NewScmrPool creates a pool holding count elements built by newFn.
func NewScmrPool[T any](count int, newFn func() T) *ScmrPool[T] {
	p := new(ScmrPool[T])
	p.Init(count, newFn)
	return p
}

// Init fills the pool with count elements built by newFn. Must be called
// exactly once, before the pool is shared.
func (p *ScmrPool[T]) Init(count int, newFn func() T) {
	p.init("ScmrPool.Init", p, count, newFn)
}

func (p *ScmrPool[T]) init(op string, owner releaser[T], count int, newFn func() T) {
	if p.tail != nil {
		violation(op, concur.ErrAlreadyInitialized)
	}
	if count < 0 {
		violation(op, concur.ErrExhausted)
	}
	p.home = owner
	p.tail = newElement[T](owner, *new(T))
	p.tail.state.StoreRelaxed(stateSentinel)
	p.head.Store(p.tail)
	for range count {
		e := newElement(owner, build(newFn))
		e.state.StoreRelaxed(stateAvailable)
		p.link(e)
	}
	p.created.StoreRelaxed(int64(count))
}

// Pop takes an element (consumer only). Returns nil if none is visible.
func (p *ScmrPool[T]) Pop() *Element[T] {
	if p.tail == nil {
		violation("ScmrPool.Pop", concur.ErrNotInitialized)
	}
	next := p.tail.next.Swap(nil)
	if next == nil {
		return nil
	}
	e := p.tail
	p.tail = next

	e.Value = next.Value
	var zero T
	next.Value = zero
	next.state.StoreRelease(stateSentinel)
	e.checkOut()
	return e
}

// PopHandle is Pop wrapped in a Handle.
func (p *ScmrPool[T]) PopHandle() Handle[T] {
	e := p.Pop()
	if e == nil {
		return Handle[T]{}
	}
	return Handle[T]{e: e, to: p}
}

// Create builds a new element owned by the pool and hands it out at once.
// Releasing it grows the pool by one.
func (p *ScmrPool[T]) Create(v T) Handle[T] {
	if p.tail == nil {
		violation("ScmrPool.Create", concur.ErrNotInitialized)
	}
	e := newElement(p.home, v)
	p.created.AddAcqRel(1)
	return Handle[T]{e: e, to: p}
}

// Created returns how many elements the pool owns, in the pool or out.
func (p *ScmrPool[T]) Created() int {
	return int(p.created.LoadRelaxed())
}

// Release returns e to the pool (any goroutine).
func (p *ScmrPool[T]) Release(e *Element[T]) {
	p.release(e)
}

func (p *ScmrPool[T]) release(e *Element[T]) {
	if p.home == nil {
		violation("ScmrPool.Release", concur.ErrNotInitialized)
	}
	e.checkIn("ScmrPool.Release", p.home)
	p.link(e)
}

func (p *ScmrPool[T]) link(e *Element[T]) {
	prev := p.head.Swap(e) // tear
	prev.next.Store(e)     // bind
}

// Close pops every visible element and calls fn on its value (consumer
// only). Returns the number of elements visited.
func (p *ScmrPool[T]) Close(fn func(*T)) int {
	return closeAll("ScmrPool", p.Pop, fn)
}
