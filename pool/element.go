// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"

	"github.com/wsnk/concur"
	"github.com/wsnk/concur/internal/reap"
)

// Element states.
const (
	stateHeld      uint64 = iota // outside the pool
	stateAvailable               // linked into the pool, waiting for Pop
	stateSentinel                // linked into the pool as its placeholder
)

// Element is a pooled value together with the bookkeeping its pool needs.
// Only Value is meant for the holder.
type Element[T any] struct {
	Value T

	next  atomic.Pointer[Element[T]]
	state atomix.Uint64
	home  releaser[T]
}

// Release returns e to the pool that created it. Releasing an element that
// is already back in its pool panics with concur.ErrDoubleRelease.
//
// ScmrOctopusPool elements carry no implicit shard; release them with
// ScmrOctopusPool.Release.
func (e *Element[T]) Release() {
	if e == nil || e.home == nil {
		violation("Element.Release", concur.ErrForeignElement)
	}
	e.home.release(e)
}

// releaser takes an element back. The dynamic value doubles as the owner
// token stored in Element.home.
type releaser[T any] interface {
	release(e *Element[T])
}

func newElement[T any](home releaser[T], v T) *Element[T] {
	return &Element[T]{Value: v, home: home}
}

// checkOut marks e as held.
func (e *Element[T]) checkOut() {
	e.state.StoreRelease(stateHeld)
}

// checkIn validates and marks e as available before it is linked back.
func (e *Element[T]) checkIn(op string, owner releaser[T]) {
	if e == nil || e.home != owner {
		violation(op, concur.ErrForeignElement)
	}
	if !e.state.CompareAndSwapAcqRel(stateHeld, stateAvailable) {
		violation(op, concur.ErrDoubleRelease)
	}
	e.next.Store(nil)
}

func violation(op string, err error) {
	panic(&concur.ContractError{Op: op, Err: err})
}

// closeAll pops every available element and hands its value to fn.
func closeAll[T any](owner string, pop func() *Element[T], fn func(*T)) int {
	n := 0
	for e := pop(); e != nil; e = pop() {
		reap.Call(owner, fn, &e.Value)
		n++
	}
	return n
}
