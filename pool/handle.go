// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

// Handle owns one element drawn from a pool until it is released or
// detached. The zero Handle is empty.
//
// Go has no destructors; pair every non-empty Handle with a Release:
//
//	h := p.Pop()
//	if !h.Valid() {
//	    return
//	}
//	defer h.Release()
//	use(h.Get())
//
// A Handle is a single owner: copying it and releasing both copies releases
// the element twice, which panics.
type Handle[T any] struct {
	e  *Element[T]
	to releaser[T]
}

// Valid reports whether h holds an element.
func (h *Handle[T]) Valid() bool {
	return h != nil && h.e != nil
}

// Get returns the held value, or nil if h is empty.
func (h *Handle[T]) Get() *T {
	if !h.Valid() {
		return nil
	}
	return &h.e.Value
}

// Element returns the held element without giving up ownership.
func (h *Handle[T]) Element() *Element[T] {
	if h == nil {
		return nil
	}
	return h.e
}

// Release gives the element back to the pool it came from and empties h.
// Calling it on an empty Handle does nothing.
func (h *Handle[T]) Release() {
	if !h.Valid() {
		return
	}
	e, to := h.e, h.to
	h.e, h.to = nil, nil
	to.release(e)
}

// Detach empties h and returns its element. The caller becomes
// responsible for releasing it.
func (h *Handle[T]) Detach() *Element[T] {
	if h == nil {
		return nil
	}
	e := h.e
	h.e, h.to = nil, nil
	return e
}
