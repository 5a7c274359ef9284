// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

// Grab holds the lock of a lock-guarded container so that several Push,
// Pop and Len calls pay for one lock/unlock pair.
//
//	g := q.Grab()
//	defer g.Release()
//	for g.Len() > 0 {
//	    v, _ := g.Pop()
//	    ...
//	}
//
// A Grab is not safe for concurrent use and must not outlive the goroutine
// that took it. Calling the container's own methods while holding a Grab
// on it deadlocks.
type Grab[T any] struct {
	g      *guarded[T]
	pushed bool
}

// Valid reports whether the grab still holds the lock.
func (gr *Grab[T]) Valid() bool {
	return gr != nil && gr.g != nil
}

// Push adds a copy of *elem under the held lock.
func (gr *Grab[T]) Push(elem *T) error {
	g := gr.held("Grab.Push")
	if elem == nil {
		return ErrNilElement
	}
	if !g.s.put(elem) {
		return ErrWouldBlock
	}
	gr.pushed = true
	return nil
}

// Pop removes the oldest element under the held lock.
func (gr *Grab[T]) Pop() (T, error) {
	g := gr.held("Grab.Pop")
	elem, ok := g.s.get()
	if !ok {
		return elem, ErrWouldBlock
	}
	return elem, nil
}

// Len returns the number of stored elements.
func (gr *Grab[T]) Len() int {
	return gr.held("Grab.Len").s.length()
}

// Release unlocks the container. Calling it again is a no-op.
func (gr *Grab[T]) Release() {
	if !gr.Valid() {
		return
	}
	g := gr.g
	gr.g = nil
	more := g.s.length() > 0
	g.mu.Unlock()
	if gr.pushed || more {
		g.signal()
	}
}

func (gr *Grab[T]) held(op string) *guarded[T] {
	if !gr.Valid() {
		violation(op, ErrGrabReleased)
	}
	return gr.g
}
