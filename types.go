// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

// Ring is the combined producer-consumer interface for a bounded ring.
//
// Ring provides non-blocking Push and Pop. Both return ErrWouldBlock when
// they cannot proceed (ring full or empty).
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
// Lock-guarded variants expose an exact Len on the concrete type.
//
// Example:
//
//	r := concur.NewScmpRing[int](1024)
//
//	v := 42
//	if err := r.Push(&v); err != nil {
//	    // ring full
//	}
//
//	elem, err := r.Pop()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Ring[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Queue is the combined producer-consumer interface for queues without a
// fixed capacity.
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
}

// Producer is the interface for pushing elements.
//
// The element is passed by pointer to avoid copying large structs. The ring
// stores a copy of the pointed-to value; on failure the value is untouched.
type Producer[T any] interface {
	// Push adds an element (non-blocking).
	// Returns nil on success, ErrWouldBlock if the ring is full and
	// ErrNilElement if elem is nil.
	//
	// Thread safety depends on the ring:
	//   - ScspRing, ScspPtrRing: single producer only
	//   - ScmpRing, ScmpQueue: multiple producers safe
	//   - Locked/Condvar containers: any goroutine
	Push(elem *T) error
}

// Consumer is the interface for popping elements.
//
// The element is returned by value and the slot it occupied is cleared so
// the ring does not retain references.
type Consumer[T any] interface {
	// Pop removes and returns the oldest observable element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if nothing can be popped.
	Pop() (T, error)
}

// List is the interface of the unbounded reclaiming lists.
//
// Produce never fails; memory is bounded by the number of unconsumed
// elements because each Produce reclaims the nodes consumers have passed.
type List[T any] interface {
	// Produce appends a copy of *elem. elem must not be nil.
	Produce(elem *T)

	// Emplace appends an element initialized in place by init.
	Emplace(init func(*T))

	// Consume removes the oldest element.
	// Returns (zero-value, ErrWouldBlock) if the list is empty.
	Consume() (T, error)

	// Drain consumes every remaining element, calling fn once per element.
	// Returns the number of elements drained.
	Drain(fn func(T)) int
}

// Grabbable is a lock-guarded container that can be held across several
// operations with Grab.
type Grabbable[T any] interface {
	Grab() *Grab[T]
}
