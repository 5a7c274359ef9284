// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/wsnk/concur/internal/slab"
)

// Admission decides whether a lock-guarded queue accepts one more element
// given its current length. It is fixed at construction.
type Admission interface {
	Admit(length int) bool
}

type unbounded struct{}

func (unbounded) Admit(int) bool { return true }

type bounded int

func (b bounded) Admit(length int) bool { return length < int(b) }

// Unbounded admits every push.
func Unbounded() Admission { return unbounded{} }

// Bounded admits pushes while the queue holds fewer than limit elements.
func Bounded(limit int) Admission {
	if limit < 1 {
		panic("concur: limit must be >= 1")
	}
	return bounded(limit)
}

// store is the unsynchronized element storage behind a guarded container.
type store[T any] interface {
	put(elem *T) bool
	get() (T, bool)
	length() int
	reset()
}

// guarded is a store behind a single lock. When wake is set, producers
// signal it so blocking pops can sleep instead of spinning.
type guarded[T any] struct {
	mu   sync.Locker
	s    store[T]
	wake chan struct{}
}

func (g *guarded[T]) lock(op string) {
	if g.mu == nil || g.s == nil {
		violation(op, ErrNotInitialized)
	}
	g.mu.Lock()
}

func (g *guarded[T]) signal() {
	if g.wake == nil {
		return
	}
	select {
	case g.wake <- struct{}{}:
	default:
	}
}

// Push adds a copy of *elem.
// Returns ErrWouldBlock if the container is at its limit, ErrNilElement if
// elem is nil.
func (g *guarded[T]) Push(elem *T) error {
	if elem == nil {
		return ErrNilElement
	}
	g.lock("Push")
	ok := g.s.put(elem)
	g.mu.Unlock()
	if !ok {
		return ErrWouldBlock
	}
	g.signal()
	return nil
}

// Pop removes the oldest element.
// Returns (zero-value, ErrWouldBlock) if the container is empty.
func (g *guarded[T]) Pop() (T, error) {
	g.lock("Pop")
	elem, ok := g.s.get()
	more := g.s.length() > 0
	g.mu.Unlock()
	if !ok {
		return elem, ErrWouldBlock
	}
	if more {
		// Pass the wakeup on: one token may stand for several pushes.
		g.signal()
	}
	return elem, nil
}

// Len returns the number of stored elements.
func (g *guarded[T]) Len() int {
	g.lock("Len")
	defer g.mu.Unlock()
	return g.s.length()
}

// Clear drops every stored element.
func (g *guarded[T]) Clear() {
	g.lock("Clear")
	defer g.mu.Unlock()
	g.s.reset()
}

// Grab locks the container and returns a handle running Push, Pop and Len
// under that one lock. The lock is held until Release.
func (g *guarded[T]) Grab() *Grab[T] {
	g.lock("Grab")
	return &Grab[T]{g: g}
}

// LockedQueue is a queue behind a single lock, backed by a growable ring
// (github.com/eapache/queue). Whether it is bounded is decided by the
// Admission given at construction.
//
// It is the reference container: simple, exact Len, any number of
// producers and consumers.
type LockedQueue[T any] struct {
	guarded[T]
}

// NewLockedQueue creates an empty LockedQueue.
func NewLockedQueue[T any](admit Admission, locking Locking) *LockedQueue[T] {
	q := new(LockedQueue[T])
	q.mu = locking.locker()
	q.s = newQueueStore[T](admit)
	return q
}

// LockedRing is a fixed-capacity ring behind a single lock.
type LockedRing[T any] struct {
	guarded[T]
}

// NewLockedRing creates an initialized LockedRing.
func NewLockedRing[T any](capacity int, locking Locking) *LockedRing[T] {
	r := &LockedRing[T]{}
	r.mu = locking.locker()
	r.Init(capacity)
	return r
}

// Init allocates capacity slots. It must be called exactly once, before the
// ring is shared. A zero LockedRing uses sync.Mutex.
func (r *LockedRing[T]) Init(capacity int) {
	if r.s != nil {
		violation("LockedRing.Init", ErrAlreadyInitialized)
	}
	if r.mu == nil {
		r.mu = new(sync.Mutex)
	}
	r.s = newRingStore[T]("LockedRing.Init", capacity)
}

// Cap returns the ring capacity.
func (r *LockedRing[T]) Cap() int {
	if r.s == nil {
		return 0
	}
	return r.s.(*ringStore[T]).slots.Len()
}

type queueStore[T any] struct {
	q     *queue.Queue
	admit Admission
}

func newQueueStore[T any](admit Admission) *queueStore[T] {
	if admit == nil {
		admit = Unbounded()
	}
	return &queueStore[T]{q: queue.New(), admit: admit}
}

func (s *queueStore[T]) put(elem *T) bool {
	if !s.admit.Admit(s.q.Length()) {
		return false
	}
	s.q.Add(*elem)
	return true
}

func (s *queueStore[T]) get() (T, bool) {
	if s.q.Length() == 0 {
		var zero T
		return zero, false
	}
	return s.q.Remove().(T), true
}

func (s *queueStore[T]) length() int { return s.q.Length() }

func (s *queueStore[T]) reset() { s.q = queue.New() }

type ringStore[T any] struct {
	slots *slab.Slab[T]
	head  uint64
	tail  uint64
	count int
}

func newRingStore[T any](op string, capacity int) *ringStore[T] {
	return &ringStore[T]{slots: initSlab[T](op, nil, capacity)}
}

func (s *ringStore[T]) put(elem *T) bool {
	if s.count == s.slots.Len() {
		return false
	}
	*s.slots.At(s.head) = *elem
	s.head++
	s.count++
	return true
}

func (s *ringStore[T]) get() (T, bool) {
	var zero T
	if s.count == 0 {
		return zero, false
	}
	p := s.slots.At(s.tail)
	elem := *p
	*p = zero
	s.tail++
	s.count--
	return elem, true
}

func (s *ringStore[T]) length() int { return s.count }

func (s *ringStore[T]) reset() {
	s.slots.Reset()
	s.head, s.tail, s.count = 0, 0, 0
}
