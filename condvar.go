// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"context"
	"sync"
	"time"
)

// CondvarQueue is a LockedQueue whose consumers can also wait for data.
//
// Every successful push posts a wakeup on a one-slot channel; a woken
// consumer that leaves data behind posts it again, so one token never
// strands a waiter while elements remain.
type CondvarQueue[T any] struct {
	guarded[T]
}

// NewCondvarQueue creates an empty CondvarQueue.
func NewCondvarQueue[T any](admit Admission) *CondvarQueue[T] {
	q := new(CondvarQueue[T])
	q.mu = new(sync.Mutex)
	q.s = newQueueStore[T](admit)
	q.wake = make(chan struct{}, 1)
	return q
}

// PopTimeout waits up to d for an element.
// Returns (zero-value, ErrWouldBlock) if none arrived in time.
func (q *CondvarQueue[T]) PopTimeout(d time.Duration) (T, error) {
	return popTimeout(&q.guarded, d)
}

// PopContext waits for an element until ctx is done.
func (q *CondvarQueue[T]) PopContext(ctx context.Context) (T, error) {
	return popContext(ctx, &q.guarded)
}

// CondvarRing is a LockedRing whose consumers can also wait for data.
type CondvarRing[T any] struct {
	guarded[T]
}

// NewCondvarRing creates an initialized CondvarRing.
func NewCondvarRing[T any](capacity int) *CondvarRing[T] {
	r := new(CondvarRing[T])
	r.Init(capacity)
	return r
}

// Init allocates capacity slots. It must be called exactly once.
func (r *CondvarRing[T]) Init(capacity int) {
	if r.s != nil {
		violation("CondvarRing.Init", ErrAlreadyInitialized)
	}
	r.mu = new(sync.Mutex)
	r.s = newRingStore[T]("CondvarRing.Init", capacity)
	r.wake = make(chan struct{}, 1)
}

// Cap returns the ring capacity.
func (r *CondvarRing[T]) Cap() int {
	if r.s == nil {
		return 0
	}
	return r.s.(*ringStore[T]).slots.Len()
}

// PopTimeout waits up to d for an element.
// Returns (zero-value, ErrWouldBlock) if none arrived in time.
func (r *CondvarRing[T]) PopTimeout(d time.Duration) (T, error) {
	return popTimeout(&r.guarded, d)
}

// PopContext waits for an element until ctx is done.
func (r *CondvarRing[T]) PopContext(ctx context.Context) (T, error) {
	return popContext(ctx, &r.guarded)
}

// popTimeout retries Pop until it succeeds or d has elapsed in total.
func popTimeout[T any](g *guarded[T], d time.Duration) (T, error) {
	if elem, err := g.Pop(); err == nil || d <= 0 {
		return elem, err
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case <-g.wake:
		case <-timer.C:
			// Last look: a push may have landed with its token already taken.
			return g.Pop()
		}
		if elem, err := g.Pop(); err == nil {
			return elem, nil
		}
	}
}

func popContext[T any](ctx context.Context, g *guarded[T]) (T, error) {
	for {
		if elem, err := g.Pop(); err == nil {
			return elem, nil
		}
		select {
		case <-g.wake:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}
