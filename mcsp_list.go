// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import "sync"

// McspList is an unbounded multi-consumer single-producer list.
//
// Consumers serialize on one lock around the cursor step; the producer is
// lock-free.
type McspList[T any] struct {
	reclaimList[T]
	consumeMu sync.Locker
}

// NewMcspList creates an empty McspList guarded by the given lock kind.
func NewMcspList[T any](locking Locking) *McspList[T] {
	return &McspList[T]{consumeMu: locking.locker()}
}

// Produce appends a copy of *elem (single producer).
func (l *McspList[T]) Produce(elem *T) {
	n := &listNode[T]{data: *elem}
	l.link(n)
	l.release(l.detach())
}

// Emplace appends an element built in place by init (single producer).
func (l *McspList[T]) Emplace(init func(*T)) {
	n := new(listNode[T])
	init(&n.data)
	l.link(n)
	l.release(l.detach())
}

// Consume removes the oldest element (multiple consumers safe).
// Returns (zero-value, ErrWouldBlock) if the list is empty.
func (l *McspList[T]) Consume() (T, error) {
	mu := l.lock()
	mu.Lock()
	defer mu.Unlock()
	return l.consume()
}

// Drain consumes every remaining element.
func (l *McspList[T]) Drain(fn func(T)) int {
	return drainList("McspList", l.Consume, fn)
}

func (l *McspList[T]) lock() sync.Locker {
	if l.consumeMu == nil {
		violation("McspList", ErrNotInitialized)
	}
	return l.consumeMu
}
