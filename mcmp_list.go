// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import "sync"

// McmpList is an unbounded multi-consumer multi-producer list.
//
// Production and consumption each sit behind their own lock. The produce
// lock covers the link and the swing of root's successor only; breaking up
// the detached chain happens after it is dropped.
type McmpList[T any] struct {
	reclaimList[T]
	produceMu sync.Locker
	consumeMu sync.Locker
}

// NewMcmpList creates an empty McmpList guarded by the given lock kind.
func NewMcmpList[T any](locking Locking) *McmpList[T] {
	return &McmpList[T]{
		produceMu: locking.locker(),
		consumeMu: locking.locker(),
	}
}

// Produce appends a copy of *elem (multiple producers safe).
func (l *McmpList[T]) Produce(elem *T) {
	l.push(&listNode[T]{data: *elem})
}

// Emplace appends an element built in place by init.
// init runs outside any lock.
func (l *McmpList[T]) Emplace(init func(*T)) {
	n := new(listNode[T])
	init(&n.data)
	l.push(n)
}

func (l *McmpList[T]) push(n *listNode[T]) {
	if l.produceMu == nil {
		violation("McmpList.Produce", ErrNotInitialized)
	}
	l.produceMu.Lock()
	l.link(n)
	from, to := l.detach()
	l.produceMu.Unlock()

	l.release(from, to)
}

// Consume removes the oldest element (multiple consumers safe).
// Returns (zero-value, ErrWouldBlock) if the list is empty.
func (l *McmpList[T]) Consume() (T, error) {
	if l.consumeMu == nil {
		violation("McmpList.Consume", ErrNotInitialized)
	}
	l.consumeMu.Lock()
	defer l.consumeMu.Unlock()
	return l.consume()
}

// Drain consumes every remaining element.
func (l *McmpList[T]) Drain(fn func(T)) int {
	return drainList("McmpList", l.Consume, fn)
}
