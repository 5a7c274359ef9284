// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

// ScspList is an unbounded single-producer single-consumer list.
//
// No lock on either side: the producer owns the tail and the reclamation
// pass, the consumer owns the read cursor. The zero value is ready to use.
type ScspList[T any] struct {
	reclaimList[T]
}

// NewScspList creates an empty ScspList.
func NewScspList[T any]() *ScspList[T] {
	return new(ScspList[T])
}

// Produce appends a copy of *elem (producer only).
func (l *ScspList[T]) Produce(elem *T) {
	n := &listNode[T]{data: *elem}
	l.link(n)
	l.release(l.detach())
}

// Emplace appends an element built in place by init (producer only).
func (l *ScspList[T]) Emplace(init func(*T)) {
	n := new(listNode[T])
	init(&n.data)
	l.link(n)
	l.release(l.detach())
}

// Consume removes the oldest element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the list is empty.
func (l *ScspList[T]) Consume() (T, error) {
	return l.consume()
}

// Drain consumes every remaining element (consumer only).
func (l *ScspList[T]) Drain(fn func(T)) int {
	return drainList("ScspList", l.Consume, fn)
}
