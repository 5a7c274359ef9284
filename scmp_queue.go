// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// ScmpQueue is an unbounded single-consumer multi-producer queue with
// wait-free Push and Pop.
//
// Push publishes in two steps. The tear swaps the shared tail for the new
// node; from that moment the old tail is detached from the node that will
// follow it. The bind stores the new node into the old tail's next and
// reconnects the chain. Between the two the consumer sees the chain end at
// the old tail.
//
// Pop therefore cannot tell "empty" from "a producer is between tear and
// bind" and reports ErrWouldBlock for both. Treat it as a retry signal, not
// as proof of emptiness; a shutdown protocol needs its own signal, such as a
// sentinel element or an external count. A producer preempted between the
// two steps hides everything pushed after it until it resumes.
//
// Each element stays in its node until the next Pop retires that node.
type ScmpQueue[T any] struct {
	_    cpu.CacheLinePad
	head *queueNode[T] // consumer only; dummy whose successor is the front
	_    cpu.CacheLinePad
	tail atomic.Pointer[queueNode[T]]
	_    cpu.CacheLinePad
}

type queueNode[T any] struct {
	next atomic.Pointer[queueNode[T]]
	data T
}

// NewScmpQueue creates an empty ScmpQueue.
func NewScmpQueue[T any]() *ScmpQueue[T] {
	q := &ScmpQueue[T]{head: new(queueNode[T])}
	q.tail.Store(q.head)
	return q
}

// Push appends a copy of *elem (multiple producers safe). It only fails
// with ErrNilElement when elem is nil.
func (q *ScmpQueue[T]) Push(elem *T) error {
	if elem == nil {
		return ErrNilElement
	}
	n := &queueNode[T]{data: *elem}
	q.pushNode(n)
	return nil
}

// Emplace appends an element built in place by init.
func (q *ScmpQueue[T]) Emplace(init func(*T)) {
	n := new(queueNode[T])
	init(&n.data)
	q.pushNode(n)
}

func (q *ScmpQueue[T]) pushNode(n *queueNode[T]) {
	if q.tail.Load() == nil {
		violation("ScmpQueue.Push", ErrNotInitialized)
	}
	prev := q.tail.Swap(n) // tear
	prev.next.Store(n)     // bind
}

// Pop removes the front element (single consumer).
// Returns (zero-value, ErrWouldBlock) if the queue is empty or a producer
// has torn the chain and not bound it yet.
func (q *ScmpQueue[T]) Pop() (T, error) {
	if q.head == nil {
		violation("ScmpQueue.Pop", ErrNotInitialized)
	}
	first := q.head.next.Load()
	if first == nil {
		var zero T
		return zero, ErrWouldBlock
	}
	q.head.next.Store(nil)
	q.head = first

	elem := first.data
	var zero T
	first.data = zero
	return elem, nil
}

// Drain pops until Pop reports ErrWouldBlock (single consumer).
// Elements of producers still between tear and bind are not visited.
func (q *ScmpQueue[T]) Drain(fn func(T)) int {
	return drainList("ScmpQueue", q.Pop, fn)
}
