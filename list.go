// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"

	"github.com/wsnk/concur/internal/reap"
)

type listNode[T any] struct {
	next atomic.Pointer[listNode[T]] // nil: no successor yet
	data T
}

// reclaimList is the structure shared by the unbounded lists.
//
// The chain hangs off a permanent root node. Consumers walk a read cursor
// that starts at root and always rests on the last consumed node; the value
// of the next node is the next element. Consumed nodes are not unlinked by
// consumers: every produce swings root's successor forward to the read
// cursor and drops the nodes in between. Only nodes strictly before the
// cursor are dropped, and only from the producer side, so a consumer never
// loses the node it is standing on.
type reclaimList[T any] struct {
	_         cpu.CacheLinePad
	read      atomic.Pointer[listNode[T]] // consumer cursor; nil means root
	_         cpu.CacheLinePad
	tail      *listNode[T] // producer side; nil means root
	root      listNode[T]
	reclaimed atomix.Uint64
}

func (l *reclaimList[T]) cursor() *listNode[T] {
	if p := l.read.Load(); p != nil {
		return p
	}
	return &l.root
}

// link appends n. Publication of n.data happens through the atomic store
// of the predecessor's next.
func (l *reclaimList[T]) link(n *listNode[T]) {
	t := l.tail
	if t == nil {
		t = &l.root
	}
	t.next.Store(n)
	l.tail = n
}

// detach cuts the consumed prefix off root and returns it as [from, to).
func (l *reclaimList[T]) detach() (from, to *listNode[T]) {
	read := l.cursor()
	if read == &l.root {
		return nil, nil
	}
	first := l.root.next.Load()
	if first == read {
		return nil, nil
	}
	l.root.next.Store(read)
	return first, read
}

// release breaks up a detached chain so the collector can take it.
func (l *reclaimList[T]) release(from, to *listNode[T]) {
	var n uint64
	for from != to {
		next := from.next.Load()
		from.next.Store(nil)
		from = next
		n++
	}
	if n > 0 {
		l.reclaimed.AddAcqRel(n)
	}
}

func (l *reclaimList[T]) consume() (T, error) {
	read := l.cursor()
	next := read.next.Load()
	if next == nil {
		var zero T
		return zero, ErrWouldBlock
	}
	elem := next.data
	var zero T
	next.data = zero
	l.read.Store(next)
	return elem, nil
}

func drainList[T any](owner string, consume func() (T, error), fn func(T)) int {
	n := 0
	for {
		v, err := consume()
		if err != nil {
			return n
		}
		reap.Call(owner, fn, v)
		n++
	}
}

// Reclaimed returns how many consumed nodes producers have unlinked so far.
func (l *reclaimList[T]) Reclaimed() uint64 {
	return l.reclaimed.LoadAcquire()
}
