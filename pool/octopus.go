// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import (
	"github.com/wsnk/concur"
)

// ScmrOctopusPool is a pool for one consumer and a fixed set of releasers,
// built from one ScsrPool per releaser.
//
// Releaser i only ever releases into shard i, so every shard keeps the
// single-releaser contract. The consumer takes round-robin across shards.
// An element may come back into a different shard than it left; all shards
// share one owner token.
type ScmrOctopusPool[T any] struct {
	shards []ScsrPool[T]
	cnum   uint
}

// NewScmrOctopusPool creates a pool of count elements spread over shards
// releasers.
func NewScmrOctopusPool[T any](shards, count int, newFn func() T) *ScmrOctopusPool[T] {
	p := new(ScmrOctopusPool[T])
	p.Init(shards, count, newFn)
	return p
}

// Init spreads count elements over shards single-releaser pools. Shard i
// receives count/(shards-i) of what is left, so the sizes differ by at
// most one.
func (p *ScmrOctopusPool[T]) Init(shards, count int, newFn func() T) {
	if p.shards != nil {
		violation("ScmrOctopusPool.Init", concur.ErrAlreadyInitialized)
	}
	if shards < 1 || count < 0 {
		violation("ScmrOctopusPool.Init", concur.ErrExhausted)
	}
	p.shards = make([]ScsrPool[T], shards)
	for i := range p.shards {
		n := count / (shards - i)
		p.shards[i].init("ScmrOctopusPool.Init", p, n, newFn)
		count -= n
	}
}

// Shards returns the number of releaser shards.
func (p *ScmrOctopusPool[T]) Shards() int {
	return len(p.shards)
}

// Take returns an element from the first non-empty shard, starting after
// the shard Take last visited (consumer only). Returns nil if every shard
// is empty.
func (p *ScmrOctopusPool[T]) Take() *Element[T] {
	if p.shards == nil {
		violation("ScmrOctopusPool.Take", concur.ErrNotInitialized)
	}
	r := uint(len(p.shards))
	for end := p.cnum + r; p.cnum != end; {
		if e := p.shards[p.cnum%r].Pop(); e != nil {
			p.cnum++
			return e
		}
		p.cnum++
	}
	return nil
}

// Pop takes an element like Take and binds the returned Handle to shard,
// the releaser that will give it back.
func (p *ScmrOctopusPool[T]) Pop(shard int) Handle[T] {
	to := p.shard("ScmrOctopusPool.Pop", shard)
	e := p.Take()
	if e == nil {
		return Handle[T]{}
	}
	return Handle[T]{e: e, to: to}
}

// Release returns e through the shard of releaser shard. Each shard must
// only be used by one goroutine at a time.
func (p *ScmrOctopusPool[T]) Release(shard int, e *Element[T]) {
	p.shard("ScmrOctopusPool.Release", shard).release(e)
}

// release backs Element.Release, which knows no shard.
func (p *ScmrOctopusPool[T]) release(*Element[T]) {
	violation("ScmrOctopusPool.Element.Release", concur.ErrForeignElement)
}

// Close pops every available element of every shard and calls fn on its
// value (consumer only). Returns the number of elements visited.
func (p *ScmrOctopusPool[T]) Close(fn func(*T)) int {
	return closeAll("ScmrOctopusPool", p.Take, fn)
}

func (p *ScmrOctopusPool[T]) shard(op string, i int) *ScsrPool[T] {
	if p.shards == nil {
		violation(op, concur.ErrNotInitialized)
	}
	if i < 0 || i >= len(p.shards) {
		violation(op, concur.ErrForeignElement)
	}
	return &p.shards[i]
}
