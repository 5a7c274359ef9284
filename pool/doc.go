// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pool recycles fixed sets of elements between one consumer, which
// pops, and one or more releasers, which give elements back.
//
// Pool names follow the concur convention with R for releasers:
//
//   - ScsrPool: single consumer, single releaser
//   - ScmrPool, ScmrRingPool, BufferPool: single consumer, multiple releasers
//   - ScmrOctopusPool: single consumer, one ScsrPool shard per releaser
//   - PtrRingPool: any goroutine, mutex-guarded
//
// Elements carry an owner token and an in-pool flag. Releasing an element
// into a pool that did not create it, or releasing it twice, panics with a
// *concur.ContractError wrapping concur.ErrForeignElement or
// concur.ErrDoubleRelease.
//
// Pop returns nil (or an empty Handle) when the pool is empty. Pools never
// allocate after Init except through an explicit Create.
//
// Every element created is at any quiescent point either available in its
// pool or held by exactly one owner.
package pool
