// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package concur provides exchange primitives specialized by role: bounded
// rings, a visitor/master ring, unbounded reclaiming lists and a wait-free
// tear/bind queue, plus small lock-guarded containers.
//
// Each variant is named after who may touch it. The first letter pair is the
// consumer side, the second the producer side:
//
//   - Scsp: single consumer, single producer
//   - Scmp: single consumer, multiple producers
//   - Mcsp: multiple consumers, single producer
//   - Mcmp: multiple consumers, multiple producers
//
// Using a variant from more goroutines than its name allows is undefined
// behavior.
//
// # Quick Start
//
// Direct constructors:
//
//	r := concur.NewScspRing[Event](1024)
//	r := concur.NewScmpRing[*Request](4096)
//	l := concur.NewMcmpList[Job](concur.Mutex)
//	q := concur.NewScmpQueue[Msg]()
//
// Builder API selects the algorithm from the declared roles:
//
//	r := concur.BuildRing[Event](concur.New(1024).SingleProducer().SingleConsumer()) // → ScspRing
//	r := concur.BuildRing[Event](concur.New(1024).SingleConsumer())                  // → ScmpRing
//	r := concur.BuildRing[Event](concur.New(1024))                                   // → LockedRing
//	l := concur.BuildList[Event](concur.NewUnbounded().SingleProducer())             // → McspList
//	q := concur.BuildQueue[Event](concur.NewUnbounded().SingleConsumer())            // → ScmpQueue
//
// # Rings
//
// Rings have a fixed capacity given to Init (or the constructor), exactly
// as requested. Push returns [ErrWouldBlock] when full and leaves the value
// untouched; Pop returns [ErrWouldBlock] when nothing can be taken.
//
//	backoff := iox.Backoff{}
//	for r.Push(&ev) != nil {
//	    backoff.Wait()
//	}
//	backoff.Reset()
//
// [ScspRing] is strictly FIFO. [ScmpRing] delivers in claim order: a
// producer that claimed a slot and has not filled it yet hides later slots
// until it does.
//
// # Visitor/Master Ring
//
// [RingBar] hands slots to visitors for as long as they need them and gives
// them to a single master in claim order:
//
//	v, err := bar.VisitorFetch()
//	if err == nil {
//	    *v.Value() = work()
//	    bar.VisitorRelease(v)
//	}
//
//	// master
//	for {
//	    v, err := bar.MasterFetch()
//	    if err != nil {
//	        break
//	    }
//	    consume(*v.Value())
//	    bar.MasterRelease(v)
//	}
//
// # Lists
//
// Lists never fill. Consumed nodes are not freed by the consumer; the next
// Produce unlinks everything consumers have passed, so memory stays
// proportional to the unconsumed elements. Drain visits what is left.
//
// # Tear/Bind Queue
//
// [ScmpQueue] publishes with one swap and one store. Pop returning
// [ErrWouldBlock] means "retry", not "empty": a producer may be between
// its two steps. Do not use it as a shutdown condition.
//
// # Lock-Guarded Containers
//
// [LockedQueue], [LockedRing], [CondvarQueue] and [CondvarRing] take one
// lock per call. [Grab] holds that lock across a batch:
//
//	g := q.Grab()
//	for g.Len() > 0 {
//	    v, _ := g.Pop()
//	    process(v)
//	}
//	g.Release()
//
// The condvar variants add PopTimeout and PopContext for consumers that
// prefer sleeping to polling.
//
// # Error Handling
//
// Full and empty are reported as [ErrWouldBlock], sourced from
// [code.hybscloud.com/iox]:
//
//	concur.IsWouldBlock(err)  // true if full/empty
//	concur.IsSemantic(err)    // true if control flow signal
//	concur.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// Contract violations (Init twice, use before Init, releasing a foreign
// slot, using a released Grab) panic with a [*ContractError] wrapping one of
// the sentinel errors, so a recover site can test it with errors.Is.
//
// Drain paths recover panics raised by the callback and log them with
// log/slog; see [SetLogger]. Nothing else logs.
//
// # Race Detection
//
// Slot payloads are plain fields published through atomics on a separate
// word. The race detector cannot see those happens-before edges, so the
// concurrent tests of the lock-free variants are skipped under -race
// (see RaceEnabled).
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomics with explicit memory ordering,
// [code.hybscloud.com/spin] for the spin lock, and
// [github.com/eapache/queue] as the store of [LockedQueue].
package concur
