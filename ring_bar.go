// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"

	"github.com/wsnk/concur/internal/slab"
)

// RingBar is a ring where many visitors claim slots, work on them for as
// long as they like and release them in any order, while a single master
// consumes them strictly in claim order.
//
// The master cannot see a READY slot while an earlier claimed slot is still
// held by its visitor. A visitor that stalls or loses its Visit blocks the
// whole ring, so visitors must always release, and release promptly.
// MasterSkipAll is the recovery valve.
//
// Each slot moves FREE → CLAIMED (VisitorFetch) → READY (VisitorRelease) →
// MASTER (MasterFetch) → FREE (MasterRelease). A release that finds its slot
// in any other state panics with ErrDoubleRelease, so a repeated release
// can never return capacity twice. The master gives slots back in the order
// it fetched them.
type RingBar[T any] struct {
	_     cpu.CacheLinePad
	head  atomix.Uint64 // visitor claim cursor
	_     cpu.CacheLinePad
	avail atomix.Int64 // claimable slots
	_     cpu.CacheLinePad
	tail  uint64 // master cursor
	freed uint64 // master release cursor
	_     cpu.CacheLinePad
	slots *slab.Slab[barSlot[T]]
}

// Slot states beyond slotFree and slotReady.
const (
	slotClaimed uint64 = 2 // held by a visitor
	slotMaster  uint64 = 3 // held by the master
)

type barSlot[T any] struct {
	state atomix.Uint64
	data  T
}

// Visit is a claimed RingBar slot. The zero Visit is empty.
type Visit[T any] struct {
	ring *RingBar[T]
	slot *barSlot[T]
}

// Value returns the slot's element. The pointer stays valid until the
// slot is released by the side currently holding it.
func (v Visit[T]) Value() *T {
	if v.slot == nil {
		return nil
	}
	return &v.slot.data
}

// Valid reports whether v refers to a slot.
func (v Visit[T]) Valid() bool {
	return v.slot != nil
}

// NewRingBar creates an initialized RingBar.
func NewRingBar[T any](capacity int) *RingBar[T] {
	r := new(RingBar[T])
	r.Init(capacity)
	return r
}

// Init allocates capacity slots. Not thread-safe; call exactly once.
func (r *RingBar[T]) Init(capacity int) {
	r.slots = initSlab[barSlot[T]]("RingBar.Init", r.slots, capacity)
	r.avail.StoreRelaxed(int64(capacity))
}

// At returns the element of slot pos without any synchronization.
// Intended for setup before the ring is shared.
func (r *RingBar[T]) At(pos int) *T {
	return &r.ring("RingBar.At").At(uint64(pos)).data
}

// Cap returns the number of slots.
func (r *RingBar[T]) Cap() int {
	if r.slots == nil {
		return 0
	}
	return r.slots.Len()
}

// Len returns a best-effort count of slots claimed and not yet given back
// by the master.
func (r *RingBar[T]) Len() int {
	n := int64(r.Cap()) - r.avail.LoadRelaxed()
	if n < 0 {
		return 0
	}
	return int(n)
}

// VisitorFetch claims the next slot (any goroutine).
// Returns ErrWouldBlock if every slot is claimed.
func (r *RingBar[T]) VisitorFetch() (Visit[T], error) {
	slots := r.ring("RingBar.VisitorFetch")
	if r.avail.AddAcqRel(-1) < 0 {
		r.avail.AddAcqRel(1)
		return Visit[T]{}, ErrWouldBlock
	}
	s := slots.At(r.head.AddAcqRel(1) - 1)
	s.state.StoreRelaxed(slotClaimed)
	return Visit[T]{ring: r, slot: s}, nil
}

// VisitorRelease marks v READY for the master. Panics with
// ErrDoubleRelease unless v is claimed and not yet released.
func (r *RingBar[T]) VisitorRelease(v Visit[T]) {
	r.check("RingBar.VisitorRelease", v)
	if !v.slot.state.CompareAndSwapAcqRel(slotClaimed, slotReady) {
		violation("RingBar.VisitorRelease", ErrDoubleRelease)
	}
}

// MasterFetch takes the slot at the master cursor if it is READY.
// Returns ErrWouldBlock otherwise, even when later slots are READY.
func (r *RingBar[T]) MasterFetch() (Visit[T], error) {
	s := r.ring("RingBar.MasterFetch").At(r.tail)
	if !s.state.CompareAndSwapAcqRel(slotReady, slotMaster) {
		return Visit[T]{}, ErrWouldBlock
	}
	r.tail++
	return Visit[T]{ring: r, slot: s}, nil
}

// MasterRelease makes a slot obtained from MasterFetch claimable again.
// Slots must be released in fetch order. Panics with ErrDoubleRelease if v
// is not held by the master, and with ErrReleaseOrder if an earlier fetched
// slot is still held.
func (r *RingBar[T]) MasterRelease(v Visit[T]) {
	r.check("RingBar.MasterRelease", v)
	if v.slot.state.LoadAcquire() != slotMaster {
		violation("RingBar.MasterRelease", ErrDoubleRelease)
	}
	if v.slot != r.slots.At(r.freed) {
		violation("RingBar.MasterRelease", ErrReleaseOrder)
	}
	v.slot.state.StoreRelease(slotFree)
	r.freed++
	r.avail.AddAcqRel(1)
}

// MasterSkipAll gives back, without handing them out, the run of READY
// slots starting at the master cursor. It returns how many were skipped.
// Panics with ErrReleaseOrder while the master holds a fetched slot.
func (r *RingBar[T]) MasterSkipAll() int {
	slots := r.ring("RingBar.MasterSkipAll")
	if r.freed != r.tail {
		violation("RingBar.MasterSkipAll", ErrReleaseOrder)
	}
	n := 0
	for slots.At(r.tail).state.CompareAndSwapAcqRel(slotReady, slotFree) {
		r.tail++
		r.freed++
		r.avail.AddAcqRel(1)
		n++
	}
	return n
}

func (r *RingBar[T]) ring(op string) *slab.Slab[barSlot[T]] {
	if r.slots == nil {
		violation(op, ErrNotInitialized)
	}
	return r.slots
}

func (r *RingBar[T]) check(op string, v Visit[T]) {
	if v.slot == nil || v.ring != r {
		violation(op, ErrForeignElement)
	}
}

// ScmpRingCollection names the RingBar roles after producers and consumer:
// producers fill claimed slots, the single consumer drains them in claim
// order.
type ScmpRingCollection[T any] struct {
	RingBar[T]
}

// NewScmpRingCollection creates an initialized ScmpRingCollection.
func NewScmpRingCollection[T any](capacity int) *ScmpRingCollection[T] {
	c := new(ScmpRingCollection[T])
	c.Init(capacity)
	return c
}

// ProducerFetch claims a slot to fill.
func (c *ScmpRingCollection[T]) ProducerFetch() (Visit[T], error) {
	return c.VisitorFetch()
}

// ProducerRelease publishes a filled slot.
func (c *ScmpRingCollection[T]) ProducerRelease(v Visit[T]) {
	c.VisitorRelease(v)
}

// ConsumerFetch takes the next slot in claim order.
func (c *ScmpRingCollection[T]) ConsumerFetch() (Visit[T], error) {
	return c.MasterFetch()
}

// ConsumerRelease returns a consumed slot to the producers.
func (c *ScmpRingCollection[T]) ConsumerRelease(v Visit[T]) {
	c.MasterRelease(v)
}

// ConsumerSkipAll drops the READY run at the consumer cursor.
func (c *ScmpRingCollection[T]) ConsumerSkipAll() int {
	return c.MasterSkipAll()
}
