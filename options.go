// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

// Options configures container creation and algorithm selection.
type Options struct {
	// Producer/Consumer constraints (determines the algorithm)
	singleProducer bool
	singleConsumer bool

	// Lock used wherever the chosen algorithm needs one
	locking Locking

	// Capacity (exact); 0 for unbounded builders
	capacity int
}

// Builder creates containers with fluent configuration.
//
// The builder selects the algorithm from the declared producer/consumer
// roles. Declaring a role lets the builder pick a variant that trades a
// lock for a role restriction; breaking the declared restriction later is
// undefined behavior.
//
// Example:
//
//	// Single producer, single consumer: flag-slot ring
//	r := concur.BuildRing[Event](concur.New(1024).SingleProducer().SingleConsumer())
//
//	// Any producers, one consumer: counting ring
//	r := concur.BuildRing[Event](concur.New(1024).SingleConsumer())
//
//	// Unbounded list with spin-locked consumers
//	l := concur.BuildList[Event](concur.NewUnbounded().SingleProducer().Spin())
type Builder struct {
	opts Options
}

// New creates a builder for bounded rings with exactly capacity slots.
//
// Panics if capacity < 1.
func New(capacity int) *Builder {
	if capacity < 1 {
		panic("concur: capacity must be >= 1")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// NewUnbounded creates a builder for unbounded lists and queues.
func NewUnbounded() *Builder {
	return &Builder{}
}

// SingleProducer declares that only one goroutine will push.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will pop.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Spin selects the spin lock instead of sync.Mutex for the variants that
// lock. Lock-free variants ignore it.
func (b *Builder) Spin() *Builder {
	b.opts.locking = Spin
	return b
}

// BuildRing creates a bounded Ring[T].
//
// Algorithm selection:
//
//	SingleProducer + SingleConsumer → ScspRing (flag slots)
//	SingleConsumer                  → ScmpRing (counting)
//	otherwise                       → LockedRing
//
// Panics if the builder is unbounded.
func BuildRing[T any](b *Builder) Ring[T] {
	if b.opts.capacity < 1 {
		panic("concur: BuildRing requires New(capacity)")
	}
	switch {
	case b.opts.singleProducer && b.opts.singleConsumer:
		return NewScspRing[T](b.opts.capacity)
	case b.opts.singleConsumer:
		return NewScmpRing[T](b.opts.capacity)
	default:
		return NewLockedRing[T](b.opts.capacity, b.opts.locking)
	}
}

// BuildList creates an unbounded List[T].
//
// Algorithm selection:
//
//	SingleProducer + SingleConsumer → ScspList (no lock)
//	SingleProducer                  → McspList (consume side locked)
//	otherwise                       → McmpList (both sides locked)
//
// The capacity of a bounded builder is ignored.
func BuildList[T any](b *Builder) List[T] {
	switch {
	case b.opts.singleProducer && b.opts.singleConsumer:
		return NewScspList[T]()
	case b.opts.singleProducer:
		return NewMcspList[T](b.opts.locking)
	default:
		return NewMcmpList[T](b.opts.locking)
	}
}

// BuildQueue creates an unbounded queue for many producers.
//
// Algorithm selection:
//
//	SingleConsumer → ScmpQueue (wait-free tear/bind)
//	otherwise      → LockedQueue
//
// A bounded builder yields a LockedQueue admitting at most its capacity
// when consumers are not restricted.
func BuildQueue[T any](b *Builder) Queue[T] {
	if b.opts.singleConsumer && b.opts.capacity == 0 {
		return NewScmpQueue[T]()
	}
	admit := Unbounded()
	if b.opts.capacity > 0 {
		admit = Bounded(b.opts.capacity)
	}
	return NewLockedQueue[T](admit, b.opts.locking)
}
