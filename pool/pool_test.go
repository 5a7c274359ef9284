// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool_test

import (
	"errors"
	"testing"

	"github.com/valyala/fastrand"

	"github.com/wsnk/concur"
	"github.com/wsnk/concur/pool"
)

// singlePool is the consumer/releaser surface shared by the single-consumer
// pools.
type singlePool[T any] interface {
	Pop() *pool.Element[T]
	PopHandle() pool.Handle[T]
	Release(e *pool.Element[T])
	Close(fn func(*T)) int
}

func counter() func() int {
	n := 0
	return func() int {
		n++
		return n
	}
}

func pools(count int) map[string]singlePool[int] {
	return map[string]singlePool[int]{
		"ScsrPool":     pool.NewScsrPool(count, counter()),
		"ScmrPool":     pool.NewScmrPool(count, counter()),
		"ScmrRingPool": pool.NewScmrRingPool(count, counter()),
	}
}

func expectContract(t *testing.T, name string, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("%s: did not panic", name)
		}
		err, _ := r.(error)
		var ce *concur.ContractError
		if !errors.As(err, &ce) || !errors.Is(err, want) {
			t.Fatalf("%s: got %v, want ContractError wrapping %v", name, r, want)
		}
	}()
	fn()
}

// =============================================================================
// Single-consumer pools
// =============================================================================

func TestPoolExactCount(t *testing.T) {
	const count = 5
	for name, p := range pools(count) {
		t.Run(name, func(t *testing.T) {
			seen := make(map[int]bool)
			var held []*pool.Element[int]
			for i := range count {
				e := p.Pop()
				if e == nil {
					t.Fatalf("Pop(%d): got nil", i)
				}
				if seen[e.Value] {
					t.Fatalf("Pop(%d): value %d handed out twice", i, e.Value)
				}
				seen[e.Value] = true
				held = append(held, e)
			}
			if e := p.Pop(); e != nil {
				t.Fatalf("Pop on empty: got %v, want nil", e.Value)
			}
			for _, e := range held {
				p.Release(e)
			}
			for i := range count {
				if p.Pop() == nil {
					t.Fatalf("Pop(%d) after release: got nil", i)
				}
			}
		})
	}
}

// TestPoolConservation runs a random pop/release schedule and checks every
// hundred steps that the elements the pool still hands out plus those held
// equal the initial count.
func TestPoolConservation(t *testing.T) {
	const count = 16
	for name, p := range pools(count) {
		t.Run(name, func(t *testing.T) {
			var held []pool.Handle[int]
			available := count
			for step := range 2000 {
				if fastrand.Uint32n(2) == 0 {
					h := p.PopHandle()
					if h.Valid() != (available > 0) {
						t.Fatalf("step %d: PopHandle valid=%v with %d available", step, h.Valid(), available)
					}
					if h.Valid() {
						held = append(held, h)
						available--
					}
				} else if len(held) > 0 {
					i := int(fastrand.Uint32n(uint32(len(held))))
					held[i].Release()
					held[i] = held[len(held)-1]
					held = held[:len(held)-1]
					available++
				}
				if step%100 == 99 {
					if n := drainAndRestore(p); n+len(held) != count {
						t.Fatalf("step %d: pool holds %d + held %d, want %d", step, n, len(held), count)
					}
				}
			}
			for i := range held {
				held[i].Release()
			}
			if n := p.Close(nil); n != count {
				t.Fatalf("Close: got %d, want %d", n, count)
			}
		})
	}
}

// drainAndRestore pops every available element, puts them all back and
// returns how many there were.
func drainAndRestore(p singlePool[int]) int {
	var out []*pool.Element[int]
	for e := p.Pop(); e != nil; e = p.Pop() {
		out = append(out, e)
	}
	for _, e := range out {
		p.Release(e)
	}
	return len(out)
}

func TestPoolDoubleRelease(t *testing.T) {
	for name, p := range pools(2) {
		t.Run(name, func(t *testing.T) {
			e := p.Pop()
			p.Release(e)
			expectContract(t, "double release", concur.ErrDoubleRelease, func() {
				p.Release(e)
			})
		})
	}
}

func TestPoolForeignElement(t *testing.T) {
	for name, p := range pools(2) {
		t.Run(name, func(t *testing.T) {
			other := pool.NewScmrPool(1, counter())
			e := other.Pop()
			expectContract(t, "foreign release", concur.ErrForeignElement, func() {
				p.Release(e)
			})
			expectContract(t, "nil release", concur.ErrForeignElement, func() {
				p.Release(nil)
			})
		})
	}
}

func TestPoolInitTwice(t *testing.T) {
	expectContract(t, "ScsrPool", concur.ErrAlreadyInitialized, func() {
		pool.NewScsrPool[int](1, nil).Init(1, nil)
	})
	expectContract(t, "ScmrPool", concur.ErrAlreadyInitialized, func() {
		pool.NewScmrPool[int](1, nil).Init(1, nil)
	})
	expectContract(t, "ScmrRingPool", concur.ErrAlreadyInitialized, func() {
		pool.NewScmrRingPool[int](1, nil).Init(1, nil)
	})
	expectContract(t, "ScmrOctopusPool", concur.ErrAlreadyInitialized, func() {
		pool.NewScmrOctopusPool[int](2, 4, nil).Init(2, 4, nil)
	})
	expectContract(t, "ScsrPool before Init", concur.ErrNotInitialized, func() {
		var p pool.ScsrPool[int]
		p.Pop()
	})
}

// =============================================================================
// Handle
// =============================================================================

func TestHandle(t *testing.T) {
	p := pool.NewScmrPool(1, func() string { return "buf" })

	h := p.PopHandle()
	if !h.Valid() {
		t.Fatal("PopHandle: empty")
	}
	if got := *h.Get(); got != "buf" {
		t.Fatalf("Get: got %q, want %q", got, "buf")
	}
	if empty := p.PopHandle(); empty.Valid() || empty.Get() != nil || empty.Element() != nil {
		t.Fatal("PopHandle on empty pool: want empty handle")
	}

	h.Release()
	h.Release() // no-op
	if h.Valid() {
		t.Fatal("Valid after Release")
	}

	h = p.PopHandle()
	e := h.Detach()
	if h.Valid() || e == nil {
		t.Fatal("Detach: handle still valid or element nil")
	}
	h.Release() // empty: nothing happens
	if p.Pop() != nil {
		t.Fatal("detached element returned to pool")
	}
	e.Release()
	if p.Pop() == nil {
		t.Fatal("Element.Release: element not back in pool")
	}
}

func TestScmrPoolCreate(t *testing.T) {
	p := pool.NewScmrPool[int](1, nil)
	h := p.Create(99)
	if p.Created() != 2 {
		t.Fatalf("Created: got %d, want 2", p.Created())
	}
	h.Release()
	got := map[int]bool{}
	for e := p.Pop(); e != nil; e = p.Pop() {
		got[e.Value] = true
	}
	if len(got) != 2 || !got[99] {
		t.Fatalf("Pop after Create: got %v, want {0, 99}", got)
	}
}

// =============================================================================
// Octopus pool
// =============================================================================

func TestOctopusDistribution(t *testing.T) {
	p := pool.NewScmrOctopusPool(3, 10, counter())
	if p.Shards() != 3 {
		t.Fatalf("Shards: got %d, want 3", p.Shards())
	}
	var held []*pool.Element[int]
	for e := p.Take(); e != nil; e = p.Take() {
		held = append(held, e)
	}
	if len(held) != 10 {
		t.Fatalf("Take: got %d elements, want 10", len(held))
	}
	// Every element goes back through shard 1.
	for _, e := range held {
		p.Release(1, e)
	}
	h := p.Pop(2)
	if !h.Valid() {
		t.Fatal("Pop: empty handle")
	}
	h.Release() // back through shard 2
	if n := p.Close(nil); n != 10 {
		t.Fatalf("Close: got %d, want 10", n)
	}
}

func TestOctopusContract(t *testing.T) {
	p := pool.NewScmrOctopusPool(2, 2, counter())
	e := p.Take()
	expectContract(t, "shard out of range", concur.ErrForeignElement, func() {
		p.Release(2, e)
	})
	expectContract(t, "Element.Release without shard", concur.ErrForeignElement, func() {
		e.Release()
	})
	p.Release(0, e)
	expectContract(t, "double release", concur.ErrDoubleRelease, func() {
		p.Release(1, e)
	})
}

// =============================================================================
// PtrRingPool and BufferPool
// =============================================================================

func TestPtrRingPool(t *testing.T) {
	p := pool.NewPtrRingPool[int](2)
	if p.Take() != nil {
		t.Fatal("Take on new pool: want nil")
	}
	a, b, c := 1, 2, 3
	if err := p.Release(&a); err != nil {
		t.Fatalf("Release(a): %v", err)
	}
	if err := p.Release(&b); err != nil {
		t.Fatalf("Release(b): %v", err)
	}
	if err := p.Release(&c); !concur.IsWouldBlock(err) {
		t.Fatalf("Release on full: got %v, want ErrWouldBlock", err)
	}
	if err := p.Release(nil); !errors.Is(err, concur.ErrNilElement) {
		t.Fatalf("Release(nil): got %v, want ErrNilElement", err)
	}
	if p.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", p.Len())
	}
	if got := p.Take(); got != &a {
		t.Fatalf("Take: got %p, want %p", got, &a)
	}
	sum := 0
	if n := p.Close(func(v *int) { sum += *v }); n != 1 || sum != 2 {
		t.Fatalf("Close: got (n=%d, sum=%d), want (1, 2)", n, sum)
	}
	expectContract(t, "Alloc twice", concur.ErrAlreadyInitialized, func() {
		p.Alloc(2)
	})
}

func TestBufferPool(t *testing.T) {
	bp := pool.NewBufferPool(2, 128)
	if bp.Size() != 128 {
		t.Fatalf("Size: got %d, want 128", bp.Size())
	}
	e := bp.Pop()
	if e == nil || len(e.Value) != 128 {
		t.Fatal("Pop: want a 128-byte buffer")
	}
	copy(e.Value, "payload")
	e.Release()

	h := bp.Create()
	if len(*h.Get()) != 128 {
		t.Fatalf("Create: got %d bytes, want 128", len(*h.Get()))
	}
	h.Release()
	if bp.Created() != 3 {
		t.Fatalf("Created: got %d, want 3", bp.Created())
	}
	if n := bp.Close(nil); n != 3 {
		t.Fatalf("Close: got %d, want 3", n)
	}
}
