// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package slab provides the fixed, cache-line padded arena shared by every
// ring-based structure.
//
// Each slot is followed by a [cpu.CacheLinePad], so the hot fields of two
// neighbouring slots never land on the same cache line regardless of the
// element size. Slots are zero-valued at allocation and addressed modulo the
// slab length.
package slab

import (
	"errors"
	"unsafe"

	"github.com/pbnjay/memory"
	"golang.org/x/sys/cpu"
)

// ErrExhausted reports that the requested arena cannot be allocated.
var ErrExhausted = errors.New("concur: storage exhausted")

// Slab is a fixed array of padded slots.
type Slab[T any] struct {
	cells []cell[T]
	n     uint64
}

type cell[T any] struct {
	v T
	_ cpu.CacheLinePad
}

// New allocates n zero-valued slots.
//
// Returns ErrExhausted if n is not positive or if the padded footprint
// exceeds the physical memory of the host.
func New[T any](n int) (*Slab[T], error) {
	if n <= 0 {
		return nil, ErrExhausted
	}
	if !fits(uint64(n), uint64(unsafe.Sizeof(cell[T]{}))) {
		return nil, ErrExhausted
	}
	return &Slab[T]{cells: make([]cell[T], n), n: uint64(n)}, nil
}

// fits reports whether n cells of size bytes fit into physical memory.
// An unknown total (0) is treated as unlimited.
func fits(n, size uint64) bool {
	if size != 0 && n > ^uint64(0)/size {
		return false
	}
	total := memory.TotalMemory()
	return total == 0 || n*size <= total
}

// At returns the slot for cursor i (modulo the slab length).
func (s *Slab[T]) At(i uint64) *T {
	return &s.cells[i%s.n].v
}

// Len returns the number of slots.
func (s *Slab[T]) Len() int {
	return int(s.n)
}

// Reset zeroes every slot.
func (s *Slab[T]) Reset() {
	clear(s.cells)
}
