// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import "github.com/wsnk/concur"

// BufferPool is an ScmrPool of fixed-size byte buffers. Any goroutine may
// give a buffer back with Element.Release; only one may Pop.
//
//	bp := pool.NewBufferPool(64, 4096)
//	e := bp.Pop()
//	n, _ := conn.Read(e.Value)
//	go func() {
//	    defer e.Release()
//	    handle(e.Value[:n])
//	}()
//
// Buffers keep their full length; Release does not clear them.
type BufferPool struct {
	ScmrPool[[]byte]
	size int
}

// NewBufferPool creates a pool of count buffers of size bytes each.
func NewBufferPool(count, size int) *BufferPool {
	if size < 0 {
		violation("NewBufferPool", concur.ErrExhausted)
	}
	p := &BufferPool{size: size}
	p.Init(count, func() []byte { return make([]byte, size) })
	return p
}

// Size returns the length of every buffer.
func (p *BufferPool) Size() int {
	return p.size
}

// Create hands out a new buffer of the pool's size that joins the pool when
// released.
func (p *BufferPool) Create() Handle[[]byte] {
	return p.ScmrPool.Create(make([]byte, p.size))
}
