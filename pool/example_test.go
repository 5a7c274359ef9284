// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool_test

import (
	"fmt"

	"github.com/wsnk/concur/pool"
)

// ExampleScmrPool_PopHandle shows the Handle returning its element.
func ExampleScmrPool_PopHandle() {
	p := pool.NewScmrPool(1, func() []byte { return make([]byte, 0, 64) })

	func() {
		h := p.PopHandle()
		defer h.Release()
		buf := append(*h.Get(), "hello"...)
		fmt.Println(string(buf))

		again := p.PopHandle()
		fmt.Println("second handle valid:", again.Valid())
	}()

	h := p.PopHandle()
	fmt.Println("after release valid:", h.Valid())
	h.Release()

	// Output:
	// hello
	// second handle valid: false
	// after release valid: true
}

// ExampleScmrOctopusPool shows releasers returning into their own shards.
func ExampleScmrOctopusPool() {
	p := pool.NewScmrOctopusPool(2, 4, func() int { return 0 })

	var taken []*pool.Element[int]
	for e := p.Take(); e != nil; e = p.Take() {
		taken = append(taken, e)
	}
	fmt.Println("taken:", len(taken))

	for i, e := range taken {
		p.Release(i%p.Shards(), e)
	}
	fmt.Println("closed:", p.Close(nil))

	// Output:
	// taken: 4
	// closed: 4
}
