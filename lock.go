// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Locking selects the lock used by the lock-guarded variants.
type Locking uint8

const (
	// Mutex uses sync.Mutex (default).
	Mutex Locking = iota
	// Spin uses a busy-waiting test-and-test-and-set lock. Suited to
	// critical sections of a few pointer moves, as in the lists.
	Spin
)

func (l Locking) locker() sync.Locker {
	if l == Spin {
		return new(spinLock)
	}
	return new(sync.Mutex)
}

// spinLock is a TTAS lock. Waiters spin on a plain load and back off with
// spin.Wait before retrying the CAS.
type spinLock struct {
	state atomix.Uint64
}

func (l *spinLock) Lock() {
	sw := spin.Wait{}
	for {
		if l.state.LoadRelaxed() == 0 && l.state.CompareAndSwapAcqRel(0, 1) {
			return
		}
		sw.Once()
	}
}

func (l *spinLock) Unlock() {
	l.state.StoreRelease(0)
}
