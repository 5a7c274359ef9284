// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"

	"github.com/wsnk/concur"
)

// exchangeTest launches numP producers and numC consumers. Producer p sends
// p*100000 + seq for seq in [0, itemsPerProd). Consumers stop once every
// item has been received; each item must be received exactly once.
type exchangeTest struct {
	t            *testing.T
	numP, numC   int
	itemsPerProd int
	timeout      time.Duration
	lockFree     bool
}

func (et *exchangeTest) run(push func(v int) error, pop func() (int, error)) {
	t := et.t
	if et.lockFree && concur.RaceEnabled {
		t.Skip("skip: payloads are published through atomics the race detector cannot see")
	}

	var wg sync.WaitGroup
	total := et.numP * et.itemsPerProd
	seen := make([]atomix.Int32, total)
	var received atomix.Int64
	var timedOut atomix.Bool

	for p := range et.numP {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			deadline := time.Now().Add(et.timeout)
			backoff := iox.Backoff{}
			for i := range et.itemsPerProd {
				v := id*100000 + i
				for push(v) != nil {
					if time.Now().After(deadline) {
						timedOut.Store(true)
						return
					}
					backoff.Wait()
				}
				backoff.Reset()
			}
		}(p)
	}

	for range et.numC {
		wg.Add(1)
		go func() {
			defer wg.Done()
			deadline := time.Now().Add(et.timeout)
			backoff := iox.Backoff{}
			for received.Load() < int64(total) {
				if time.Now().After(deadline) {
					timedOut.Store(true)
					return
				}
				v, err := pop()
				if err != nil {
					backoff.Wait()
					continue
				}
				backoff.Reset()
				id, seq := v/100000, v%100000
				if id < 0 || id >= et.numP || seq < 0 || seq >= et.itemsPerProd {
					t.Errorf("value out of range: %d", v)
					received.Add(1)
					continue
				}
				seen[id*et.itemsPerProd+seq].Add(1)
				received.Add(1)
			}
		}()
	}

	wg.Wait()

	if timedOut.Load() {
		t.Fatalf("timed out after %v with %d/%d items", et.timeout, received.Load(), total)
	}
	var missing, duplicates int
	for i := range total {
		switch n := seen[i].Load(); {
		case n == 0:
			missing++
		case n > 1:
			duplicates++
		}
	}
	if missing != 0 || duplicates != 0 {
		t.Fatalf("missing %d, duplicated %d of %d items", missing, duplicates, total)
	}
}

func TestExchangeRings(t *testing.T) {
	if testing.Short() {
		t.Skip("skip: stress test")
	}
	t.Run("ScspRing", func(t *testing.T) {
		r := concur.NewScspRing[int](64)
		et := &exchangeTest{t: t, numP: 1, numC: 1, itemsPerProd: 20000, timeout: 10 * time.Second, lockFree: true}
		et.run(func(v int) error { return r.Push(&v) }, r.Pop)
	})
	t.Run("ScmpRing", func(t *testing.T) {
		r := concur.NewScmpRing[int](64)
		et := &exchangeTest{t: t, numP: 4, numC: 1, itemsPerProd: 10000, timeout: 10 * time.Second, lockFree: true}
		et.run(func(v int) error { return r.Push(&v) }, r.Pop)
	})
	t.Run("LockedRing", func(t *testing.T) {
		r := concur.NewLockedRing[int](64, concur.Mutex)
		et := &exchangeTest{t: t, numP: 4, numC: 4, itemsPerProd: 5000, timeout: 10 * time.Second}
		et.run(func(v int) error { return r.Push(&v) }, r.Pop)
	})
	t.Run("ScspPtrRing", func(t *testing.T) {
		r := concur.NewScspPtrRing[int](64)
		et := &exchangeTest{t: t, numP: 1, numC: 1, itemsPerProd: 20000, timeout: 10 * time.Second, lockFree: true}
		et.run(
			func(v int) error { return r.Push(&v) },
			func() (int, error) {
				p, err := r.Pop()
				if err != nil {
					return 0, err
				}
				return *p, nil
			},
		)
	})
}

func TestExchangeLists(t *testing.T) {
	if testing.Short() {
		t.Skip("skip: stress test")
	}
	t.Run("ScspList", func(t *testing.T) {
		l := concur.NewScspList[int]()
		et := &exchangeTest{t: t, numP: 1, numC: 1, itemsPerProd: 20000, timeout: 10 * time.Second, lockFree: true}
		et.run(func(v int) error { l.Produce(&v); return nil }, l.Consume)
	})
	t.Run("McspList", func(t *testing.T) {
		l := concur.NewMcspList[int](concur.Mutex)
		et := &exchangeTest{t: t, numP: 1, numC: 4, itemsPerProd: 20000, timeout: 10 * time.Second, lockFree: true}
		et.run(func(v int) error { l.Produce(&v); return nil }, l.Consume)
	})
	t.Run("McmpList", func(t *testing.T) {
		l := concur.NewMcmpList[int](concur.Spin)
		et := &exchangeTest{t: t, numP: 4, numC: 4, itemsPerProd: 5000, timeout: 10 * time.Second, lockFree: true}
		et.run(func(v int) error { l.Produce(&v); return nil }, l.Consume)
	})
	t.Run("ScmpQueue", func(t *testing.T) {
		q := concur.NewScmpQueue[int]()
		et := &exchangeTest{t: t, numP: 4, numC: 1, itemsPerProd: 10000, timeout: 10 * time.Second, lockFree: true}
		et.run(func(v int) error { return q.Push(&v) }, q.Pop)
	})
	t.Run("LockedQueue", func(t *testing.T) {
		q := concur.NewLockedQueue[int](concur.Bounded(32), concur.Mutex)
		et := &exchangeTest{t: t, numP: 4, numC: 4, itemsPerProd: 5000, timeout: 10 * time.Second}
		et.run(func(v int) error { return q.Push(&v) }, q.Pop)
	})
}

func TestExchangeRingBar(t *testing.T) {
	if testing.Short() {
		t.Skip("skip: stress test")
	}
	bar := concur.NewRingBar[int](32)
	et := &exchangeTest{t: t, numP: 4, numC: 1, itemsPerProd: 5000, timeout: 10 * time.Second, lockFree: true}
	et.run(
		func(v int) error {
			visit, err := bar.VisitorFetch()
			if err != nil {
				return err
			}
			*visit.Value() = v
			bar.VisitorRelease(visit)
			return nil
		},
		func() (int, error) {
			visit, err := bar.MasterFetch()
			if err != nil {
				return 0, err
			}
			v := *visit.Value()
			bar.MasterRelease(visit)
			return v, nil
		},
	)
}
