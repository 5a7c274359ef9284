// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"errors"

	"code.hybscloud.com/iox"
	"github.com/wsnk/concur/internal/slab"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Push/Produce: the ring is full (backpressure)
// For Pop/Consume: the structure is empty, or (ScmpQueue) a producer is
// between the two halves of its publish
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later (with backoff or yield) rather than propagating
// the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := r.Push(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if concur.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// Contract violations. These are programming errors: the structures panic
// with an error wrapping one of them, never return them from a hot path.
var (
	// ErrExhausted reports that backing storage could not be allocated.
	ErrExhausted = slab.ErrExhausted

	// ErrAlreadyInitialized reports a second Init on the same instance.
	ErrAlreadyInitialized = errors.New("concur: already initialized")

	// ErrNotInitialized reports use of a capacity-bearing structure before Init.
	ErrNotInitialized = errors.New("concur: not initialized")

	// ErrForeignElement reports an element or slot released into a structure
	// it was not drawn from.
	ErrForeignElement = errors.New("concur: element does not belong to this container")

	// ErrDoubleRelease reports an element released while already available.
	ErrDoubleRelease = errors.New("concur: element released twice")

	// ErrReleaseOrder reports a RingBar master releasing slots out of fetch
	// order.
	ErrReleaseOrder = errors.New("concur: slot released out of fetch order")

	// ErrNilElement reports a nil element pushed into a ring or pool.
	ErrNilElement = errors.New("concur: nil element")

	// ErrGrabReleased reports use of a Grab after Release.
	ErrGrabReleased = errors.New("concur: grab already released")
)

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// violation panics with err wrapped under the structure name.
func violation(where string, err error) {
	panic(&ContractError{Op: where, Err: err})
}

// ContractError is the panic value raised on contract violations.
type ContractError struct {
	Op  string
	Err error
}

func (e *ContractError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *ContractError) Unwrap() error { return e.Err }
