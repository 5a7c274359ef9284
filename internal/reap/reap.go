// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package reap runs per-element finalizers on drain and close paths.
//
// Finalizers are user code. A panic in one is recovered and logged so the
// remaining elements are still visited; drain paths never propagate panics.
package reap

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used for recovered finalizer panics.
// A nil logger restores [slog.Default].
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// Call invokes fn(v), recovering and logging any panic. It reports whether
// fn returned normally.
func Call[T any](owner string, fn func(T), v T) (ok bool) {
	if fn == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("finalizer panicked", slog.String("owner", owner), slog.Any("panic", r))
			ok = false
		}
	}()
	fn(v)
	return true
}
