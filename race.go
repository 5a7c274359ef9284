// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package concur

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent tests of the lock-free variants, whose
// payload fields are published through atomics on a separate word.
const RaceEnabled = true
