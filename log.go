// ©The concur Authors 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"log/slog"

	"github.com/wsnk/concur/internal/reap"
)

// SetLogger sets the logger that reports panics recovered from Drain and
// Close finalizers. Hot paths never log. A nil logger restores slog.Default.
func SetLogger(l *slog.Logger) {
	reap.SetLogger(l)
}
