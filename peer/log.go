// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import "github.com/decred/slog"

// log is the package-wide logger, disabled by default until the caller
// installs one with UseLogger, matching the convention used throughout
// this node's packages.
var log = slog.Disabled

// UseLogger sets the package-wide logger used by peer connections and
// their workers.
func UseLogger(logger slog.Logger) {
	log = logger
}
