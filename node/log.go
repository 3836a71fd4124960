// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import "github.com/decred/slog"

// log is the package-wide logger, disabled by default until the caller
// installs one with UseLogger.
var log = slog.Disabled

// UseLogger sets the package-wide logger used by the node-action loop,
// the stale-request watcher, and the supervisor.
func UseLogger(logger slog.Logger) {
	log = logger
}
