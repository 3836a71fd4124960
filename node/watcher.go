// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"github.com/LucasAlda/bitcoin-node/peer"
	"github.com/LucasAlda/bitcoin-node/wire"
)

// watcherInterval is how often the stale-request watcher polls, per spec
// §4.10.
const watcherInterval = 1 * time.Second

// WatchStaleRequests polls every watcherInterval for block requests that
// have aged past blocksync.StaleThreshold and reissues them in chunks,
// terminating once the block store has caught up to the header chain
// (spec §4.10). It blocks until then, so callers run it in its own
// goroutine.
func (s *State) WatchStaleRequests() {
	ticker := time.NewTicker(watcherInterval)
	defer ticker.Stop()

	for range ticker.C {
		if s.tickStaleRequests() {
			return
		}
	}
}

// tickStaleRequests runs a single poll of the stale-request check, split
// out from WatchStaleRequests so it can be driven directly in tests
// without waiting on watcherInterval. It reports whether the watcher
// should stop (the block store has caught up to the header chain).
func (s *State) tickStaleRequests() bool {
	s.Mu.Lock()
	synced := s.Blocks.DownloadedCount() == s.Headers.Count() && s.Headers.IsSynced()
	stale := s.Pending.StaleRequests()
	s.Mu.Unlock()

	if synced {
		return true
	}

	for i := 0; i < len(stale); i += chunkSize {
		end := i + chunkSize
		if end > len(stale) {
			end = len(stale)
		}
		inv := make([]wire.InvVect, 0, end-i)
		for _, hash := range stale[i:end] {
			inv = append(inv, wire.InvVect{Type: wire.InvTypeBlock, Hash: hash})
		}
		s.Dispatcher.Enqueue(peer.GetData{Inventory: inv})
	}

	return false
}
