// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blocksync tracks in-flight block download requests: which
// headers have been requested, when, and which requests have gone stale
// long enough to deserve a retry.
package blocksync

import (
	"time"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

// StaleThreshold is how long a request may sit unanswered before
// StaleRequests reports it (spec §4.4).
const StaleThreshold = 5 * time.Second

// now is a seam for tests that need deterministic timestamps; production
// code always uses time.Now.
var now = time.Now

// PendingBlocks maps a requested header's hash to the time its download was
// requested. It is not safe for concurrent use; callers serialize access
// behind NodeState's lock.
type PendingBlocks struct {
	requested map[chainhash.Hash]time.Time
}

// New returns an empty PendingBlocks.
func New() *PendingBlocks {
	return &PendingBlocks{requested: make(map[chainhash.Hash]time.Time)}
}

// Append records a download request for hash. It is idempotent: if hash is
// already pending, this is a no-op and does NOT refresh the timestamp, so
// that a peer that requested it first keeps the fairness of the original
// stale deadline.
func (p *PendingBlocks) Append(hash chainhash.Hash) {
	if _, ok := p.requested[hash]; ok {
		return
	}
	p.requested[hash] = now()
}

// IsPending reports whether hash currently has an outstanding request.
func (p *PendingBlocks) IsPending(hash chainhash.Hash) bool {
	_, ok := p.requested[hash]
	return ok
}

// Remove clears hash from the pending set, called once its block has been
// persisted.
func (p *PendingBlocks) Remove(hash chainhash.Hash) {
	delete(p.requested, hash)
}

// Len returns the number of outstanding requests.
func (p *PendingBlocks) Len() int {
	return len(p.requested)
}

// StaleRequests returns every hash whose request has aged past
// StaleThreshold, atomically re-stamping each to now so a subsequent call
// does not re-report them until they age again.
func (p *PendingBlocks) StaleRequests() []chainhash.Hash {
	cutoff := now().Add(-StaleThreshold)
	var stale []chainhash.Hash
	for hash, ts := range p.requested {
		if ts.Before(cutoff) {
			stale = append(stale, hash)
			p.requested[hash] = now()
		}
	}
	return stale
}
