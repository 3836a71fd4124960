// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package headerchain maintains the append-only sequence of block headers a
// node has accepted, indexed by hash, together with the sync predicate and
// locator resolution the getheaders protocol needs.
package headerchain

import (
	"errors"
	"fmt"

	"github.com/LucasAlda/bitcoin-node/wire"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// MaxHeadersPerPage caps a single getheaders reply; receiving fewer than
// this many headers in one batch is how the chain recognizes it has
// reached the tip (spec §4.3).
const MaxHeadersPerPage = wire.MaxHeadersPerMsg

// Errors returned while appending headers.
var (
	// ErrDoesNotConnect is returned when a non-duplicate header's
	// prev_block_hash does not equal the chain's current tip. The whole
	// batch is rejected; none of it is applied.
	ErrDoesNotConnect = errors.New("header does not connect to chain tip")
	// ErrInvalidPoW is returned when a header fails proof-of-work
	// validation. The whole batch is rejected.
	ErrInvalidPoW = errors.New("header fails proof-of-work validation")
)

// Chain is the append-only ordered sequence of headers rooted at a
// configured genesis. It is not safe for concurrent use; callers
// (node.loop) serialize access behind NodeState's lock.
type Chain struct {
	genesis chainhash.Hash
	headers []*wire.BlockHeader
	byHash  map[chainhash.Hash]int
	synced  bool
}

// New returns a Chain rooted at genesis. genesis itself is not stored as an
// entry; it is only the expected prev_block_hash of the first appended
// header.
func New(genesis wire.BlockHeader) *Chain {
	return &Chain{
		genesis: genesis.Hash(),
		byHash:  make(map[chainhash.Hash]int),
	}
}

// tip returns the hash new headers must connect to: the last appended
// header, or genesis if the chain is empty.
func (c *Chain) tip() chainhash.Hash {
	if len(c.headers) == 0 {
		return c.genesis
	}
	return c.headers[len(c.headers)-1].Hash()
}

// Append validates and appends an ordered batch of headers, per spec §4.3:
// a header whose own hash is already a known entry (i.e. it duplicates a
// header already in the chain) is silently skipped; a header
// that fails to connect to the running tip, or fails proof-of-work, causes
// the ENTIRE batch to be rejected with no partial application. It returns
// the count of headers newly accepted.
func (c *Chain) Append(batch []*wire.BlockHeader) (int, error) {
	tip := c.tip()
	var fresh []*wire.BlockHeader

	for _, h := range batch {
		hash := h.Hash()
		if _, known := c.byHash[hash]; known {
			continue
		}
		if h.PrevBlock != tip {
			return 0, fmt.Errorf("%w: header %s wants prev %s, chain tip is %s",
				ErrDoesNotConnect, hash, h.PrevBlock, tip)
		}
		if !h.ValidatePoW() {
			return 0, fmt.Errorf("%w: header %s", ErrInvalidPoW, hash)
		}
		fresh = append(fresh, h)
		tip = hash
	}

	for _, h := range fresh {
		c.byHash[h.Hash()] = len(c.headers)
		c.headers = append(c.headers, h)
	}

	c.synced = len(batch) < MaxHeadersPerPage
	return len(fresh), nil
}

// ByHash looks up a header by its identity.
func (c *Chain) ByHash(hash chainhash.Hash) (*wire.BlockHeader, bool) {
	idx, ok := c.byHash[hash]
	if !ok {
		return nil, false
	}
	return c.headers[idx], true
}

// All returns every header in chain order. The returned slice aliases
// internal storage and must not be mutated.
func (c *Chain) All() []*wire.BlockHeader {
	return c.headers
}

// Count returns the total number of headers in the chain.
func (c *Chain) Count() int {
	return len(c.headers)
}

// DownloadedCount returns how many headers have had their block body
// persisted.
func (c *Chain) DownloadedCount() int {
	n := 0
	for _, h := range c.headers {
		if h.BlockDownloaded {
			n++
		}
	}
	return n
}

// IsSynced reports whether the most recent Append received fewer than
// MaxHeadersPerPage headers, meaning there is no further page to request.
func (c *Chain) IsSynced() bool {
	return c.synced
}

// GetLastHeaders returns the newest n headers in tip order (oldest first
// within the returned slice, as with All, but truncated to the final n
// entries).
func (c *Chain) GetLastHeaders(n int) []*wire.BlockHeader {
	if n >= len(c.headers) {
		return c.headers
	}
	return c.headers[len(c.headers)-n:]
}

// GetHeaders resolves a getheaders locator: starting from the first hash in
// locator that the chain recognizes (locator is walked front-to-back to
// prefer the request's most preferred common ancestor at its front), it
// returns up to MaxHeadersPerPage headers following it,
// stopping early if hashStop is encountered. An unrecognized locator (none
// of its hashes are known) yields an empty result.
func (c *Chain) GetHeaders(locator []chainhash.Hash, hashStop chainhash.Hash) []*wire.BlockHeader {
	start := -1
	for _, want := range locator {
		if idx, ok := c.byHash[want]; ok {
			start = idx + 1
			break
		}
		if want == c.genesis {
			start = 0
			break
		}
	}
	if start < 0 || start >= len(c.headers) {
		return nil
	}

	end := start + MaxHeadersPerPage
	if end > len(c.headers) {
		end = len(c.headers)
	}
	for i := start; i < end; i++ {
		if c.headers[i].Hash() == hashStop {
			return c.headers[start : i+1]
		}
	}
	return c.headers[start:end]
}
