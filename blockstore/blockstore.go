// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockstore persists full blocks to a content-addressed file
// layout under a configured root directory, one file per block named by
// its header hash.
package blockstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LucasAlda/bitcoin-node/blocksync"
	"github.com/LucasAlda/bitcoin-node/wire"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// ErrBlockNotFound is returned by GetBlock when no file exists for the
// requested hash.
var ErrBlockNotFound = errors.New("block not found")

// Store writes and reads blocks under root/blocks/<hash>, and tracks
// whether every header known to the chain has had its body downloaded.
type Store struct {
	root            string
	downloadedCount int
}

// New returns a Store rooted at root. The blocks subdirectory is created on
// first write, not here, so that opening a Store never touches disk.
func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) path(hash chainhash.Hash) string {
	return filepath.Join(s.root, "blocks", strings.ToUpper(hash.String()))
}

// AppendBlock persists block, then removes its hash from pending and marks
// header downloaded, recomputing whether the store has now downloaded
// every expected block (spec §4.4). totalExpected is the header chain's
// total header count at the time of the call.
func (s *Store) AppendBlock(header *wire.BlockHeader, block *wire.Block, pending *blocksync.PendingBlocks, totalExpected int) (synced bool, err error) {
	hash := header.Hash()
	if err := s.writeBlock(hash, block); err != nil {
		return false, err
	}

	pending.Remove(hash)
	if !header.BlockDownloaded {
		header.BlockDownloaded = true
		s.downloadedCount++
	}

	return s.downloadedCount == totalExpected, nil
}

func (s *Store) writeBlock(hash chainhash.Hash, block *wire.Block) error {
	dir := filepath.Join(s.root, "blocks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("blockstore: %w", err)
	}
	if err := os.WriteFile(s.path(hash), block.Encode(), 0o644); err != nil {
		return fmt.Errorf("blockstore: %w", err)
	}
	return nil
}

// GetBlock reads and parses the block persisted under hash.
func (s *Store) GetBlock(hash chainhash.Hash) (*wire.Block, error) {
	data, err := os.ReadFile(s.path(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, hash)
		}
		return nil, fmt.Errorf("blockstore: %w", err)
	}
	return wire.DecodeBlock(data)
}

// DownloadedCount returns how many blocks this store has persisted.
func (s *Store) DownloadedCount() int {
	return s.downloadedCount
}
