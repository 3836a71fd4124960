// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package utxoset builds and maintains the unspent-transaction-output set:
// first a one-time genesis build over the full block history, then forward
// incremental updates as each new block lands. Reversion of orphaned blocks
// is not supported (spec §9 open question 2).
package utxoset

import (
	"github.com/LucasAlda/bitcoin-node/wire"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// Entry is one unspent output together with the hash of the block that
// confirmed it.
type Entry struct {
	Output    wire.Output
	BlockHash chainhash.Hash
}

// Set is the UTXO set. It is not safe for concurrent use; callers
// serialize access behind NodeState's lock.
type Set struct {
	entries map[wire.OutPoint]Entry
	synced  bool
}

// New returns an empty, not-yet-synced Set.
func New() *Set {
	return &Set{entries: make(map[wire.OutPoint]Entry)}
}

// LookupOutput satisfies wire.UTXOLookup, letting Transaction.Movement
// resolve spent inputs without carrying their value inline.
func (s *Set) LookupOutput(op wire.OutPoint) (wire.Output, bool) {
	e, ok := s.entries[op]
	return e.Output, ok
}

// IsSynced reports whether the set has completed its genesis build (or has
// been kept current via UpdateFromBlock ever since).
func (s *Set) IsSynced() bool {
	return s.synced
}

// Len returns the number of unspent outputs tracked.
func (s *Set) Len() int {
	return len(s.entries)
}

// BuildFromHistory performs the genesis build: applies every block in
// header order, then marks the set synced. Called once, when headers and
// blocks are both synced but UTXO is not yet (spec §4.5).
func (s *Set) BuildFromHistory(blocks []*wire.Block) {
	for _, b := range blocks {
		s.applyBlock(b)
	}
	s.synced = true
}

// UpdateFromBlock applies block to the set. forward is always true in this
// core; the parameter documents the extension point a reorg-aware
// implementation would need (see §9 open question 2) without this engine
// pretending to support it.
func (s *Set) UpdateFromBlock(block *wire.Block, forward bool) {
	if !forward {
		return
	}
	s.applyBlock(block)
}

func (s *Set) applyBlock(block *wire.Block) {
	hash := block.Hash()
	for _, tx := range block.Transactions {
		txHash := tx.Hash()
		for _, in := range tx.Inputs {
			delete(s.entries, in.PreviousOutput)
		}
		for i, out := range tx.Outputs {
			op := wire.OutPoint{Hash: txHash, Index: uint32(i)}
			s.entries[op] = Entry{Output: out, BlockHash: hash}
		}
	}
}

// WalletBalance sums the value of every unspent output whose script_pubkey
// is a P2PKH script targeting pubKeyHash. O(|UTXO|).
func (s *Set) WalletBalance(pubKeyHash []byte) uint64 {
	var total uint64
	for _, e := range s.entries {
		if e.Output.OwnedBy(pubKeyHash) {
			total += e.Output.Value
		}
	}
	return total
}

// WalletUTXO returns every unspent output owned by pubKeyHash, together
// with its OutPoint. O(|UTXO|).
func (s *Set) WalletUTXO(pubKeyHash []byte) map[wire.OutPoint]Entry {
	owned := make(map[wire.OutPoint]Entry)
	for op, e := range s.entries {
		if e.Output.OwnedBy(pubKeyHash) {
			owned[op] = e
		}
	}
	return owned
}
