// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mempool tracks transactions the node has seen but not yet
// confirmed in a block.
package mempool

import (
	"github.com/LucasAlda/bitcoin-node/wire"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// Pool is the set of known unconfirmed transactions, keyed by hash. It is
// not safe for concurrent use; callers serialize access behind NodeState's
// lock.
type Pool struct {
	txs map[chainhash.Hash]*wire.Transaction
}

// New returns an empty Pool.
func New() *Pool {
	return &Pool{txs: make(map[chainhash.Hash]*wire.Transaction)}
}

// Append inserts tx if its hash is not already present, returning whether
// an insertion occurred.
func (p *Pool) Append(tx *wire.Transaction) bool {
	hash := tx.Hash()
	if _, ok := p.txs[hash]; ok {
		return false
	}
	p.txs[hash] = tx
	return true
}

// UpdateOnBlock removes any pending transaction whose hash appears in
// block, since it is now confirmed.
func (p *Pool) UpdateOnBlock(block *wire.Block) {
	for _, tx := range block.Transactions {
		delete(p.txs, tx.Hash())
	}
}

// All returns every pending transaction. The returned slice is a fresh copy
// safe for the caller to range over while further mutating the pool.
func (p *Pool) All() []*wire.Transaction {
	txs := make([]*wire.Transaction, 0, len(p.txs))
	for _, tx := range p.txs {
		txs = append(txs, tx)
	}
	return txs
}

// Len returns the number of pending transactions.
func (p *Pool) Len() int {
	return len(p.txs)
}

// MovementsFromWallet computes the movement each pending transaction causes
// for pubKeyHash, resolved against the current UTXO set, per spec §4.6.
// Entries with a zero movement are omitted.
func (p *Pool) MovementsFromWallet(pubKeyHash []byte, utxo wire.UTXOLookup) map[chainhash.Hash]int64 {
	movements := make(map[chainhash.Hash]int64)
	for hash, tx := range p.txs {
		if delta := tx.Movement(pubKeyHash, utxo); delta != 0 {
			movements[hash] = delta
		}
	}
	return movements
}
