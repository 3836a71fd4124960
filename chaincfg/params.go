// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg holds the network-level constants a node needs before it
// can talk to any peer: the magic bytes that open a connection, the genesis
// header blocks are chained from, and the initial-block-download cutoff.
package chaincfg

import (
	"github.com/LucasAlda/bitcoin-node/wire"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// Params describes one network a node can join.
type Params struct {
	Name          string
	Net           uint32
	DefaultPort   uint16
	DNSSeed       string
	GenesisHeader wire.BlockHeader
	// IBDStartEpoch is the configured cutoff below which headers are
	// accepted into the chain but never enqueued for a block download
	// (spec §4.9, §9 open question 3: hardcoded in the source as
	// START_DATE_IBD; made configurable here via Params instead).
	IBDStartEpoch uint32
}

// mustHash decodes a big-endian hex string into a chainhash.Hash, panicking
// on malformed input since these are only ever called with constants below.
func mustHash(s string) chainhash.Hash {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		panic(err)
	}
	return *h
}

// TestNet3Params mirrors the public Bitcoin testnet3 genesis block, the
// network this node's test fixtures and scenario vectors target.
var TestNet3Params = Params{
	Name:        "testnet3",
	Net:         0x0709110b,
	DefaultPort: 18333,
	DNSSeed:     "testnet-seed.bitcoin.jonasschnelli.ch",
	GenesisHeader: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{},
		MerkleRoot: mustHash("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"),
		Timestamp:  1296688602,
		Bits:       0x1d00ffff,
		Nonce:      414098458,
	},
	IBDStartEpoch: 1681095630,
}

// MainNetParams mirrors the public Bitcoin mainnet genesis block.
var MainNetParams = Params{
	Name:        "mainnet",
	Net:         0xd9b4bef9,
	DefaultPort: 8333,
	DNSSeed:     "seed.bitcoin.sipa.be",
	GenesisHeader: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{},
		MerkleRoot: mustHash("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"),
		Timestamp:  1231006505,
		Bits:       0x1d00ffff,
		Nonce:      2083236893,
	},
	IBDStartEpoch: 1681095630,
}
