// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/LucasAlda/bitcoin-node/internal/bufcursor"
	"github.com/decred/dcrd/blockchain/standalone/v2"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// BlockHeaderLen is the fixed wire size of a serialized block header:
// version(4) + prev_block_hash(32) + merkle_root(32) + timestamp(4) +
// bits(4) + nonce(4).
const BlockHeaderLen = 4 + chainhash.HashSize*2 + 4 + 4 + 4

// BlockHeader is the 80-byte header record shared by the headers and block
// messages. Hash, Broadcasted and BlockDownloaded are node-local
// bookkeeping fields, not part of the wire serialization.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32

	// hash caches the header's double-SHA256 identity. It is computed
	// lazily by Hash() since a header is mutated (its bookkeeping
	// flags) after being parsed, but its on-wire fields
	// never change post-construction.
	hash            chainhash.Hash
	hashSet         bool
	Broadcasted     bool
	BlockDownloaded bool
}

// Encode serializes the header to its canonical 80-byte wire form.
func (h *BlockHeader) Encode() []byte {
	buf := make([]byte, 0, BlockHeaderLen)
	buf = bufcursor.PutInt32LE(buf, h.Version)
	buf = append(buf, h.PrevBlock[:]...)
	buf = append(buf, h.MerkleRoot[:]...)
	buf = bufcursor.PutUint32LE(buf, h.Timestamp)
	buf = bufcursor.PutUint32LE(buf, h.Bits)
	buf = bufcursor.PutUint32LE(buf, h.Nonce)
	return buf
}

// DecodeBlockHeader parses an 80-byte block header.
func DecodeBlockHeader(b []byte) (*BlockHeader, error) {
	c := bufcursor.New(b)
	h := &BlockHeader{}

	version, err := c.Int32LE()
	if err != nil {
		return nil, err
	}
	h.Version = version

	prev, err := c.Hash32()
	if err != nil {
		return nil, err
	}
	h.PrevBlock = chainhash.Hash(prev)

	merkle, err := c.Hash32()
	if err != nil {
		return nil, err
	}
	h.MerkleRoot = chainhash.Hash(merkle)

	if h.Timestamp, err = c.Uint32LE(); err != nil {
		return nil, err
	}
	if h.Bits, err = c.Uint32LE(); err != nil {
		return nil, err
	}
	if h.Nonce, err = c.Uint32LE(); err != nil {
		return nil, err
	}

	return h, nil
}

// Hash returns the header's double-SHA256 identity, computing and caching
// it on first call.
func (h *BlockHeader) Hash() chainhash.Hash {
	if !h.hashSet {
		h.hash = chainhash.DoubleHashH(h.Encode())
		h.hashSet = true
	}
	return h.hash
}

// ValidatePoW reports whether the header's hash satisfies the target
// encoded in Bits, per spec §4.3: the hash interpreted as a 256-bit
// little-endian integer must be strictly less than the compact-bits
// target. CompactToBig/HashToBig come from the same blockchain primitives
// package the teacher uses for coinbase-maturity checks in
// rpctest/memwallet.go.
func (h *BlockHeader) ValidatePoW() bool {
	return validateHashAgainstBits(h.Hash(), h.Bits)
}

// validateHashAgainstBits implements the strict less-than comparison
// described in spec §4.3, split out from ValidatePoW so it can be
// exercised directly against hand-built hash values in tests without
// needing to grind a real double-SHA256 preimage.
func validateHashAgainstBits(hash chainhash.Hash, bits uint32) bool {
	target := standalone.CompactToBig(bits)
	if target.Sign() <= 0 {
		return false
	}
	hashNum := standalone.HashToBig(&hash)
	return hashNum.Cmp(target) < 0
}
