// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/LucasAlda/bitcoin-node/internal/bufcursor"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// Block is a header plus its ordered list of transactions. It is
// identified by Header.Hash().
type Block struct {
	Header       *BlockHeader
	Transactions []*Transaction
}

// Encode serializes the block to its on-disk/wire form: the 80-byte header
// followed by a varint transaction count and each transaction in order.
// This is also the format persisted by blockstore.Store.
func (b *Block) Encode() []byte {
	buf := b.Header.Encode()
	buf = bufcursor.PutVarInt(buf, uint64(len(b.Transactions)))
	for _, tx := range b.Transactions {
		buf = append(buf, tx.Encode()...)
	}
	return buf
}

// DecodeBlock parses a block from its serialized form.
func DecodeBlock(data []byte) (*Block, error) {
	if len(data) < BlockHeaderLen {
		return nil, ErrFraming
	}
	header, err := DecodeBlockHeader(data[:BlockHeaderLen])
	if err != nil {
		return nil, err
	}

	c := bufcursor.New(data[BlockHeaderLen:])
	count, err := c.VarInt()
	if err != nil {
		return nil, err
	}

	txs := make([]*Transaction, count)
	for i := range txs {
		tx, err := decodeTransactionFromCursor(c)
		if err != nil {
			return nil, err
		}
		txs[i] = tx
	}

	return &Block{Header: header, Transactions: txs}, nil
}

// Hash returns the block's identity, equal to its header's hash.
func (b *Block) Hash() chainhash.Hash {
	return b.Header.Hash()
}
