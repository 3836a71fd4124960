// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/LucasAlda/bitcoin-node/internal/bufcursor"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// Inventory type identifiers, per spec §6's getdata/inv payloads.
const (
	InvTypeError = uint32(0)
	InvTypeTx    = uint32(1)
	InvTypeBlock = uint32(2)
)

// InvVect is a single (type, hash) entry carried by inv and getdata
// messages.
type InvVect struct {
	Type uint32
	Hash chainhash.Hash
}

func (iv InvVect) encode() []byte {
	buf := bufcursor.PutUint32LE(nil, iv.Type)
	return append(buf, iv.Hash[:]...)
}

func decodeInvVect(c *bufcursor.Cursor) (InvVect, error) {
	t, err := c.Uint32LE()
	if err != nil {
		return InvVect{}, err
	}
	h, err := c.Hash32()
	if err != nil {
		return InvVect{}, err
	}
	return InvVect{Type: t, Hash: chainhash.Hash(h)}, nil
}

func encodeInvList(list []InvVect) []byte {
	buf := bufcursor.PutVarInt(nil, uint64(len(list)))
	for _, iv := range list {
		buf = append(buf, iv.encode()...)
	}
	return buf
}

func decodeInvList(c *bufcursor.Cursor) ([]InvVect, error) {
	count, err := c.VarInt()
	if err != nil {
		return nil, err
	}
	list := make([]InvVect, count)
	for i := range list {
		iv, err := decodeInvVect(c)
		if err != nil {
			return nil, err
		}
		list[i] = iv
	}
	return list, nil
}
