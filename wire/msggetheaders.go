// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/LucasAlda/bitcoin-node/internal/bufcursor"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// MsgGetHeaders requests headers following the first locator hash the peer
// recognizes, stopping at HashStop if reached before the 2000-header limit.
type MsgGetHeaders struct {
	Version  uint32
	Locator  []chainhash.Hash
	HashStop chainhash.Hash
}

func (m *MsgGetHeaders) Command() string { return CmdGetHeaders }

func (m *MsgGetHeaders) Encode() []byte {
	buf := bufcursor.PutUint32LE(nil, m.Version)
	buf = bufcursor.PutVarInt(buf, uint64(len(m.Locator)))
	for _, h := range m.Locator {
		buf = append(buf, h[:]...)
	}
	buf = append(buf, m.HashStop[:]...)
	return buf
}

func (m *MsgGetHeaders) Decode(payload []byte) error {
	c := bufcursor.New(payload)

	version, err := c.Uint32LE()
	if err != nil {
		return err
	}
	count, err := c.VarInt()
	if err != nil {
		return err
	}
	locator := make([]chainhash.Hash, count)
	for i := range locator {
		h, err := c.Hash32()
		if err != nil {
			return err
		}
		locator[i] = chainhash.Hash(h)
	}
	hashStop, err := c.Hash32()
	if err != nil {
		return err
	}

	m.Version = version
	m.Locator = locator
	m.HashStop = chainhash.Hash(hashStop)
	return nil
}
