// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "github.com/LucasAlda/bitcoin-node/internal/bufcursor"

// MsgPing carries a nonce that the peer must echo back in a pong, answered
// inline by the inbound worker without traversing the node loop.
type MsgPing struct {
	Nonce uint64
}

func (m *MsgPing) Command() string { return CmdPing }
func (m *MsgPing) Encode() []byte  { return bufcursor.PutUint64LE(nil, m.Nonce) }
func (m *MsgPing) Decode(payload []byte) error {
	nonce, err := bufcursor.New(payload).Uint64LE()
	if err != nil {
		return err
	}
	m.Nonce = nonce
	return nil
}

// MsgPong echoes the nonce of a MsgPing.
type MsgPong struct {
	Nonce uint64
}

func (m *MsgPong) Command() string { return CmdPong }
func (m *MsgPong) Encode() []byte  { return bufcursor.PutUint64LE(nil, m.Nonce) }
func (m *MsgPong) Decode(payload []byte) error {
	nonce, err := bufcursor.New(payload).Uint64LE()
	if err != nil {
		return err
	}
	m.Nonce = nonce
	return nil
}
