// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "github.com/LucasAlda/bitcoin-node/internal/bufcursor"

// MsgInv announces known blocks or transactions to a peer.
type MsgInv struct {
	Inventory []InvVect
}

func (m *MsgInv) Command() string { return CmdInv }
func (m *MsgInv) Encode() []byte  { return encodeInvList(m.Inventory) }
func (m *MsgInv) Decode(payload []byte) error {
	list, err := decodeInvList(bufcursor.New(payload))
	if err != nil {
		return err
	}
	m.Inventory = list
	return nil
}

// MsgGetData requests the full bodies named by an inventory list.
type MsgGetData struct {
	Inventory []InvVect
}

func (m *MsgGetData) Command() string { return CmdGetData }
func (m *MsgGetData) Encode() []byte  { return encodeInvList(m.Inventory) }
func (m *MsgGetData) Decode(payload []byte) error {
	list, err := decodeInvList(bufcursor.New(payload))
	if err != nil {
		return err
	}
	m.Inventory = list
	return nil
}
