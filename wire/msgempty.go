// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// MsgVerAck acknowledges a version message. It carries no payload.
type MsgVerAck struct{}

func (m *MsgVerAck) Command() string          { return CmdVerAck }
func (m *MsgVerAck) Encode() []byte           { return nil }
func (m *MsgVerAck) Decode(payload []byte) error { return nil }

// MsgSendHeaders requests that new blocks be announced with a direct
// headers push rather than an inv. It carries no payload.
type MsgSendHeaders struct{}

func (m *MsgSendHeaders) Command() string          { return CmdSendHeaders }
func (m *MsgSendHeaders) Encode() []byte           { return nil }
func (m *MsgSendHeaders) Decode(payload []byte) error { return nil }
