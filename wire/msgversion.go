// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "github.com/LucasAlda/bitcoin-node/internal/bufcursor"

// MsgVersion is the first message of the handshake, per spec §6: protocol
// version, services, timestamp, receiver/sender addresses, nonce,
// user-agent and the sender's chain height, plus a relay preference.
type MsgVersion struct {
	ProtocolVersion int32
	Services        uint64
	Timestamp       int64
	AddrRecv        NetAddr
	AddrFrom        NetAddr
	Nonce           uint64
	UserAgent       string
	StartHeight     int32
	Relay           bool
}

func (m *MsgVersion) Command() string { return CmdVersion }

func (m *MsgVersion) Encode() []byte {
	buf := bufcursor.PutInt32LE(nil, m.ProtocolVersion)
	buf = bufcursor.PutUint64LE(buf, m.Services)
	buf = bufcursor.PutUint64LE(buf, uint64(m.Timestamp))
	buf = append(buf, m.AddrRecv.encode()...)
	buf = append(buf, m.AddrFrom.encode()...)
	buf = bufcursor.PutUint64LE(buf, m.Nonce)
	buf = bufcursor.PutVarString(buf, m.UserAgent)
	buf = bufcursor.PutInt32LE(buf, m.StartHeight)
	relay := byte(0)
	if m.Relay {
		relay = 1
	}
	return append(buf, relay)
}

func (m *MsgVersion) Decode(payload []byte) error {
	c := bufcursor.New(payload)

	protoVersion, err := c.Int32LE()
	if err != nil {
		return err
	}
	services, err := c.Uint64LE()
	if err != nil {
		return err
	}
	timestamp, err := c.Uint64LE()
	if err != nil {
		return err
	}
	addrRecv, err := decodeNetAddr(c)
	if err != nil {
		return err
	}
	addrFrom, err := decodeNetAddr(c)
	if err != nil {
		return err
	}
	nonce, err := c.Uint64LE()
	if err != nil {
		return err
	}
	userAgent, err := c.VarString()
	if err != nil {
		return err
	}
	startHeight, err := c.Int32LE()
	if err != nil {
		return err
	}
	relay, err := c.Uint8()
	if err != nil {
		return err
	}

	m.ProtocolVersion = protoVersion
	m.Services = services
	m.Timestamp = int64(timestamp)
	m.AddrRecv = addrRecv
	m.AddrFrom = addrFrom
	m.Nonce = nonce
	m.UserAgent = userAgent
	m.StartHeight = startHeight
	m.Relay = relay != 0
	return nil
}
