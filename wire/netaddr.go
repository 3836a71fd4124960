// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "github.com/LucasAlda/bitcoin-node/internal/bufcursor"

// NetAddr is the address record embedded in a version message: a services
// bitfield, a 16-byte IP (v4 addresses are mapped), and a big-endian port.
// Unlike the full address message used for peer discovery gossip, this node
// never relays NetAddr records beyond the handshake, so no timestamp field
// is carried.
type NetAddr struct {
	Services uint64
	IP       [16]byte
	Port     uint16
}

func (a NetAddr) encode() []byte {
	buf := bufcursor.PutUint64BE(nil, a.Services)
	buf = append(buf, a.IP[:]...)
	buf = bufcursor.PutUint16BE(buf, a.Port)
	return buf
}

func decodeNetAddr(c *bufcursor.Cursor) (NetAddr, error) {
	services, err := c.Uint64BE()
	if err != nil {
		return NetAddr{}, err
	}
	ipBytes, err := c.Bytes(16)
	if err != nil {
		return NetAddr{}, err
	}
	port, err := c.Uint16BE()
	if err != nil {
		return NetAddr{}, err
	}
	var addr NetAddr
	addr.Services = services
	copy(addr.IP[:], ipBytes)
	addr.Port = port
	return addr, nil
}
