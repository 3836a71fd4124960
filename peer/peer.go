// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package peer implements a single peer connection: the handshake in both
// caller and callee roles, and the two per-peer worker loops (outbound
// command consumer, inbound message reader) that translate between the
// wire protocol and the node's action queues.
package peer

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/LucasAlda/bitcoin-node/wire"
)

// ErrHandshakeFailed wraps any framing, checksum, or unexpected-command
// error encountered during the handshake. The node does not retry the same
// address after this.
var ErrHandshakeFailed = errors.New("handshake failed")

// Peer is a single connected node, the stream it owns, and the state
// negotiated during its handshake.
type Peer struct {
	Addr            string
	Services        uint64
	ProtocolVersion int32
	BenchmarkMillis int64
	SendHeaders     bool
	RequestedHeaders bool

	conn  net.Conn
	magic uint32
}

// HandshakeParams bundles the values this node offers a peer in its own
// version message.
type HandshakeParams struct {
	Magic           uint32
	ProtocolVersion int32
	Services        uint64
	Nonce           uint64
	StartHeight     int32
	UserAgent       string
}

func versionMessage(p HandshakeParams) *wire.MsgVersion {
	now := time.Now().Unix()
	return &wire.MsgVersion{
		ProtocolVersion: p.ProtocolVersion,
		Services:        p.Services,
		Timestamp:       now,
		Nonce:           p.Nonce,
		UserAgent:       p.UserAgent,
		StartHeight:     p.StartHeight,
		Relay:           true,
	}
}

// Dial opens a TCP connection to addr and performs the caller-role
// handshake: send version, read version, read verack, send verack, send
// sendheaders (spec §4.8).
func Dial(addr string, p HandshakeParams) (*Peer, error) {
	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrHandshakeFailed, addr, err)
	}

	start := time.Now()
	if err := wire.WriteMessage(conn, p.Magic, versionMessage(p)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: send version: %v", ErrHandshakeFailed, err)
	}

	peerVersion, err := readExpected[*wire.MsgVersion](conn, p.Magic)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if _, err := readExpected[*wire.MsgVerAck](conn, p.Magic); err != nil {
		conn.Close()
		return nil, err
	}

	if err := wire.WriteMessage(conn, p.Magic, &wire.MsgVerAck{}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: send verack: %v", ErrHandshakeFailed, err)
	}
	if err := wire.WriteMessage(conn, p.Magic, &wire.MsgSendHeaders{}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: send sendheaders: %v", ErrHandshakeFailed, err)
	}

	return &Peer{
		Addr:            addr,
		Services:        peerVersion.Services,
		ProtocolVersion: peerVersion.ProtocolVersion,
		BenchmarkMillis: time.Since(start).Milliseconds(),
		conn:            conn,
		magic:           p.Magic,
	}, nil
}

// Accept performs the callee-role handshake over an already-accepted
// connection: read version, send version, send verack, read verack, send
// sendheaders (spec §4.8).
func Accept(conn net.Conn, p HandshakeParams) (*Peer, error) {
	start := time.Now()

	peerVersion, err := readExpected[*wire.MsgVersion](conn, p.Magic)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := wire.WriteMessage(conn, p.Magic, versionMessage(p)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: send version: %v", ErrHandshakeFailed, err)
	}
	if err := wire.WriteMessage(conn, p.Magic, &wire.MsgVerAck{}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: send verack: %v", ErrHandshakeFailed, err)
	}

	if _, err := readExpected[*wire.MsgVerAck](conn, p.Magic); err != nil {
		conn.Close()
		return nil, err
	}

	if err := wire.WriteMessage(conn, p.Magic, &wire.MsgSendHeaders{}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: send sendheaders: %v", ErrHandshakeFailed, err)
	}

	return &Peer{
		Addr:            conn.RemoteAddr().String(),
		Services:        peerVersion.Services,
		ProtocolVersion: peerVersion.ProtocolVersion,
		BenchmarkMillis: time.Since(start).Milliseconds(),
		conn:            conn,
		magic:           p.Magic,
	}, nil
}

// readExpected reads one message and asserts its concrete type, the
// handshake's way of failing fast on an unexpected command per spec §4.8.
func readExpected[T wire.Message](conn net.Conn, magic uint32) (T, error) {
	var zero T
	msg, err := wire.ReadMessage(conn, magic)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}
	typed, ok := msg.(T)
	if !ok {
		return zero, fmt.Errorf("%w: unexpected message %s", ErrHandshakeFailed, msg.Command())
	}
	return typed, nil
}

// Close releases the underlying connection. Closing it causes the inbound
// worker to fail its next read and exit; there is no other cancellation
// signal (spec §5).
func (p *Peer) Close() error {
	return p.conn.Close()
}
