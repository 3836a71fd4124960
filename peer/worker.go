// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"errors"
	"fmt"

	"github.com/LucasAlda/bitcoin-node/wire"
)

// RunOutbound dequeues one PeerAction at a time from d and serializes it to
// p until Terminate is received or a write fails. On write failure it
// reports PeerError to out and returns; it never retries.
func (p *Peer) RunOutbound(d *Dispatcher, out chan<- NodeAction) {
	for {
		action := d.Next()
		if _, ok := action.(Terminate); ok {
			return
		}

		msg, err := encodePeerAction(action)
		if err != nil {
			log.Warnf("peer %s: %v", p.Addr, err)
			continue
		}

		if err := wire.WriteMessage(p.conn, p.magic, msg); err != nil {
			out <- PeerError{Addr: p.Addr, Err: fmt.Errorf("outbound write: %w", err)}
			return
		}
	}
}

func encodePeerAction(action PeerAction) (wire.Message, error) {
	switch a := action.(type) {
	case GetHeaders:
		return &wire.MsgGetHeaders{Locator: a.Locator, HashStop: a.HashStop}, nil
	case GetData:
		return &wire.MsgGetData{Inventory: a.Inventory}, nil
	case SendTransaction:
		return &wire.MsgTx{Transaction: *a.Tx}, nil
	default:
		return nil, fmt.Errorf("peer: unencodable action %T", action)
	}
}

// RunInbound repeatedly reads a framed message from p and translates it
// into a NodeAction, except ping which is answered inline without
// traversing the node loop, and inv which is turned directly into a
// GetData request enqueued on d (spec §4.8). It exits (reporting
// PeerError) on the first read or decode failure; ErrUnknownCommand is
// instead logged and the loop continues, per the soft-drop policy for that
// error.
func (p *Peer) RunInbound(out chan<- NodeAction, d *Dispatcher) {
	for {
		msg, err := wire.ReadMessage(p.conn, p.magic)
		if err != nil {
			if errors.Is(err, wire.ErrUnknownCommand) {
				log.Debugf("peer %s: %v", p.Addr, err)
				continue
			}
			out <- PeerError{Addr: p.Addr, Err: fmt.Errorf("inbound read: %w", err)}
			return
		}

		action, reply, request := translateInbound(p.Addr, msg)
		switch {
		case reply != nil:
			if err := wire.WriteMessage(p.conn, p.magic, reply); err != nil {
				out <- PeerError{Addr: p.Addr, Err: fmt.Errorf("pong write: %w", err)}
				return
			}
		case request != nil:
			d.Enqueue(request)
		case action != nil:
			out <- action
		}
	}
}

// translateInbound maps one wire message to the NodeAction it produces.
// ping is special, returning a reply message instead, since it is handled
// inline by the inbound worker. inv is also special, returning a PeerAction
// request instead, since a getdata follow-up is issued immediately rather
// than waiting on the node loop (spec §4.8).
func translateInbound(addr string, msg wire.Message) (action NodeAction, reply wire.Message, request PeerAction) {
	switch m := msg.(type) {
	case *wire.MsgHeaders:
		return NewHeaders{Addr: addr, Headers: m.Headers}, nil, nil
	case *wire.MsgBlock:
		block := m.Block
		return Block{Addr: addr, Hash: block.Hash(), Block: &block}, nil, nil
	case *wire.MsgInv:
		if len(m.Inventory) == 0 {
			return nil, nil, nil
		}
		return nil, nil, GetData{Inventory: m.Inventory}
	case *wire.MsgTx:
		tx := m.Transaction
		return PendingTransaction{Tx: &tx}, nil, nil
	case *wire.MsgGetHeaders:
		return SendHeadersRequested{Addr: addr, Locator: m.Locator, HashStop: m.HashStop}, nil, nil
	case *wire.MsgPing:
		return nil, &wire.MsgPong{Nonce: m.Nonce}, nil
	case *wire.MsgSendHeaders:
		return SendHeaders{Addr: addr}, nil, nil
	default:
		log.Debugf("peer %s: dropping unhandled command %s", addr, msg.Command())
		return nil, nil, nil
	}
}
