// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"github.com/LucasAlda/bitcoin-node/wire"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// PeerAction is a request the node-action loop (or the stale-request
// watcher) hands to the shared dispatcher for some outbound worker to
// carry out.
type PeerAction interface {
	isPeerAction()
}

// GetHeaders requests headers following Locator, stopping at HashStop.
type GetHeaders struct {
	Locator  []chainhash.Hash
	HashStop chainhash.Hash
}

// GetData requests the full bodies named by Inventory.
type GetData struct {
	Inventory []wire.InvVect
}

// SendTransaction broadcasts tx to whichever peer claims this action.
type SendTransaction struct {
	Tx *wire.Transaction
}

// Terminate causes exactly one outbound worker to exit.
type Terminate struct{}

func (GetHeaders) isPeerAction()      {}
func (GetData) isPeerAction()         {}
func (SendTransaction) isPeerAction() {}
func (Terminate) isPeerAction()       {}

// NodeAction is an event a peer's inbound worker (or the handshake/dial
// logic) hands to the node-action loop.
type NodeAction interface {
	isNodeAction()
}

// NewHeaders carries a headers message received from Addr.
type NewHeaders struct {
	Addr    string
	Headers []*wire.BlockHeader
}

// Block carries a full block body received from Addr.
type Block struct {
	Addr  string
	Hash  chainhash.Hash
	Block *wire.Block
}

// GetHeadersError reports that a GetHeaders PeerAction could not be
// delivered, so the node loop should re-enqueue it for another peer.
type GetHeadersError struct {
	Locator  []chainhash.Hash
	HashStop chainhash.Hash
}

// GetDataError reports that a GetData PeerAction could not be delivered.
type GetDataError struct {
	Inventory []wire.InvVect
}

// PendingTransaction carries a transaction the node should consider for its
// pending pool, whether announced directly or resolved via inv/getdata.
type PendingTransaction struct {
	Tx *wire.Transaction
}

// SendHeadersRequested reports that Addr asked to resolve a getheaders
// locator.
type SendHeadersRequested struct {
	Addr     string
	Locator  []chainhash.Hash
	HashStop chainhash.Hash
}

// SendHeaders reports that Addr asked to receive direct header pushes for
// future announcements.
type SendHeaders struct {
	Addr string
}

// PeerError reports that the peer at Addr failed and should be removed.
type PeerError struct {
	Addr string
	Err  error
}

// MakeTransaction is a GUI-originated request to assemble and broadcast a
// transaction spending the active wallet's UTXOs (spec §4.7). It shares
// the node-action queue with peer-originated events so transaction
// assembly is serialized the same way as every other state mutation.
type MakeTransaction struct {
	Outputs map[string]uint64
	Fee     uint64
}

func (NewHeaders) isNodeAction()           {}
func (Block) isNodeAction()                {}
func (GetHeadersError) isNodeAction()      {}
func (GetDataError) isNodeAction()         {}
func (PendingTransaction) isNodeAction()   {}
func (SendHeadersRequested) isNodeAction() {}
func (SendHeaders) isNodeAction()          {}
func (PeerError) isNodeAction()            {}
func (MakeTransaction) isNodeAction()      {}
