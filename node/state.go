// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node couples a set of peer connections to a single shared node
// state through two queues: an inbound NodeAction queue consumed by a
// single loop (C11), and an outbound PeerAction dispatcher fanned out to
// every peer's outbound worker (C12). A periodic watcher (C13) reissues
// overdue block requests, and a supervisor (C14) wires all of it together.
package node

import (
	"sort"
	"sync"

	"github.com/LucasAlda/bitcoin-node/blocksync"
	"github.com/LucasAlda/bitcoin-node/blockstore"
	"github.com/LucasAlda/bitcoin-node/chaincfg"
	"github.com/LucasAlda/bitcoin-node/gui"
	"github.com/LucasAlda/bitcoin-node/headerchain"
	"github.com/LucasAlda/bitcoin-node/mempool"
	"github.com/LucasAlda/bitcoin-node/peer"
	"github.com/LucasAlda/bitcoin-node/utxoset"
	"github.com/LucasAlda/bitcoin-node/walletdb"
)

// State is the one shared mutable object in the node, guarded by a single
// exclusive lock per spec §5. The action loop (Run) and the watcher
// acquire Mu, and so does the Supervisor when it registers a new peer or
// reads the chain tip to request headers; peer workers never touch it
// directly, communicating instead through the Dispatcher and the
// NodeAction channel.
type State struct {
	Mu sync.Mutex

	Params chaincfg.Params

	Headers *headerchain.Chain
	Pending *blocksync.PendingBlocks
	Blocks  *blockstore.Store
	UTXO    *utxoset.Set
	Wallets *walletdb.Store
	Mempool *mempool.Pool

	peers map[string]*peer.Peer

	Dispatcher *peer.Dispatcher
	Actions    chan peer.NodeAction
	Events     chan gui.Event
}

// New returns a fully wired, empty State rooted at params and storeRoot.
func New(params chaincfg.Params, storeRoot string) *State {
	return &State{
		Params:     params,
		Headers:    headerchain.New(params.GenesisHeader),
		Pending:    blocksync.New(),
		Blocks:     blockstore.New(storeRoot),
		UTXO:       utxoset.New(),
		Wallets:    walletdb.NewStore(),
		Mempool:    mempool.New(),
		peers:      make(map[string]*peer.Peer),
		Dispatcher: peer.NewDispatcher(),
		Actions:    make(chan peer.NodeAction, 4096),
		Events:     make(chan gui.Event, 256),
	}
}

// AddPeer registers p under its address. Callers must hold Mu.
func (s *State) AddPeer(p *peer.Peer) {
	s.peers[p.Addr] = p
}

// RemovePeer drops the peer at addr, if any. Callers must hold Mu.
func (s *State) RemovePeer(addr string) {
	delete(s.peers, addr)
}

// PeerByAddr looks up a connected peer by address. Callers must hold Mu.
func (s *State) PeerByAddr(addr string) (*peer.Peer, bool) {
	p, ok := s.peers[addr]
	return p, ok
}

// Peers returns every connected peer. Callers must hold Mu; the returned
// slice is a fresh copy safe to range over after releasing the lock.
func (s *State) Peers() []*peer.Peer {
	list := make([]*peer.Peer, 0, len(s.peers))
	for _, p := range s.peers {
		list = append(list, p)
	}
	return list
}

// FastestPeer returns the connected peer with the lowest handshake
// benchmark, or nil if no peer is connected. Supplements spec.md's
// Peer.benchmark field description ("used later for fastest-peer
// selection") with the accessor the original's node_state.rs provides.
// Callers must hold Mu.
func (s *State) FastestPeer() *peer.Peer {
	var fastest *peer.Peer
	for _, p := range s.peers {
		if fastest == nil || p.BenchmarkMillis < fastest.BenchmarkMillis {
			fastest = p
		}
	}
	return fastest
}

// HeadersBroadcastTargets returns the addresses of every peer that has
// asked (via sendheaders) to receive direct header pushes, in a
// deterministic order so tests are reproducible. Callers must hold Mu.
func (s *State) HeadersBroadcastTargets() []string {
	var addrs []string
	for addr, p := range s.peers {
		if p.SendHeaders {
			addrs = append(addrs, addr)
		}
	}
	sort.Strings(addrs)
	return addrs
}

// IsFullySynced reports whether headers, blocks, and UTXO have all reached
// the chain tip (spec invariant 4). Callers must hold Mu.
func (s *State) IsFullySynced() bool {
	return s.Headers.IsSynced() &&
		s.Blocks.DownloadedCount() == s.Headers.Count() &&
		s.UTXO.IsSynced()
}

// emit delivers ev to the GUI event channel without blocking the caller;
// a full channel (no GUI consuming events) drops the event rather than
// stalling the node loop.
func (s *State) emit(ev gui.Event) {
	select {
	case s.Events <- ev:
	default:
		log.Warnf("dropping event %T: GUI channel full", ev)
	}
}
