// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"github.com/LucasAlda/bitcoin-node/gui"
	"github.com/LucasAlda/bitcoin-node/peer"
	"github.com/LucasAlda/bitcoin-node/wire"
)

// chunkSize is how many hashes go into a single GetData/GetHeaders
// follow-up request, per spec §4.9/§4.10.
const chunkSize = 5

// Run is the single consumer of s.Actions (C11): it applies every action
// sequentially, making it the sole writer of s and therefore the
// linearization point spec §5 describes. It returns when s.Actions is
// closed.
func (s *State) Run() {
	for action := range s.Actions {
		s.handle(action)
	}
}

func (s *State) handle(action peer.NodeAction) {
	switch a := action.(type) {
	case peer.NewHeaders:
		s.handleNewHeaders(a)
	case peer.Block:
		s.handleBlock(a)
	case peer.GetHeadersError:
		s.Dispatcher.Enqueue(peer.GetHeaders{Locator: a.Locator, HashStop: a.HashStop})
	case peer.GetDataError:
		s.Dispatcher.Enqueue(peer.GetData{Inventory: a.Inventory})
	case peer.PendingTransaction:
		s.handlePendingTransaction(a)
	case peer.SendHeadersRequested:
		// The original this node is modeled on tracks send_headers
		// subscriptions but never answers an inbound getheaders request
		// with anything beyond the handshake's own sendheaders exchange;
		// this core preserves that gap rather than inventing a reply
		// path the source never exercises.
		log.Debugf("getheaders from %s: not answered (spec gap, see DESIGN.md)", a.Addr)
	case peer.MakeTransaction:
		s.handleMakeTransaction(a)
	case peer.SendHeaders:
		s.Mu.Lock()
		if p, ok := s.PeerByAddr(a.Addr); ok {
			p.SendHeaders = true
		}
		s.Mu.Unlock()
	case peer.PeerError:
		log.Warnf("peer %s: %v", a.Addr, a.Err)
		s.Mu.Lock()
		s.RemovePeer(a.Addr)
		s.Mu.Unlock()
	default:
		log.Warnf("node: unhandled action %T", action)
	}
}

// handleNewHeaders implements spec §4.9's NewHeaders handler. Pending
// blocks are recorded, and their GetData follow-ups enqueued, BEFORE the
// headers are appended to the chain, matching the original's ordering
// (see SPEC_FULL.md §4 implementation notes).
func (s *State) handleNewHeaders(a peer.NewHeaders) {
	s.Mu.Lock()

	var toFetch []*wire.BlockHeader
	for _, h := range a.Headers {
		if h.Timestamp > s.Params.IBDStartEpoch {
			toFetch = append(toFetch, h)
		}
	}

	var chunks [][]wire.InvVect
	for i := 0; i < len(toFetch); i += chunkSize {
		end := i + chunkSize
		if end > len(toFetch) {
			end = len(toFetch)
		}
		var inv []wire.InvVect
		for _, h := range toFetch[i:end] {
			hash := h.Hash()
			s.Pending.Append(hash)
			inv = append(inv, wire.InvVect{Type: wire.InvTypeBlock, Hash: hash})
		}
		chunks = append(chunks, inv)
	}

	n, err := s.Headers.Append(a.Headers)
	synced := s.Headers.IsSynced()
	total := s.Headers.Count()

	s.Mu.Unlock()

	if err != nil {
		log.Warnf("node: rejecting header batch from %s: %v", a.Addr, err)
		s.Dispatcher.Enqueue(peer.Terminate{})
		return
	}
	if n == 0 {
		return
	}

	for _, inv := range chunks {
		s.Dispatcher.Enqueue(peer.GetData{Inventory: inv})
	}

	s.emit(gui.NewHeaders{TotalHeaders: total, Synced: synced})
}

// handleBlock implements spec §4.9's Block handler.
func (s *State) handleBlock(a peer.Block) {
	s.Mu.Lock()

	if !s.Pending.IsPending(a.Hash) {
		s.Mu.Unlock()
		return
	}
	header, ok := s.Headers.ByHash(a.Hash)
	if !ok {
		s.Mu.Unlock()
		return
	}

	_, err := s.Blocks.AppendBlock(header, a.Block, s.Pending, s.Headers.Count())
	if err != nil {
		log.Errorf("node: persisting block %s: %v", a.Hash, err)
		s.Mu.Unlock()
		return
	}

	walletsChanged := s.Wallets.Update(a.Block, s.UTXO)
	s.Mempool.UpdateOnBlock(a.Block)

	// These two are deliberately independent of IsFullySynced, which ANDs
	// in UTXO.IsSynced(): gating the genesis build on "fully synced" would
	// make it unreachable, since UTXO can't be synced before its own first
	// build runs. The build fires exactly once, the moment headers and
	// blocks have both caught up and UTXO hasn't been built yet; every
	// block after that takes the incremental path (mirrors node_state.rs's
	// verify_sync: build when blocks.is_synced() && !utxo.is_synced()).
	switch {
	case s.UTXO.IsSynced():
		s.UTXO.UpdateFromBlock(a.Block, true)
	case s.Headers.IsSynced() && s.Blocks.DownloadedCount() == s.Headers.Count():
		s.buildUTXOFromHistory()
	}

	wallets := s.Wallets.All()
	active := ""
	if aw := s.Wallets.Active(); aw != nil {
		active = aw.Name
	}

	s.Mu.Unlock()

	if walletsChanged {
		s.emit(gui.WalletsUpdated{Wallets: wallets, Active: active})
	}
}

// buildUTXOFromHistory performs the genesis UTXO build (spec §4.5): it is
// called exactly once, when the block store has just finished downloading
// every expected block. Callers must hold s.Mu.
func (s *State) buildUTXOFromHistory() {
	headers := s.Headers.All()
	blocks := make([]*wire.Block, 0, len(headers))
	for _, h := range headers {
		b, err := s.Blocks.GetBlock(h.Hash())
		if err != nil {
			log.Errorf("node: building UTXO set: %v", err)
			return
		}
		blocks = append(blocks, b)
	}
	s.UTXO.BuildFromHistory(blocks)
}

func (s *State) handlePendingTransaction(a peer.PendingTransaction) {
	s.Mu.Lock()
	synced := s.IsFullySynced()
	var inserted bool
	if synced {
		inserted = s.Mempool.Append(a.Tx)
	}
	s.Mu.Unlock()

	if inserted {
		s.emit(gui.NewPendingTx{Tx: a.Tx})
	}
}

// handleMakeTransaction implements spec §4.9's MakeTransaction handler:
// assemble (§4.7), broadcast best-effort to every connected peer, append
// to the pending pool, and notify the GUI.
func (s *State) handleMakeTransaction(a peer.MakeTransaction) {
	s.Mu.Lock()
	tx, err := s.MakeTransaction(a.Outputs, a.Fee)
	if err != nil {
		s.Mu.Unlock()
		log.Warnf("node: make transaction: %v", err)
		s.emit(gui.Error{Message: err.Error()})
		return
	}
	peerCount := len(s.Peers())
	s.Mu.Unlock()

	// The shared dispatcher has no per-action addressing (spec §5.3: a
	// work-stealing fan-out), so broadcast is approximated by enqueuing
	// one SendTransaction per connected peer: since every outbound
	// worker loops back to the queue immediately after a send, each of
	// the peerCount idle workers claims exactly one in practice. This
	// matches spec §4.7's own "best-effort" broadcast language.
	for i := 0; i < peerCount; i++ {
		s.Dispatcher.Enqueue(peer.SendTransaction{Tx: tx})
	}

	s.Mu.Lock()
	s.Mempool.Append(tx)
	s.Mu.Unlock()

	s.emit(gui.TransactionSent{Tx: tx})
}
