// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/LucasAlda/bitcoin-node/chaincfg"
	"github.com/LucasAlda/bitcoin-node/config"
	"github.com/LucasAlda/bitcoin-node/peer"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// ErrNoPeersConnected is returned by Supervisor.Start when DNS resolution
// succeeded but every peer failed its handshake, leaving the node with no
// way to sync.
var ErrNoPeersConnected = errors.New("no peers connected")

// Supervisor owns the node's shared State and the listening socket, wires
// every outbound/inbound peer worker to it, and dials the configured DNS
// seed at startup (spec C14).
type Supervisor struct {
	State  *State
	Cfg    *config.Config
	Params chaincfg.Params

	listener net.Listener
}

// NewSupervisor builds a Supervisor over a fresh State rooted at cfg's
// store path.
func NewSupervisor(cfg *config.Config, params chaincfg.Params) *Supervisor {
	return &Supervisor{
		State:  New(params, cfg.StorePath),
		Cfg:    cfg,
		Params: params,
	}
}

// resolveSeed resolves the configured DNS seed host to a list of
// "ip:port" addresses. DNS resolution mechanics are an explicit
// out-of-scope concern (spec §1); this is the thin seam spec.md names.
func resolveSeed(seed string, port uint16) ([]string, error) {
	ips, err := net.LookupHost(seed)
	if err != nil {
		return nil, fmt.Errorf("node: resolve seed %s: %w", seed, err)
	}
	addrs := make([]string, len(ips))
	for i, ip := range ips {
		addrs[i] = net.JoinHostPort(ip, strconv.Itoa(int(port)))
	}
	return addrs, nil
}

func (sup *Supervisor) handshakeParams() peer.HandshakeParams {
	return peer.HandshakeParams{
		Magic:           sup.Params.Net,
		ProtocolVersion: sup.Cfg.ProtocolVersion,
		Services:        0,
		Nonce:           0,
		StartHeight:     int32(sup.State.Headers.Count()),
		UserAgent:       "/bitcoin-node:0.1.0/",
	}
}

// Start resolves the DNS seed, dials up to Cfg.NPeers of the returned
// addresses, opens a listening socket unless Cfg.ClientOnly, and launches
// the node-action loop and the stale-request watcher. Dialing stops once
// Cfg.NPeers peers are connected or every resolved address has been tried;
// the node
// loop and watcher keep running in background goroutines after Start
// returns.
func (sup *Supervisor) Start() error {
	addrs, err := resolveSeed(sup.Cfg.Seed, sup.Cfg.Port)
	if err != nil {
		return err
	}

	connected := 0
	for _, addr := range addrs {
		if connected >= int(sup.Cfg.NPeers) {
			break
		}
		if err := sup.dial(addr); err != nil {
			log.Warnf("node: dialing %s: %v", addr, err)
			continue
		}
		connected++
	}
	if connected == 0 {
		return ErrNoPeersConnected
	}

	if !sup.Cfg.ClientOnly {
		if err := sup.listen(); err != nil {
			return err
		}
	}

	go sup.State.Run()
	go sup.State.WatchStaleRequests()

	return nil
}

// dial calls addr, completing the caller-role handshake, registers the
// resulting Peer, and spawns its two workers.
func (sup *Supervisor) dial(addr string) error {
	p, err := peer.Dial(addr, sup.handshakeParams())
	if err != nil {
		return err
	}
	sup.adoptPeer(p)
	sup.requestNextHeaders()

	return nil
}

// requestNextHeaders enqueues a GetHeaders request locating from the
// chain's current tip, or from the configured genesis if no header has
// been accepted yet.
func (sup *Supervisor) requestNextHeaders() {
	sup.State.Mu.Lock()
	tip := sup.Params.GenesisHeader.Hash()
	if headers := sup.State.Headers.GetLastHeaders(1); len(headers) > 0 {
		tip = headers[0].Hash()
	}
	sup.State.Mu.Unlock()

	sup.State.Dispatcher.Enqueue(peer.GetHeaders{Locator: []chainhash.Hash{tip}})
}

// listen opens a TCP listener on Cfg.Port and accepts incoming peers in a
// background goroutine.
func (sup *Supervisor) listen() error {
	ln, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(int(sup.Cfg.Port))))
	if err != nil {
		return fmt.Errorf("node: listen: %w", err)
	}
	sup.listener = ln

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go sup.accept(conn)
		}
	}()
	return nil
}

func (sup *Supervisor) accept(conn net.Conn) {
	p, err := peer.Accept(conn, sup.handshakeParams())
	if err != nil {
		log.Warnf("node: accepting inbound peer: %v", err)
		return
	}
	sup.adoptPeer(p)
}

// adoptPeer registers p and spawns its outbound and inbound workers.
func (sup *Supervisor) adoptPeer(p *peer.Peer) {
	sup.State.Mu.Lock()
	sup.State.AddPeer(p)
	sup.State.Mu.Unlock()

	go p.RunOutbound(sup.State.Dispatcher, sup.State.Actions)
	go p.RunInbound(sup.State.Actions, sup.State.Dispatcher)
}

// Close shuts down the listening socket, if any.
func (sup *Supervisor) Close() error {
	if sup.listener == nil {
		return nil
	}
	return sup.listener.Close()
}
