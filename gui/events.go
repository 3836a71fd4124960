// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gui defines the event channel contract between the node and its
// presentation layer. The presentation layer itself (window toolkit, event
// loop, rendering) is an external collaborator and out of scope here; this
// package only carries the event types the node emits.
package gui

import (
	"github.com/LucasAlda/bitcoin-node/walletdb"
	"github.com/LucasAlda/bitcoin-node/wire"
)

// Event is implemented by every notification the node can send to a GUI.
type Event interface {
	isEvent()
}

// NewHeaders reports that the header chain advanced and how far IBD
// progress now stands.
type NewHeaders struct {
	TotalHeaders int
	Synced       bool
}

// NodeStateReady reports that the node finished constructing its initial
// state and is ready to accept GUI-driven actions.
type NodeStateReady struct{}

// WalletChanged reports that a specific wallet's movement history grew.
type WalletChanged struct {
	Wallet *walletdb.Wallet
}

// WalletsUpdated reports that the list of known wallets itself changed
// (one added, or the active selection changed).
type WalletsUpdated struct {
	Wallets []*walletdb.Wallet
	Active  string
}

// NewPendingTx reports a transaction accepted into the pending pool that
// was not originated locally.
type NewPendingTx struct {
	Tx *wire.Transaction
}

// TransactionSent reports the result of a local MakeTransaction call.
type TransactionSent struct {
	Tx *wire.Transaction
}

// Error reports a user-facing failure, such as InsufficientFunds.
type Error struct {
	Message string
}

func (NewHeaders) isEvent()      {}
func (NodeStateReady) isEvent()  {}
func (WalletChanged) isEvent()   {}
func (WalletsUpdated) isEvent()  {}
func (NewPendingTx) isEvent()    {}
func (TransactionSent) isEvent() {}
func (Error) isEvent()           {}
