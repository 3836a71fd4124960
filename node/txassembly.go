// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"errors"
	"fmt"
	"sort"

	"github.com/LucasAlda/bitcoin-node/txscript"
	"github.com/LucasAlda/bitcoin-node/utxoset"
	"github.com/LucasAlda/bitcoin-node/wire"
)

// ErrInsufficientFunds is returned by MakeTransaction when the active
// wallet's balance cannot cover the requested outputs plus fee.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrNoActiveWallet is returned by MakeTransaction when no wallet is
// selected.
var ErrNoActiveWallet = errors.New("no active wallet")

// candidate pairs an owned outpoint with the entry it spends, so selection
// can sort by value without repeated map lookups.
type candidate struct {
	outpoint wire.OutPoint
	entry    utxoset.Entry
}

// MakeTransaction implements spec §4.7: it requires an active wallet,
// computes total = fee + Σ outputs, fails with ErrInsufficientFunds if
// total exceeds the wallet's balance, otherwise greedily selects owned
// UTXOs sorted by value descending until their sum reaches total. Each
// input's script_sig is set to the sender's own script_pubkey as a
// pre-sign placeholder (spec §9 open question 1: ECDSA signing is not
// implemented by this core). Any positive change is returned to the
// sender as an additional output. Callers must hold s.Mu.
func (s *State) MakeTransaction(outputs map[string]uint64, fee uint64) (*wire.Transaction, error) {
	wallet := s.Wallets.Active()
	if wallet == nil {
		return nil, ErrNoActiveWallet
	}

	var total uint64
	for _, v := range outputs {
		total += v
	}
	total += fee

	balance := s.UTXO.WalletBalance(wallet.PubKeyHash)
	if total > balance {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, total, balance)
	}

	owned := s.UTXO.WalletUTXO(wallet.PubKeyHash)
	candidates := make([]candidate, 0, len(owned))
	for op, entry := range owned {
		candidates = append(candidates, candidate{outpoint: op, entry: entry})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].entry.Output.Value > candidates[j].entry.Output.Value
	})

	senderScript := txscript.PayToPubKeyHashScript(wallet.PubKeyHash)

	var selected uint64
	var inputs []wire.Input
	for _, c := range candidates {
		if selected >= total {
			break
		}
		inputs = append(inputs, wire.Input{
			PreviousOutput: c.outpoint,
			ScriptSig:      senderScript,
			Sequence:       0xFFFFFFFF,
		})
		selected += c.entry.Output.Value
	}

	txOutputs := make([]wire.Output, 0, len(outputs)+1)
	for pubKeyHash, value := range outputs {
		txOutputs = append(txOutputs, wire.Output{
			Value:        value,
			ScriptPubKey: txscript.PayToPubKeyHashScript([]byte(pubKeyHash)),
		})
	}
	if change := selected - total; change > 0 {
		txOutputs = append(txOutputs, wire.Output{
			Value:        change,
			ScriptPubKey: senderScript,
		})
	}

	return &wire.Transaction{
		Version:  1,
		Inputs:   inputs,
		Outputs:  txOutputs,
		LockTime: 0,
	}, nil
}
