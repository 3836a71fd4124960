package utxoset

import (
	"bytes"
	"testing"

	"github.com/LucasAlda/bitcoin-node/txscript"
	"github.com/LucasAlda/bitcoin-node/wire"
)

func p2pkhOutput(value uint64, hash []byte) wire.Output {
	return wire.Output{Value: value, ScriptPubKey: txscript.PayToPubKeyHashScript(hash)}
}

func TestBuildFromHistoryAndWalletQueries(t *testing.T) {
	t.Parallel()

	aliceHash := bytes.Repeat([]byte{0xAA}, 20)
	bobHash := bytes.Repeat([]byte{0xBB}, 20)

	coinbase := &wire.Transaction{
		Version: 1,
		Outputs: []wire.Output{
			p2pkhOutput(1000, aliceHash),
			p2pkhOutput(2000, bobHash),
		},
	}
	block1 := &wire.Block{
		Header:       &wire.BlockHeader{Nonce: 1},
		Transactions: []*wire.Transaction{coinbase},
	}

	spend := &wire.Transaction{
		Version: 1,
		Inputs: []wire.Input{
			{PreviousOutput: wire.OutPoint{Hash: coinbase.Hash(), Index: 0}},
		},
		Outputs: []wire.Output{
			p2pkhOutput(1000, bobHash),
		},
	}
	block2 := &wire.Block{
		Header:       &wire.BlockHeader{Nonce: 2},
		Transactions: []*wire.Transaction{spend},
	}

	s := New()
	s.BuildFromHistory([]*wire.Block{block1, block2})

	if !s.IsSynced() {
		t.Fatalf("IsSynced() = false after BuildFromHistory")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (bob's original 2000 + bob's new 1000)", s.Len())
	}
	if got := s.WalletBalance(aliceHash); got != 0 {
		t.Errorf("WalletBalance(alice) = %d, want 0 (spent)", got)
	}
	if got := s.WalletBalance(bobHash); got != 3000 {
		t.Errorf("WalletBalance(bob) = %d, want 3000", got)
	}

	utxo := s.WalletUTXO(bobHash)
	if len(utxo) != 2 {
		t.Errorf("WalletUTXO(bob) returned %d entries, want 2", len(utxo))
	}
}

func TestUpdateFromBlockIncremental(t *testing.T) {
	t.Parallel()

	hash := bytes.Repeat([]byte{0x01}, 20)
	tx := &wire.Transaction{
		Version: 1,
		Outputs: []wire.Output{p2pkhOutput(500, hash)},
	}
	block := &wire.Block{Header: &wire.BlockHeader{Nonce: 5}, Transactions: []*wire.Transaction{tx}}

	s := New()
	s.UpdateFromBlock(block, true)

	if got := s.WalletBalance(hash); got != 500 {
		t.Fatalf("WalletBalance() = %d, want 500", got)
	}
}
