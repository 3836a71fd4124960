package walletdb

import (
	"bytes"
	"testing"

	"github.com/LucasAlda/bitcoin-node/txscript"
	"github.com/LucasAlda/bitcoin-node/wire"
)

func p2pkhScript(hash []byte) []byte {
	return txscript.PayToPubKeyHashScript(hash)
}

func TestAddressRoundTrip(t *testing.T) {
	t.Parallel()

	w, err := NewWallet("alice")
	if err != nil {
		t.Fatalf("NewWallet() error = %v", err)
	}

	got, err := DecodeAddress(w.Address)
	if err != nil {
		t.Fatalf("DecodeAddress() error = %v", err)
	}
	if !bytes.Equal(got, w.PubKeyHash) {
		t.Errorf("DecodeAddress() = %x, want %x", got, w.PubKeyHash)
	}
}

func TestDecodeAddressRejectsBadChecksum(t *testing.T) {
	t.Parallel()

	w, err := NewWallet("bob")
	if err != nil {
		t.Fatalf("NewWallet() error = %v", err)
	}

	tampered := w.Address[:len(w.Address)-1] + "x"
	if _, err := DecodeAddress(tampered); err == nil {
		t.Fatalf("DecodeAddress(tampered) want error, got nil")
	}
}

func TestRecordMovementSkipsZeroDelta(t *testing.T) {
	t.Parallel()

	w, _ := NewWallet("carol")
	if w.RecordMovement(wire.OutPoint{}.Hash, 0, wire.OutPoint{}.Hash, true) {
		t.Errorf("RecordMovement(delta=0) = true, want false")
	}
	if len(w.History) != 0 {
		t.Errorf("History has %d entries after zero-delta movement, want 0", len(w.History))
	}

	if !w.RecordMovement(wire.OutPoint{}.Hash, 500, wire.OutPoint{}.Hash, false) {
		t.Errorf("RecordMovement(delta=500) = false, want true")
	}
	if len(w.History) != 1 {
		t.Errorf("History has %d entries, want 1", len(w.History))
	}
}

func TestSeedHistoryRecordsOwnedOutputsOnly(t *testing.T) {
	t.Parallel()

	w, _ := NewWallet("dave")
	other, _ := NewWallet("erin")

	ownedOut := wire.Output{Value: 100, ScriptPubKey: p2pkhScript(w.PubKeyHash)}
	foreignOut := wire.Output{Value: 200, ScriptPubKey: p2pkhScript(other.PubKeyHash)}

	utxo := map[wire.OutPoint]wire.Output{
		{Index: 0}: ownedOut,
		{Index: 1}: foreignOut,
	}
	w.SeedHistory(utxo)

	if len(w.History) != 1 || w.History[0].Delta != 100 {
		t.Fatalf("SeedHistory() = %+v, want one entry of delta 100", w.History)
	}
}
