package walletdb

import (
	"testing"

	"github.com/LucasAlda/bitcoin-node/wire"
)

func TestStoreAddSelectsFirstWalletActive(t *testing.T) {
	t.Parallel()

	s := NewStore()
	w1, _ := NewWallet("first")
	w2, _ := NewWallet("second")
	s.Add(w1, nil)
	s.Add(w2, nil)

	if s.Active().Name != "first" {
		t.Fatalf("Active().Name = %q, want %q", s.Active().Name, "first")
	}

	if err := s.SetActive("second"); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if s.Active().Name != "second" {
		t.Fatalf("Active().Name = %q, want %q", s.Active().Name, "second")
	}

	if err := s.SetActive("nonexistent"); err == nil {
		t.Fatalf("SetActive(nonexistent) want error, got nil")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewStore()
	w, _ := NewWallet("alice")
	s.Add(w, nil)
	w.RecordMovement(wire.OutPoint{Index: 1}.Hash, 12345, wire.OutPoint{Index: 2}.Hash, true)
	w.RecordMovement(wire.OutPoint{Index: 3}.Hash, -500, wire.OutPoint{}.Hash, false)

	data := s.Encode()
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("Decode() returned %d wallets, want 1", len(decoded))
	}

	got := decoded[0]
	if got.Name != "alice" {
		t.Errorf("Name = %q, want %q", got.Name, "alice")
	}
	if got.Address != w.Address {
		t.Errorf("Address = %q, want %q (derived from decoded key)", got.Address, w.Address)
	}
	if len(got.History) != 2 {
		t.Fatalf("History has %d entries, want 2", len(got.History))
	}
	if got.History[0].Delta != 12345 || got.History[1].Delta != -500 {
		t.Errorf("History deltas = %+v, want [12345, -500]", got.History)
	}
	if !got.History[0].Confirmed || got.History[1].Confirmed {
		t.Errorf("History confirmed flags = %+v, want [true, false]", got.History)
	}
}
