package mempool

import (
	"testing"

	"github.com/LucasAlda/bitcoin-node/wire"
)

func TestAppendIsIdempotentByHash(t *testing.T) {
	t.Parallel()

	p := New()
	tx := &wire.Transaction{Version: 1}

	if !p.Append(tx) {
		t.Fatalf("first Append() = false, want true")
	}
	if p.Append(tx) {
		t.Fatalf("second Append() = true, want false")
	}
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
}

func TestUpdateOnBlockRemovesConfirmed(t *testing.T) {
	t.Parallel()

	p := New()
	tx1 := &wire.Transaction{Version: 1, LockTime: 1}
	tx2 := &wire.Transaction{Version: 1, LockTime: 2}
	p.Append(tx1)
	p.Append(tx2)

	block := &wire.Block{
		Header:       &wire.BlockHeader{},
		Transactions: []*wire.Transaction{tx1},
	}
	p.UpdateOnBlock(block)

	if p.Len() != 1 {
		t.Fatalf("Len() = %d after UpdateOnBlock, want 1", p.Len())
	}
	all := p.All()
	if len(all) != 1 || all[0].Hash() != tx2.Hash() {
		t.Fatalf("remaining pool = %+v, want only tx2", all)
	}
}
