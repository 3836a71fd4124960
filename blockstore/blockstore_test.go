package blockstore

import (
	"errors"
	"testing"

	"github.com/LucasAlda/bitcoin-node/blocksync"
	"github.com/LucasAlda/bitcoin-node/wire"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

func sampleBlock() (*wire.BlockHeader, *wire.Block) {
	h := &wire.BlockHeader{Version: 1, Bits: 0x207fffff, Nonce: 7}
	b := &wire.Block{Header: h, Transactions: nil}
	return h, b
}

func TestAppendBlockRoundTripAndSync(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := New(dir)
	pending := blocksync.New()

	h, b := sampleBlock()
	pending.Append(h.Hash())

	synced, err := store.AppendBlock(h, b, pending, 1)
	if err != nil {
		t.Fatalf("AppendBlock() error = %v", err)
	}
	if !synced {
		t.Errorf("AppendBlock() synced = false, want true (1/1 downloaded)")
	}
	if !h.BlockDownloaded {
		t.Errorf("header.BlockDownloaded = false after AppendBlock")
	}
	if pending.IsPending(h.Hash()) {
		t.Errorf("hash still pending after AppendBlock")
	}

	got, err := store.GetBlock(h.Hash())
	if err != nil {
		t.Fatalf("GetBlock() error = %v", err)
	}
	if got.Hash() != b.Hash() {
		t.Errorf("GetBlock() hash = %s, want %s", got.Hash(), b.Hash())
	}
}

func TestGetBlockNotFound(t *testing.T) {
	t.Parallel()

	store := New(t.TempDir())
	_, err := store.GetBlock(chainhash.Hash{0xAB})
	if !errors.Is(err, ErrBlockNotFound) {
		t.Fatalf("GetBlock() error = %v, want ErrBlockNotFound", err)
	}
}

func TestAppendBlockNotYetFullySynced(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := New(dir)
	pending := blocksync.New()

	h, b := sampleBlock()
	pending.Append(h.Hash())

	synced, err := store.AppendBlock(h, b, pending, 2)
	if err != nil {
		t.Fatalf("AppendBlock() error = %v", err)
	}
	if synced {
		t.Errorf("AppendBlock() synced = true with only 1/2 downloaded")
	}
}
