// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletdb

import (
	"errors"
	"fmt"

	"github.com/LucasAlda/bitcoin-node/internal/bufcursor"
	"github.com/LucasAlda/bitcoin-node/wire"
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

func secp256k1PrivFromBytes(b []byte) *secp256k1.PrivateKey {
	return secp256k1.PrivKeyFromBytes(b)
}

func chainhashFromArray(h [32]byte) chainhash.Hash {
	return chainhash.Hash(h)
}

// ErrWalletNotFound is returned when a lookup or selection names a wallet
// that does not exist.
var ErrWalletNotFound = errors.New("wallet not found")

// Store holds every wallet known to the node and tracks which one, if any,
// is active for transaction construction.
type Store struct {
	wallets []*Wallet
	active  string
}

// NewStore returns an empty WalletsStore.
func NewStore() *Store {
	return &Store{}
}

// Add registers a wallet, seeding its movement history from the current
// UTXO set (spec §4.6). If it is the first wallet added, it becomes active.
func (s *Store) Add(w *Wallet, utxo map[wire.OutPoint]wire.Output) {
	w.SeedHistory(utxo)
	s.wallets = append(s.wallets, w)
	if s.active == "" {
		s.active = w.Name
	}
}

// All returns every registered wallet.
func (s *Store) All() []*Wallet {
	return s.wallets
}

// ByName looks up a wallet by name.
func (s *Store) ByName(name string) (*Wallet, bool) {
	for _, w := range s.wallets {
		if w.Name == name {
			return w, true
		}
	}
	return nil, false
}

// Active returns the currently selected wallet, or nil if none is selected.
func (s *Store) Active() *Wallet {
	w, _ := s.ByName(s.active)
	return w
}

// SetActive selects name as the active wallet.
func (s *Store) SetActive(name string) error {
	if _, ok := s.ByName(name); !ok {
		return fmt.Errorf("%w: %s", ErrWalletNotFound, name)
	}
	s.active = name
	return nil
}

// Update applies block to every wallet's movement history, per spec §4.6:
// for each transaction, compute its movement against the wallet's key
// hash through utxo, and record it if non-zero. Returns whether any
// wallet changed, so the caller knows whether to notify the GUI.
func (s *Store) Update(block *wire.Block, utxo wire.UTXOLookup) bool {
	changed := false
	blockHash := block.Hash()
	for _, w := range s.wallets {
		for _, tx := range block.Transactions {
			delta := tx.Movement(w.PubKeyHash, utxo)
			if w.RecordMovement(tx.Hash(), delta, blockHash, true) {
				changed = true
			}
		}
	}
	return changed
}

// movementRecordLen is the fixed width of one encoded Movement: tx_hash(32)
// | delta (8: its high 32 bits as signed int32 LE, then its low 32 bits as
// uint32 LE) | block_hash(32) | confirmed flag (1).
const movementRecordLen = 32 + 8 + 32 + 1

// Encode serializes every wallet to the on-disk wallets.bin layout:
// u8 name_len|name|u8 pk_len|pk|u8 sk_len|sk|u32 hist_len|movements.
func (s *Store) Encode() []byte {
	var buf []byte
	for _, w := range s.wallets {
		buf = append(buf, byte(len(w.Name)))
		buf = append(buf, w.Name...)

		pub := w.PrivateKey.PubKey().SerializeCompressed()
		buf = append(buf, byte(len(pub)))
		buf = append(buf, pub...)

		priv := w.PrivateKey.Serialize()
		buf = append(buf, byte(len(priv)))
		buf = append(buf, priv...)

		buf = bufcursor.PutUint32LE(buf, uint32(len(w.History)))
		for _, m := range w.History {
			buf = append(buf, m.TxHash[:]...)
			buf = bufcursor.PutInt32LE(buf, int32(m.Delta>>32))
			buf = bufcursor.PutUint32LE(buf, uint32(m.Delta))
			buf = append(buf, m.BlockHash[:]...)
			confirmed := byte(0)
			if m.Confirmed {
				confirmed = 1
			}
			buf = append(buf, confirmed)
		}
	}
	return buf
}

// Decode parses the wallets.bin layout Encode produces, rebuilding private
// keys and reconstructing derived fields (pub key hash, address) rather
// than persisting them redundantly.
func Decode(data []byte) ([]*Wallet, error) {
	c := bufcursor.New(data)
	var wallets []*Wallet

	for c.Remaining() > 0 {
		nameLen, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		name, err := c.String(int(nameLen))
		if err != nil {
			return nil, err
		}

		pkLen, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		if _, err := c.Bytes(int(pkLen)); err != nil { // derived from the private key below
			return nil, err
		}

		skLen, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		skBytes, err := c.Bytes(int(skLen))
		if err != nil {
			return nil, err
		}
		priv := secp256k1PrivFromBytes(skBytes)

		w, err := newWalletFromKey(name, priv)
		if err != nil {
			return nil, err
		}

		histLen, err := c.Uint32LE()
		if err != nil {
			return nil, err
		}
		for i := uint32(0); i < histLen; i++ {
			raw, err := c.Bytes(movementRecordLen)
			if err != nil {
				return nil, err
			}
			mc := bufcursor.New(raw)
			txHash, err := mc.Hash32()
			if err != nil {
				return nil, err
			}
			hi, err := mc.Int32LE()
			if err != nil {
				return nil, err
			}
			lo, err := mc.Uint32LE()
			if err != nil {
				return nil, err
			}
			blockHash, err := mc.Hash32()
			if err != nil {
				return nil, err
			}
			confirmedByte, err := mc.Uint8()
			if err != nil {
				return nil, err
			}
			w.History = append(w.History, Movement{
				TxHash:    chainhashFromArray(txHash),
				Delta:     int64(hi)<<32 | int64(lo),
				BlockHash: chainhashFromArray(blockHash),
				Confirmed: confirmedByte != 0,
			})
		}

		wallets = append(wallets, w)
	}

	return wallets, nil
}
