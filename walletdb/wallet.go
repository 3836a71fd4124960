// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package walletdb manages the node's local wallets: secp256k1 key pairs,
// their base58check addresses, and the movement history recorded against
// each one as blocks and pending transactions arrive.
package walletdb

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/LucasAlda/bitcoin-node/wire"
	"github.com/decred/base58"
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/crypto/ripemd160"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// addressVersion is the single-byte version prefix this node uses when
// encoding a public key hash as a base58check address. It does not need to
// match any particular public network; wallets here are only ever decoded
// by this same node.
const addressVersion = 0x00

// Movement records the net effect one transaction had on a wallet: tx_hash,
// signed delta (positive = received, negative = spent), and the confirming
// block hash if any (the zero hash for a still-pending movement).
type Movement struct {
	TxHash    chainhash.Hash
	Delta     int64
	BlockHash chainhash.Hash
	Confirmed bool
}

// Wallet is a named secp256k1 key pair plus its recorded movement history.
type Wallet struct {
	Name       string
	PrivateKey *secp256k1.PrivateKey
	PubKeyHash []byte
	Address    string
	History    []Movement
}

// NewWallet generates a fresh key pair and derives its address.
func NewWallet(name string) (*Wallet, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("walletdb: generate key: %w", err)
	}
	return newWalletFromKey(name, priv)
}

func newWalletFromKey(name string, priv *secp256k1.PrivateKey) (*Wallet, error) {
	pubKeyHash := PubKeyHashFromPubKey(priv.PubKey().SerializeCompressed())
	return &Wallet{
		Name:       name,
		PrivateKey: priv,
		PubKeyHash: pubKeyHash,
		Address:    EncodeAddress(pubKeyHash),
	}, nil
}

// PubKeyHashFromPubKey derives the 20-byte key hash from a serialized
// public key: RIPEMD160(SHA256(pubkey)).
func PubKeyHashFromPubKey(pubKey []byte) []byte {
	sum := sha256.Sum256(pubKey)
	h := ripemd160.New()
	h.Write(sum[:])
	return h.Sum(nil)
}

// EncodeAddress base58check-encodes a 20-byte key hash behind addressVersion
// and a 4-byte double-SHA256 checksum.
func EncodeAddress(pubKeyHash []byte) string {
	payload := make([]byte, 0, 1+len(pubKeyHash)+4)
	payload = append(payload, addressVersion)
	payload = append(payload, pubKeyHash...)
	checksum := chainhash.DoubleHashB(payload)
	payload = append(payload, checksum[:4]...)
	return base58.Encode(payload)
}

// ErrInvalidAddress is returned by DecodeAddress when the input is not a
// validly checksummed, correctly sized address.
var ErrInvalidAddress = errors.New("invalid address")

// DecodeAddress reverses EncodeAddress, returning the 20-byte key hash
// after dropping the version and checksum bytes and verifying the checksum.
func DecodeAddress(address string) ([]byte, error) {
	payload := base58.Decode(address)
	if len(payload) != 1+20+4 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	body := payload[:1+20]
	checksum := payload[1+20:]
	want := chainhash.DoubleHashB(body)
	for i := range checksum {
		if checksum[i] != want[i] {
			return nil, fmt.Errorf("%w: bad checksum", ErrInvalidAddress)
		}
	}
	return body[1:], nil
}

// SeedHistory scans the current UTXO set once, per spec §4.6, recording a
// positive movement for every output this wallet already owns.
func (w *Wallet) SeedHistory(utxo map[wire.OutPoint]wire.Output) {
	for op, out := range utxo {
		if !out.OwnedBy(w.PubKeyHash) {
			continue
		}
		w.History = append(w.History, Movement{
			TxHash: op.Hash,
			Delta:  int64(out.Value),
		})
	}
}

// RecordMovement appends a non-zero movement to the wallet's history. Per
// spec §4.6, zero-delta movements (transactions that don't touch this
// wallet) are not recorded.
func (w *Wallet) RecordMovement(txHash chainhash.Hash, delta int64, blockHash chainhash.Hash, confirmed bool) bool {
	if delta == 0 {
		return false
	}
	w.History = append(w.History, Movement{
		TxHash:    txHash,
		Delta:     delta,
		BlockHash: blockHash,
		Confirmed: confirmed,
	})
	return true
}
