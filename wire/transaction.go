// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"

	"github.com/LucasAlda/bitcoin-node/internal/bufcursor"
	"github.com/LucasAlda/bitcoin-node/txscript"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// OutPoint identifies a transaction output by the hash of the transaction
// that created it and the output's index within that transaction.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// Encode serializes the outpoint to its fixed 36-byte wire form.
func (o OutPoint) Encode() []byte {
	buf := make([]byte, 0, chainhash.HashSize+4)
	buf = append(buf, o.Hash[:]...)
	buf = bufcursor.PutUint32LE(buf, o.Index)
	return buf
}

func decodeOutPoint(c *bufcursor.Cursor) (OutPoint, error) {
	h, err := c.Hash32()
	if err != nil {
		return OutPoint{}, err
	}
	idx, err := c.Uint32LE()
	if err != nil {
		return OutPoint{}, err
	}
	return OutPoint{Hash: chainhash.Hash(h), Index: idx}, nil
}

// Input is a transaction input: a reference to a previous output, the
// script that unlocks it, and a sequence number.
type Input struct {
	PreviousOutput OutPoint
	ScriptSig      []byte
	Sequence       uint32
}

func (in *Input) encode() []byte {
	buf := in.PreviousOutput.Encode()
	buf = bufcursor.PutVarBytes(buf, in.ScriptSig)
	buf = bufcursor.PutUint32LE(buf, in.Sequence)
	return buf
}

func decodeInput(c *bufcursor.Cursor) (Input, error) {
	op, err := decodeOutPoint(c)
	if err != nil {
		return Input{}, err
	}
	scriptSig, err := c.VarBytes()
	if err != nil {
		return Input{}, err
	}
	seq, err := c.Uint32LE()
	if err != nil {
		return Input{}, err
	}
	return Input{PreviousOutput: op, ScriptSig: scriptSig, Sequence: seq}, nil
}

// Output is a transaction output: a value in base units and the script
// that must be satisfied to spend it.
type Output struct {
	Value        uint64
	ScriptPubKey []byte
}

func (out *Output) encode() []byte {
	buf := bufcursor.PutUint64LE(nil, out.Value)
	return bufcursor.PutVarBytes(buf, out.ScriptPubKey)
}

func decodeOutput(c *bufcursor.Cursor) (Output, error) {
	value, err := c.Uint64LE()
	if err != nil {
		return Output{}, err
	}
	script, err := c.VarBytes()
	if err != nil {
		return Output{}, err
	}
	return Output{Value: value, ScriptPubKey: script}, nil
}

// OwnedBy reports whether this output's script_pubkey is a standard
// pay-to-public-key-hash script targeting the given 20-byte key hash.
func (out *Output) OwnedBy(pubKeyHash []byte) bool {
	got := txscript.ExtractPubKeyHash(out.ScriptPubKey)
	return got != nil && bytes.Equal(got, pubKeyHash)
}

// Transaction is version + ordered inputs + ordered outputs + lock_time.
// Transactions are immutable once constructed; Hash is computed from the
// canonical serialization and is not cached since mutation after
// construction is not supported by this type.
type Transaction struct {
	Version  uint32
	Inputs   []Input
	Outputs  []Output
	LockTime uint32
}

// Encode serializes the transaction to its canonical wire form.
func (tx *Transaction) Encode() []byte {
	buf := bufcursor.PutUint32LE(nil, tx.Version)
	buf = bufcursor.PutVarInt(buf, uint64(len(tx.Inputs)))
	for i := range tx.Inputs {
		buf = append(buf, tx.Inputs[i].encode()...)
	}
	buf = bufcursor.PutVarInt(buf, uint64(len(tx.Outputs)))
	for i := range tx.Outputs {
		buf = append(buf, tx.Outputs[i].encode()...)
	}
	buf = bufcursor.PutUint32LE(buf, tx.LockTime)
	return buf
}

// DecodeTransaction parses a transaction from its canonical wire form.
func DecodeTransaction(b []byte) (*Transaction, error) {
	return decodeTransactionFromCursor(bufcursor.New(b))
}

// decodeTransactionFromCursor parses a transaction starting at the
// cursor's current position, advancing it past exactly the bytes the
// transaction occupies. Used both by DecodeTransaction and by Block
// decoding, where transactions are concatenated with no per-transaction
// length prefix.
func decodeTransactionFromCursor(c *bufcursor.Cursor) (*Transaction, error) {
	tx := &Transaction{}

	version, err := c.Uint32LE()
	if err != nil {
		return nil, err
	}
	tx.Version = version

	inCount, err := c.VarInt()
	if err != nil {
		return nil, err
	}
	tx.Inputs = make([]Input, inCount)
	for i := range tx.Inputs {
		in, err := decodeInput(c)
		if err != nil {
			return nil, err
		}
		tx.Inputs[i] = in
	}

	outCount, err := c.VarInt()
	if err != nil {
		return nil, err
	}
	tx.Outputs = make([]Output, outCount)
	for i := range tx.Outputs {
		out, err := decodeOutput(c)
		if err != nil {
			return nil, err
		}
		tx.Outputs[i] = out
	}

	lockTime, err := c.Uint32LE()
	if err != nil {
		return nil, err
	}
	tx.LockTime = lockTime

	return tx, nil
}

// Hash returns the transaction's double-SHA256 identity.
func (tx *Transaction) Hash() chainhash.Hash {
	return chainhash.DoubleHashH(tx.Encode())
}

// UTXOLookup resolves an OutPoint to the output it refers to, used by
// Movement to value spent inputs without the transaction needing to carry
// that data itself. utxoset.Set satisfies this interface.
type UTXOLookup interface {
	LookupOutput(op OutPoint) (Output, bool)
}

// Movement computes the net value change this transaction causes for the
// given key hash: the sum of owned outputs it creates minus the sum of
// owned outputs it spends, each spent input resolved through utxo as it
// stood before this transaction applied. Per spec §4.6.
func (tx *Transaction) Movement(pubKeyHash []byte, utxo UTXOLookup) int64 {
	var delta int64
	for i := range tx.Outputs {
		if tx.Outputs[i].OwnedBy(pubKeyHash) {
			delta += int64(tx.Outputs[i].Value)
		}
	}
	for i := range tx.Inputs {
		spent, ok := utxo.LookupOutput(tx.Inputs[i].PreviousOutput)
		if ok && spent.OwnedBy(pubKeyHash) {
			delta -= int64(spent.Value)
		}
	}
	return delta
}
