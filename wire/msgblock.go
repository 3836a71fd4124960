// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// MsgBlock carries a full block: header plus transactions.
type MsgBlock struct {
	Block
}

func (m *MsgBlock) Command() string { return CmdBlock }
func (m *MsgBlock) Encode() []byte  { return m.Block.Encode() }

func (m *MsgBlock) Decode(payload []byte) error {
	b, err := DecodeBlock(payload)
	if err != nil {
		return err
	}
	m.Block = *b
	return nil
}

// MsgTx carries a single transaction, announced after an inv/getdata
// round-trip or broadcast directly by MakeTransaction.
type MsgTx struct {
	Transaction
}

func (m *MsgTx) Command() string { return CmdTx }
func (m *MsgTx) Encode() []byte  { return m.Transaction.Encode() }

func (m *MsgTx) Decode(payload []byte) error {
	tx, err := DecodeTransaction(payload)
	if err != nil {
		return err
	}
	m.Transaction = *tx
	return nil
}
