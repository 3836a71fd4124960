// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txscript recognizes and builds the one script pattern this node
// understands: pay-to-public-key-hash. Full script evaluation is an
// explicit non-goal (spec §1); this package only pattern-matches the
// handful of opcodes involved, the same byte-offset style used by the
// teacher's internal/staging/stdscript package.
package txscript

const (
	opDup         = 0x76
	opHash160     = 0xa9
	opData20      = 0x14
	opEqualVerify = 0x88
	opCheckSig    = 0xac
)

// PubKeyHashSize is the width of a HASH160 digest.
const PubKeyHashSize = 20

// p2pkhScriptLen is the total length of a pay-to-public-key-hash script:
// OP_DUP OP_HASH160 OP_DATA_20 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG.
const p2pkhScriptLen = 1 + 1 + 1 + PubKeyHashSize + 1 + 1

// IsPayToPubKeyHash reports whether script is exactly the standard
// pay-to-public-key-hash pattern:
//
//	OP_DUP OP_HASH160 <20-byte push> <key hash> OP_EQUALVERIFY OP_CHECKSIG
func IsPayToPubKeyHash(script []byte) bool {
	return ExtractPubKeyHash(script) != nil
}

// ExtractPubKeyHash returns the 20-byte key hash encoded in script if it is
// a standard pay-to-public-key-hash script, or nil otherwise.
func ExtractPubKeyHash(script []byte) []byte {
	if len(script) != p2pkhScriptLen {
		return nil
	}
	if script[0] != opDup ||
		script[1] != opHash160 ||
		script[2] != opData20 ||
		script[23] != opEqualVerify ||
		script[24] != opCheckSig {
		return nil
	}
	return script[3:23]
}

// PayToPubKeyHashScript builds the standard P2PKH locking script paying to
// the given 20-byte key hash.
func PayToPubKeyHashScript(pubKeyHash []byte) []byte {
	script := make([]byte, 0, p2pkhScriptLen)
	script = append(script, opDup, opHash160, opData20)
	script = append(script, pubKeyHash...)
	script = append(script, opEqualVerify, opCheckSig)
	return script
}
