package wire

import (
	"math/big"
	"testing"

	"github.com/decred/dcrd/blockchain/standalone/v2"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

func sampleHeader() *BlockHeader {
	return &BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{0x01, 0x02, 0x03},
		MerkleRoot: chainhash.Hash{0x04, 0x05, 0x06},
		Timestamp:  1700000000,
		Bits:       0x1c654657,
		Nonce:      240236131,
	}
}

func TestBlockHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	h := sampleHeader()
	encoded := h.Encode()
	if len(encoded) != BlockHeaderLen {
		t.Fatalf("Encode() length = %d, want %d", len(encoded), BlockHeaderLen)
	}

	decoded, err := DecodeBlockHeader(encoded)
	if err != nil {
		t.Fatalf("DecodeBlockHeader() error = %v", err)
	}

	if decoded.Version != h.Version || decoded.PrevBlock != h.PrevBlock ||
		decoded.MerkleRoot != h.MerkleRoot || decoded.Timestamp != h.Timestamp ||
		decoded.Bits != h.Bits || decoded.Nonce != h.Nonce {
		t.Fatalf("decoded header %+v does not match original %+v", decoded, h)
	}

	if decoded.Hash() != h.Hash() {
		t.Errorf("decoded hash %s != original hash %s", decoded.Hash(), h.Hash())
	}
}

// TestSingleByteMutationChangesHashOrRejectsPoW exercises spec invariant 3:
// altering any single byte of a valid header's serialization must either
// invalidate PoW or change the hash.
func TestSingleByteMutationChangesHashOrRejectsPoW(t *testing.T) {
	t.Parallel()

	h := sampleHeader()
	original := h.Encode()
	originalHash := h.Hash()

	for i := range original {
		mutated := make([]byte, len(original))
		copy(mutated, original)
		mutated[i] ^= 0xFF

		mh, err := DecodeBlockHeader(mutated)
		if err != nil {
			t.Fatalf("DecodeBlockHeader(mutated byte %d) error = %v", i, err)
		}
		if mh.Hash() == originalHash && mh.ValidatePoW() {
			t.Errorf("byte %d: mutation left hash unchanged and PoW still valid", i)
		}
	}
}

// TestValidatePoWAgainstCraftedTarget avoids grinding an actual
// double-SHA256 preimage by exercising the comparison logic directly
// against hand-built hash values and compact targets.
func TestValidatePoWAgainstCraftedTarget(t *testing.T) {
	t.Parallel()

	// bits = 0x20007fff decodes to a target of 0x7fff * 256^(0x20-3):
	// as a 256-bit big-endian integer its most significant byte is 0x00,
	// the next two bytes are 0x7f 0xff, and everything below that is
	// zero.
	const bits = 0x20007fff

	target := standalone.CompactToBig(bits)
	if target.Sign() <= 0 {
		t.Fatalf("crafted target is non-positive: %s", target)
	}

	// A hash of exactly zero is less than any positive target.
	var zeroHash chainhash.Hash
	if !validateHashAgainstBits(zeroHash, bits) {
		t.Errorf("zero hash should validate against any positive target")
	}

	// maxHash (all 0xFF) interpreted as a 256-bit integer is the
	// largest possible value and must exceed any target derived from a
	// realistic (non-maximal) compact encoding.
	var maxHash chainhash.Hash
	for i := range maxHash {
		maxHash[i] = 0xFF
	}
	if validateHashAgainstBits(maxHash, bits) {
		t.Errorf("max hash should not validate against a bounded target")
	}

	// Sanity check the target value itself against big.Int(0) to make
	// sure CompactToBig didn't silently produce zero for our bits.
	if target.Cmp(big.NewInt(0)) <= 0 {
		t.Fatalf("target should be positive, got %s", target)
	}
}

// TestHeaderPoWAcceptRealVector exercises spec scenario 4 against a real
// mainnet header (block 100000) rather than a crafted one, confirming the
// PoW check accepts genuine proof-of-work without needing to grind a
// preimage ourselves.
func TestHeaderPoWAcceptRealVector(t *testing.T) {
	t.Parallel()

	h := &BlockHeader{
		Version: 2,
		PrevBlock: chainhash.Hash{
			61, 8, 52, 163, 234, 98, 255, 92, 186, 170, 164, 90, 56, 131, 46, 171, 52, 239,
			104, 223, 166, 65, 183, 217, 36, 6, 53, 63, 0, 0, 0, 0,
		},
		MerkleRoot: chainhash.Hash{
			45, 107, 6, 225, 181, 124, 4, 88, 86, 174, 58, 59, 113, 215, 174, 42, 209, 149,
			142, 110, 166, 53, 244, 88, 6, 76, 228, 77, 7, 10, 189, 126,
		},
		Timestamp: 1347149007,
		Bits:      476726600, // 0x1c654657
		Nonce:     240236131,
	}

	if !h.ValidatePoW() {
		t.Fatalf("ValidatePoW() = false, want true for a genuine mined header")
	}

	// Flipping the nonce invalidates PoW without touching the hash
	// verification logic itself.
	tampered := *h
	tampered.Nonce = 123123
	tampered.hashSet = false
	if tampered.ValidatePoW() {
		t.Errorf("ValidatePoW() = true for a header with the wrong nonce, want false")
	}
}

// TestValidatePoWBoundaryIsStrict exercises the exact-target boundary: a
// hash numerically equal to the target must be rejected (strict <).
func TestValidatePoWBoundaryIsStrict(t *testing.T) {
	t.Parallel()

	const bits = 0x1c00ffff
	target := standalone.CompactToBig(bits)

	targetBytes := target.Bytes() // big-endian, no leading zeros
	var hash chainhash.Hash
	// chainhash.Hash is interpreted little-endian as a 256-bit integer
	// by HashToBig; place targetBytes (big-endian) reversed at the low
	// end of the hash so HashToBig reconstructs exactly `target`.
	for i, b := range targetBytes {
		hash[len(targetBytes)-1-i] = b
	}

	if validateHashAgainstBits(hash, bits) {
		t.Errorf("hash exactly equal to target must be rejected by strict <")
	}
}
