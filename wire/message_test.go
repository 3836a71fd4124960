package wire

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// TestPingSerialization exercises the literal scenario 2 test vector.
func TestPingSerialization(t *testing.T) {
	t.Parallel()

	m := &MsgPing{Nonce: 1024}
	got := m.Encode()
	want := []byte{0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % x, want % x", got, want)
	}
}

func TestMessageFramingRoundTrip(t *testing.T) {
	t.Parallel()

	const magic = 0xD9B4BEF9

	msgs := []Message{
		&MsgVerAck{},
		&MsgSendHeaders{},
		&MsgPing{Nonce: 42},
		&MsgPong{Nonce: 42},
		&MsgGetHeaders{
			Version:  70015,
			Locator:  []chainhash.Hash{{0x01}, {0x02}},
			HashStop: chainhash.Hash{},
		},
		&MsgVersion{
			ProtocolVersion: 70015,
			Services:        1,
			Timestamp:       1700000000,
			Nonce:           0xdeadbeef,
			UserAgent:       "/bitcoin-node:0.1/",
			StartHeight:     100,
			Relay:           true,
		},
	}

	for _, msg := range msgs {
		var buf bytes.Buffer
		if err := WriteMessage(&buf, magic, msg); err != nil {
			t.Fatalf("WriteMessage(%s): %v", msg.Command(), err)
		}

		got, err := ReadMessage(&buf, magic)
		if err != nil {
			t.Fatalf("ReadMessage(%s): %v", msg.Command(), err)
		}
		if got.Command() != msg.Command() {
			t.Fatalf("got command %q, want %q", got.Command(), msg.Command())
		}
		if !bytes.Equal(got.Encode(), msg.Encode()) {
			t.Errorf("%s: round-trip changed encoding: got % x, want % x\ngot:  %swant: %s",
				msg.Command(), got.Encode(), msg.Encode(), spew.Sdump(got), spew.Sdump(msg))
		}
	}
}

func TestReadMessageRejectsBadMagic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteMessage(&buf, 0x11111111, &MsgVerAck{}); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	if _, err := ReadMessage(&buf, 0x22222222); err == nil {
		t.Fatalf("ReadMessage with mismatched magic: want error, got nil")
	}
}

func TestReadMessageRejectsChecksumMismatch(t *testing.T) {
	t.Parallel()

	const magic = 0xD9B4BEF9
	var buf bytes.Buffer
	if err := WriteMessage(&buf, magic, &MsgPing{Nonce: 7}); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xFF // corrupt the payload without touching the checksum

	if _, err := ReadMessage(bytes.NewReader(raw), magic); err == nil {
		t.Fatalf("ReadMessage with corrupted payload: want error, got nil")
	}
}

func TestNewMessageForCommandUnknown(t *testing.T) {
	t.Parallel()

	if _, err := NewMessageForCommand("notarealcommand"); err == nil {
		t.Fatalf("NewMessageForCommand(unknown): want error, got nil")
	}
}
