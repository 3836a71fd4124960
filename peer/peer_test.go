package peer

import (
	"net"
	"testing"
	"time"

	"github.com/LucasAlda/bitcoin-node/wire"
)

const testMagic = 0xD9B4BEF9

// TestHandshakeCalleeAgainstRawCaller drives Accept's callee role against a
// hand-written caller sequence using raw wire messages, exercising the
// exact order spec §4.8 prescribes without needing a real TCP dialer.
func TestHandshakeCalleeAgainstRawCaller(t *testing.T) {
	t.Parallel()

	callerConn, calleeConn := net.Pipe()
	defer callerConn.Close()
	defer calleeConn.Close()

	calleeParams := HandshakeParams{Magic: testMagic, ProtocolVersion: 70015, Nonce: 2, StartHeight: 20, UserAgent: "/callee/"}

	calleeErr := make(chan error, 1)
	var calleePeer *Peer
	go func() {
		p, err := Accept(calleeConn, calleeParams)
		calleePeer = p
		calleeErr <- err
	}()

	rawCallerHandshake(t, callerConn)

	select {
	case err := <-calleeErr:
		if err != nil {
			t.Fatalf("Accept() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Accept() timed out")
	}

	if calleePeer.ProtocolVersion != 99999 {
		t.Errorf("ProtocolVersion = %d, want 99999 (from caller's version message)", calleePeer.ProtocolVersion)
	}
}

// rawCallerHandshake performs the caller side of the handshake by hand:
// send version, read version, read verack, send verack, read sendheaders.
func rawCallerHandshake(t *testing.T, conn net.Conn) {
	t.Helper()

	myVersion := &wire.MsgVersion{ProtocolVersion: 99999, Services: 1, Nonce: 7, UserAgent: "/caller/"}
	if err := wire.WriteMessage(conn, testMagic, myVersion); err != nil {
		t.Fatalf("write version: %v", err)
	}

	msg, err := wire.ReadMessage(conn, testMagic)
	if err != nil {
		t.Fatalf("read version: %v", err)
	}
	if _, ok := msg.(*wire.MsgVersion); !ok {
		t.Fatalf("expected version, got %s", msg.Command())
	}

	msg, err = wire.ReadMessage(conn, testMagic)
	if err != nil {
		t.Fatalf("read verack: %v", err)
	}
	if _, ok := msg.(*wire.MsgVerAck); !ok {
		t.Fatalf("expected verack, got %s", msg.Command())
	}

	if err := wire.WriteMessage(conn, testMagic, &wire.MsgVerAck{}); err != nil {
		t.Fatalf("write verack: %v", err)
	}

	msg, err = wire.ReadMessage(conn, testMagic)
	if err != nil {
		t.Fatalf("read sendheaders: %v", err)
	}
	if _, ok := msg.(*wire.MsgSendHeaders); !ok {
		t.Fatalf("expected sendheaders, got %s", msg.Command())
	}
}

func TestHandshakeFailsOnUnexpectedMessage(t *testing.T) {
	t.Parallel()

	callerConn, calleeConn := net.Pipe()
	defer callerConn.Close()
	defer calleeConn.Close()

	calleeParams := HandshakeParams{Magic: testMagic, ProtocolVersion: 70015, Nonce: 2}

	done := make(chan error, 1)
	go func() {
		_, err := Accept(calleeConn, calleeParams)
		done <- err
	}()

	// Send something other than a version message first.
	if err := wire.WriteMessage(callerConn, testMagic, &wire.MsgVerAck{}); err != nil {
		t.Fatalf("write verack: %v", err)
	}

	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("Accept() with bad first message: want error, got nil")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Accept() timed out")
	}
}
