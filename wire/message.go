// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the node's wire protocol: the message envelope,
// the concrete message types exchanged with peers, and the block header
// and transaction records that travel inside them.
package wire

import (
	"errors"
	"fmt"
	"io"

	"github.com/LucasAlda/bitcoin-node/internal/bufcursor"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// CommandSize is the fixed width of the ASCII, zero-padded command field.
const CommandSize = 12

// HeaderSize is the size in bytes of a message envelope, excluding payload.
const HeaderSize = 4 + CommandSize + 4 + 4

// MaxPayloadSize bounds the payload length accepted from the wire, guarding
// against a peer claiming an absurd length and exhausting memory before the
// checksum is even checked.
const MaxPayloadSize = 32 * 1024 * 1024

// Errors returned while framing or parsing a message. UnknownCommand is a
// soft error: callers log and drop rather than terminating the peer.
var (
	ErrFraming          = errors.New("framing error")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrPayloadTooLarge  = errors.New("payload too large")
)

// Commands recognized on the wire, per spec §6.
const (
	CmdVersion     = "version"
	CmdVerAck      = "verack"
	CmdSendHeaders = "sendheaders"
	CmdGetHeaders  = "getheaders"
	CmdHeaders     = "headers"
	CmdGetData     = "getdata"
	CmdInv         = "inv"
	CmdBlock       = "block"
	CmdTx          = "tx"
	CmdPing        = "ping"
	CmdPong        = "pong"
)

// Message is implemented by every concrete wire payload type.
type Message interface {
	Command() string
	Encode() []byte
	Decode(payload []byte) error
}

// envelopeHeader is the parsed form of a message's fixed-size prefix.
type envelopeHeader struct {
	magic      uint32
	command    string
	payloadLen uint32
	checksum   [4]byte
}

func checksum(payload []byte) [4]byte {
	sum := chainhash.DoubleHashB(payload)
	var out [4]byte
	copy(out[:], sum[:4])
	return out
}

func encodeCommand(command string) [CommandSize]byte {
	var out [CommandSize]byte
	copy(out[:], command)
	return out
}

func decodeCommand(b [CommandSize]byte) string {
	n := 0
	for n < CommandSize && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

// WriteMessage frames and writes msg to w under the given network magic.
func WriteMessage(w io.Writer, magic uint32, msg Message) error {
	payload := msg.Encode()
	if len(payload) > MaxPayloadSize {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	buf := make([]byte, 0, HeaderSize+len(payload))
	buf = bufcursor.PutUint32LE(buf, magic)
	cmd := encodeCommand(msg.Command())
	buf = append(buf, cmd[:]...)
	buf = bufcursor.PutUint32LE(buf, uint32(len(payload)))
	sum := checksum(payload)
	buf = append(buf, sum[:]...)
	buf = append(buf, payload...)

	_, err := w.Write(buf)
	return err
}

// readEnvelopeHeader reads and validates the fixed-size message prefix,
// without yet touching the payload.
func readEnvelopeHeader(r io.Reader, magic uint32) (envelopeHeader, error) {
	var raw [HeaderSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return envelopeHeader{}, fmt.Errorf("%w: %v", ErrFraming, err)
	}

	c := bufcursor.New(raw[:])
	gotMagic, err := c.Uint32LE()
	if err != nil {
		return envelopeHeader{}, fmt.Errorf("%w: %v", ErrFraming, err)
	}
	if gotMagic != magic {
		return envelopeHeader{}, fmt.Errorf("%w: bad magic %#x", ErrFraming, gotMagic)
	}

	cmdBytes, err := c.Bytes(CommandSize)
	if err != nil {
		return envelopeHeader{}, fmt.Errorf("%w: %v", ErrFraming, err)
	}
	var cmdArr [CommandSize]byte
	copy(cmdArr[:], cmdBytes)

	payloadLen, err := c.Uint32LE()
	if err != nil {
		return envelopeHeader{}, fmt.Errorf("%w: %v", ErrFraming, err)
	}
	if payloadLen > MaxPayloadSize {
		return envelopeHeader{}, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, payloadLen)
	}

	sumBytes, err := c.Bytes(4)
	if err != nil {
		return envelopeHeader{}, fmt.Errorf("%w: %v", ErrFraming, err)
	}
	var sum [4]byte
	copy(sum[:], sumBytes)

	return envelopeHeader{
		magic:      gotMagic,
		command:    decodeCommand(cmdArr),
		payloadLen: payloadLen,
		checksum:   sum,
	}, nil
}

// ReadRawMessage reads one framed message from r, validates its checksum,
// and returns its command name and raw payload. The caller decodes the
// payload into a concrete Message type, dispatching on the command name;
// an unrecognized command is returned as-is (ErrUnknownCommand is the
// caller's signal to log and drop rather than tear down the connection).
func ReadRawMessage(r io.Reader, magic uint32) (command string, payload []byte, err error) {
	hdr, err := readEnvelopeHeader(r, magic)
	if err != nil {
		return "", nil, err
	}

	payload = make([]byte, hdr.payloadLen)
	if hdr.payloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrFraming, err)
		}
	}

	if checksum(payload) != hdr.checksum {
		return "", nil, ErrChecksumMismatch
	}

	return hdr.command, payload, nil
}

// NewMessageForCommand returns a zero-valued Message for the given command,
// or ErrUnknownCommand if the node does not handle it. This is a soft error:
// per spec §4.2 the caller should log and drop, not terminate the peer.
func NewMessageForCommand(command string) (Message, error) {
	switch command {
	case CmdVersion:
		return &MsgVersion{}, nil
	case CmdVerAck:
		return &MsgVerAck{}, nil
	case CmdSendHeaders:
		return &MsgSendHeaders{}, nil
	case CmdGetHeaders:
		return &MsgGetHeaders{}, nil
	case CmdHeaders:
		return &MsgHeaders{}, nil
	case CmdGetData:
		return &MsgGetData{}, nil
	case CmdInv:
		return &MsgInv{}, nil
	case CmdBlock:
		return &MsgBlock{}, nil
	case CmdTx:
		return &MsgTx{}, nil
	case CmdPing:
		return &MsgPing{}, nil
	case CmdPong:
		return &MsgPong{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

// ReadMessage reads one framed message from r and decodes it into its
// concrete type.
func ReadMessage(r io.Reader, magic uint32) (Message, error) {
	command, payload, err := ReadRawMessage(r, magic)
	if err != nil {
		return nil, err
	}
	msg, err := NewMessageForCommand(command)
	if err != nil {
		return nil, err
	}
	if err := msg.Decode(payload); err != nil {
		return nil, err
	}
	return msg, nil
}
