// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bufcursor implements a bounds-checked cursor over an immutable
// byte buffer, used to parse wire messages and on-disk records without
// repeatedly slicing and reslicing by hand.
package bufcursor

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrBufferOutOfRange is returned whenever a read would extend past the end
// of the underlying buffer.
var ErrBufferOutOfRange = errors.New("buffer out of range")

// Cursor reads sequentially from an immutable byte slice. It never mutates
// or retains a reference past what the caller passed in; all extraction
// methods return copies or sub-slices of the original buffer.
type Cursor struct {
	buf []byte
	pos int
}

// New returns a Cursor positioned at the start of buf.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) require(n int) error {
	if n < 0 || c.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrBufferOutOfRange, n, c.Remaining())
	}
	return nil
}

// Bytes extracts the next n bytes verbatim.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Hash32 extracts the next 32 bytes, the fixed width of a hash.
func (c *Cursor) Hash32() ([32]byte, error) {
	var h [32]byte
	b, err := c.Bytes(32)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

// Uint8 extracts a single byte.
func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16LE extracts a little-endian uint16.
func (c *Cursor) Uint16LE() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32LE extracts a little-endian uint32.
func (c *Cursor) Uint32LE() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint64LE extracts a little-endian uint64.
func (c *Cursor) Uint64LE() (uint64, error) {
	b, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Int32LE extracts a little-endian signed int32.
func (c *Cursor) Int32LE() (int32, error) {
	v, err := c.Uint32LE()
	return int32(v), err
}

// Uint16BE extracts a big-endian uint16, used for the port half of a
// network address.
func (c *Cursor) Uint16BE() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Uint64BE extracts a big-endian uint64, used for the services field of a
// network address entry.
func (c *Cursor) Uint64BE() (uint64, error) {
	b, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// String extracts n bytes and interprets them as UTF-8.
func (c *Cursor) String(n int) (string, error) {
	b, err := c.Bytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VarInt extracts a compact-size unsigned integer using the classic prefix
// mapping: values below 0xFD encode as a single byte; 0xFD prefixes a
// 2-byte value; 0xFE prefixes a 4-byte value; 0xFF prefixes an 8-byte
// value.
func (c *Cursor) VarInt() (uint64, error) {
	prefix, err := c.Uint8()
	if err != nil {
		return 0, err
	}
	switch prefix {
	case 0xFF:
		return c.Uint64LE()
	case 0xFE:
		v, err := c.Uint32LE()
		return uint64(v), err
	case 0xFD:
		v, err := c.Uint16LE()
		return uint64(v), err
	default:
		return uint64(prefix), nil
	}
}

// VarString extracts a VarInt-prefixed length followed by that many bytes
// of UTF-8 text.
func (c *Cursor) VarString() (string, error) {
	n, err := c.VarInt()
	if err != nil {
		return "", err
	}
	return c.String(int(n))
}

// VarBytes extracts a VarInt-prefixed length followed by that many raw
// bytes, used for script_sig and script_pubkey fields.
func (c *Cursor) VarBytes() ([]byte, error) {
	n, err := c.VarInt()
	if err != nil {
		return nil, err
	}
	return c.Bytes(int(n))
}

// PutVarInt appends the shortest valid compact-size encoding of v to dst
// and returns the extended slice.
func PutVarInt(dst []byte, v uint64) []byte {
	switch {
	case v < 0xFD:
		return append(dst, byte(v))
	case v <= 0xFFFF:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(v))
		return append(append(dst, 0xFD), buf...)
	case v <= 0xFFFFFFFF:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(v))
		return append(append(dst, 0xFE), buf...)
	default:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, v)
		return append(append(dst, 0xFF), buf...)
	}
}

// VarIntSize returns the number of bytes PutVarInt would emit for v.
func VarIntSize(v uint64) int {
	switch {
	case v < 0xFD:
		return 1
	case v <= 0xFFFF:
		return 3
	case v <= 0xFFFFFFFF:
		return 5
	default:
		return 9
	}
}

// PutVarString appends a VarInt-prefixed UTF-8 string.
func PutVarString(dst []byte, s string) []byte {
	dst = PutVarInt(dst, uint64(len(s)))
	return append(dst, s...)
}

// PutVarBytes appends a VarInt-prefixed byte slice.
func PutVarBytes(dst []byte, b []byte) []byte {
	dst = PutVarInt(dst, uint64(len(b)))
	return append(dst, b...)
}

// PutUint32LE appends a little-endian uint32.
func PutUint32LE(dst []byte, v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return append(dst, buf...)
}

// PutUint64LE appends a little-endian uint64.
func PutUint64LE(dst []byte, v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return append(dst, buf...)
}

// PutInt32LE appends a little-endian signed int32.
func PutInt32LE(dst []byte, v int32) []byte {
	return PutUint32LE(dst, uint32(v))
}

// PutUint16BE appends a big-endian uint16, the port half of a network
// address.
func PutUint16BE(dst []byte, v uint16) []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, v)
	return append(dst, buf...)
}

// PutUint64BE appends a big-endian uint64, the services field of a network
// address entry.
func PutUint64BE(dst []byte, v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return append(dst, buf...)
}
