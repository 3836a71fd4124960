// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "github.com/LucasAlda/bitcoin-node/internal/bufcursor"

// MaxHeadersPerMsg bounds a single headers reply, per spec §4.3.
const MaxHeadersPerMsg = 2000

// MsgHeaders carries a batch of block headers, each followed on the wire by
// a transaction-count varint that this node always writes as zero since
// headers never carry bodies.
type MsgHeaders struct {
	Headers []*BlockHeader
}

func (m *MsgHeaders) Command() string { return CmdHeaders }

func (m *MsgHeaders) Encode() []byte {
	buf := bufcursor.PutVarInt(nil, uint64(len(m.Headers)))
	for _, h := range m.Headers {
		buf = append(buf, h.Encode()...)
		buf = bufcursor.PutVarInt(buf, 0)
	}
	return buf
}

func (m *MsgHeaders) Decode(payload []byte) error {
	c := bufcursor.New(payload)

	count, err := c.VarInt()
	if err != nil {
		return err
	}
	headers := make([]*BlockHeader, count)
	for i := range headers {
		raw, err := c.Bytes(BlockHeaderLen)
		if err != nil {
			return err
		}
		h, err := DecodeBlockHeader(raw)
		if err != nil {
			return err
		}
		if _, err := c.VarInt(); err != nil {
			return err
		}
		headers[i] = h
	}

	m.Headers = headers
	return nil
}
