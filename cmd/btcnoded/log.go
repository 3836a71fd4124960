// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/LucasAlda/bitcoin-node/node"
	"github.com/LucasAlda/bitcoin-node/peer"
	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// logRotator, once initialized by initLogRotator, writes to the rotating
// log file named by the LOG config key.
var logRotator *rotator.Rotator

// logWriter writes every log line to both stdout and logRotator, the same
// dual-sink pattern the dcrd-family daemons wire their slog backend
// against.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	logRotator.Write(p)
	return len(p), nil
}

// initLogRotator opens (creating if necessary) the rotating log file at
// logFile and installs a slog backend writing to it and to stdout, then
// wires every package logger that participates in this node.
func initLogRotator(logFile string) error {
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r

	backend := slog.NewBackend(logWriter{})
	peer.UseLogger(backend.Logger("PEER"))
	node.UseLogger(backend.Logger("NODE"))
	return nil
}
