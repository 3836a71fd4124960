// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command btcnoded launches a single node: it loads a KEY=VALUE config
// file, opens the rotating log file it names, dials the configured DNS
// seed, and runs until killed.
package main

import (
	"fmt"
	"os"

	"github.com/LucasAlda/bitcoin-node/chaincfg"
	"github.com/LucasAlda/bitcoin-node/config"
	"github.com/LucasAlda/bitcoin-node/node"
)

// Exit codes, per spec §6: 0 normal, nonzero on any fatal init error.
const (
	exitOK = iota
	exitUsage
	exitConfig
	exitLog
	exitNoPeers
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: btcnoded <config-file>")
		return exitUsage
	}

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return exitConfig
	}

	if err := initLogRotator(cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: opening log file: %v\n", err)
		return exitLog
	}
	defer logRotator.Close()

	sup := node.NewSupervisor(cfg, chaincfg.TestNet3Params)
	if err := sup.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return exitNoPeers
	}
	defer sup.Close()

	select {}
}
