// Copyright (c) 2024 The bitcoin-node developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package config loads the node's startup configuration from a flat
// KEY=VALUE file. The format is deliberately narrower than a general
// dotenv file: every line, including blank ones, must split into exactly
// two fields on '=' — a blank line is as invalid as a malformed one,
// matching the original config parser this is ported from. Unrecognized
// keys are ignored, and presence of all required keys is checked only
// after the whole file has been read.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Errors returned while loading configuration.
var (
	ErrMissingFile   = errors.New("config file not found")
	ErrInvalidFormat = errors.New("config line is not KEY=VALUE")
	ErrMissingValue  = errors.New("required config value missing")
	ErrInvalidValue  = errors.New("config value has the wrong type")
)

// DefaultStorePath is used when STORE_PATH is absent from the file.
const DefaultStorePath = "store"

// Config holds every value the node reads at startup.
type Config struct {
	Seed            string
	ProtocolVersion int32
	Port            uint16
	LogFile         string
	NPeers          uint8
	ClientOnly      bool
	StorePath       string
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads KEY=VALUE settings from r and validates that every required
// key was present.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{StorePath: DefaultStorePath}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Split(line, "=")
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, line)
		}
		if err := cfg.loadSetting(fields[0], fields[1]); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if err := cfg.checkRequired(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) loadSetting(name, value string) error {
	switch name {
	case "SEED":
		cfg.Seed = value
	case "PROTOCOL_VERSION":
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: PROTOCOL_VERSION=%q", ErrInvalidValue, value)
		}
		cfg.ProtocolVersion = int32(v)
	case "PORT":
		v, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return fmt.Errorf("%w: PORT=%q", ErrInvalidValue, value)
		}
		cfg.Port = uint16(v)
	case "LOG":
		cfg.LogFile = value
	case "NPEERS":
		v, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return fmt.Errorf("%w: NPEERS=%q", ErrInvalidValue, value)
		}
		cfg.NPeers = uint8(v)
	case "STORE_PATH":
		cfg.StorePath = value
	case "CLIENT_ONLY":
		cfg.ClientOnly = value == "true"
	default:
		// Unrecognized keys are ignored rather than rejected.
	}
	return nil
}

func (cfg *Config) checkRequired() error {
	switch {
	case cfg.Seed == "":
		return fmt.Errorf("%w: SEED", ErrMissingValue)
	case cfg.ProtocolVersion == 0:
		return fmt.Errorf("%w: PROTOCOL_VERSION", ErrMissingValue)
	case cfg.Port == 0:
		return fmt.Errorf("%w: PORT", ErrMissingValue)
	case cfg.LogFile == "":
		return fmt.Errorf("%w: LOG", ErrMissingValue)
	case cfg.NPeers == 0:
		return fmt.Errorf("%w: NPEERS", ErrMissingValue)
	}
	return nil
}
