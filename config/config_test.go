package config

import (
	"errors"
	"strings"
	"testing"
)

func TestParseInvalidFormat(t *testing.T) {
	t.Parallel()
	_, err := Parse(strings.NewReader("KEY"))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("Parse() error = %v, want ErrInvalidFormat", err)
	}
}

func TestParseBlankLineIsInvalidFormat(t *testing.T) {
	t.Parallel()
	content := "SEED=seed.test\n" +
		"\n" +
		"PROTOCOL_VERSION=7000\n" +
		"LOG=log.txt\n" +
		"NPEERS=5\n" +
		"PORT=4321"
	_, err := Parse(strings.NewReader(content))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("Parse() error = %v, want ErrInvalidFormat for a blank line", err)
	}
}

func TestParseMissingValue(t *testing.T) {
	t.Parallel()
	_, err := Parse(strings.NewReader("SEED=seed.test\n"))
	if !errors.Is(err, ErrMissingValue) {
		t.Fatalf("Parse() error = %v, want ErrMissingValue", err)
	}
}

func TestParseEmptySeedIsMissingValue(t *testing.T) {
	t.Parallel()
	content := "SEED=\n" +
		"PROTOCOL_VERSION=1234\n" +
		"LOG=log.txt\n" +
		"NPEERS=5\n" +
		"PORT=4321\n" +
		"CLIENT_ONLY=false\n" +
		"STORE_PATH=store"
	_, err := Parse(strings.NewReader(content))
	if !errors.Is(err, ErrMissingValue) {
		t.Fatalf("Parse() error = %v, want ErrMissingValue", err)
	}
}

// TestParseRequiredValues exercises spec scenario 1 exactly.
func TestParseRequiredValues(t *testing.T) {
	t.Parallel()

	content := "SEED=seed.test\n" +
		"PROTOCOL_VERSION=7000\n" +
		"LOG=log.txt\n" +
		"NPEERS=5\n" +
		"PORT=4321\n" +
		"CLIENT_ONLY=true\n" +
		"STORE_PATH=custom"

	cfg, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.ProtocolVersion != 7000 || cfg.Seed != "seed.test" || cfg.NPeers != 5 ||
		cfg.LogFile != "log.txt" || cfg.Port != 4321 || !cfg.ClientOnly || cfg.StorePath != "custom" {
		t.Fatalf("Parse() = %+v, unexpected field values", cfg)
	}
}

func TestParseDefaultsOmittedOptionalKeys(t *testing.T) {
	t.Parallel()

	content := "SEED=seed.test\n" +
		"PROTOCOL_VERSION=7000\n" +
		"LOG=log.txt\n" +
		"NPEERS=5\n" +
		"PORT=4321"

	cfg, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.ClientOnly {
		t.Errorf("ClientOnly = true, want false by default")
	}
	if cfg.StorePath != DefaultStorePath {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, DefaultStorePath)
	}
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	t.Parallel()

	content := "SEED=seed.test\n" +
		"VALOR_NO_REQUERIDO=1234\n" +
		"PROTOCOL_VERSION=7000\n" +
		"LOG=log.txt\n" +
		"NPEERS=5\n" +
		"PORT=4321\n" +
		"CLIENT_ONLY=true\n" +
		"STORE_PATH=custom"

	cfg, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.ProtocolVersion != 7000 || cfg.StorePath != "custom" {
		t.Fatalf("Parse() = %+v, unexpected field values", cfg)
	}
}
