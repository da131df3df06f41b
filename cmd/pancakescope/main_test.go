package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pancakescope/internal/config"
	"pancakescope/internal/scan"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SOLANA_RPC_URL", "")
	t.Setenv("PANCAKE_RPC", "")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseMax(t *testing.T) {
	n, err := parseMax(nil)
	if err != nil || n != -1 {
		t.Fatalf("expected unlimited, got %d %v", n, err)
	}
	n, err = parseMax([]string{"50"})
	if err != nil || n != 50 {
		t.Fatalf("expected 50, got %d %v", n, err)
	}
	for _, bad := range []string{"abc", "0", "-3"} {
		if _, err := parseMax([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := newLogger("debug", format)
		if err != nil {
			t.Fatalf("%s logger: %v", format, err)
		}
		_ = logger.Sync()
	}
	if _, err := newLogger("loud", "json"); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestRootSavesRPC(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "--rpc", "https://rpc.example", "--state-dir", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "RPC URL saved") {
		t.Fatalf("unexpected output: %q", out)
	}

	url, ok, err := config.NewRPCStore(dir).Load()
	if err != nil || !ok || url != "https://rpc.example" {
		t.Fatalf("rpc not saved: %q ok=%v err=%v", url, ok, err)
	}
	if _, err := os.Stat(filepath.Join(dir, config.RPCFileName)); err != nil {
		t.Fatalf("stat rpc file: %v", err)
	}
}

func TestMissingRPC(t *testing.T) {
	_, err := execute(t, "inactive", "--state-dir", t.TempDir())
	if !errors.Is(err, config.ErrRPCRequired) {
		t.Fatalf("expected ErrRPCRequired, got %v", err)
	}
}

func TestTVLRequiresBounds(t *testing.T) {
	_, err := execute(t, "tvl", "--rpc", "http://127.0.0.1:1", "--state-dir", t.TempDir())
	if !errors.Is(err, scan.ErrNoTVLBounds) {
		t.Fatalf("expected ErrNoTVLBounds, got %v", err)
	}
}

func TestInvalidMax(t *testing.T) {
	if _, err := execute(t, "inactive", "lots", "--state-dir", t.TempDir()); err == nil {
		t.Fatalf("expected error for invalid max")
	}
}

func TestUnknownFlag(t *testing.T) {
	if _, err := execute(t, "inactive", "--bogus"); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestConfigCommandUsesSavedRPC(t *testing.T) {
	dir := t.TempDir()
	if err := config.NewRPCStore(dir).Save("https://saved.example"); err != nil {
		t.Fatalf("save rpc: %v", err)
	}
	out, err := execute(t, "config", "--state-dir", dir, "--pg-dsn", "postgres://user:secret@db/x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "https://saved.example") {
		t.Fatalf("saved rpc not used: %q", out)
	}
	if strings.Contains(out, "secret") {
		t.Fatalf("dsn not redacted: %q", out)
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Fatalf("unexpected version output: %q", out)
	}
}
