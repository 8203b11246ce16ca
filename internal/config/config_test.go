package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWithEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want Default() %+v", cfg, Default())
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load(missing file): %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(missing file) = %+v, want Default() %+v", cfg, Default())
	}
}

func TestLoadOverlaysOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	body := "hash = 256\nthreads = 4\nsyzygy_path = \"/tmp/syzygy\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Hash != 256 {
		t.Errorf("Hash = %d, want 256", cfg.Hash)
	}
	if cfg.Threads != 4 {
		t.Errorf("Threads = %d, want 4", cfg.Threads)
	}
	if cfg.SyzygyPath != "/tmp/syzygy" {
		t.Errorf("SyzygyPath = %q, want /tmp/syzygy", cfg.SyzygyPath)
	}
	// MoveOverheadMS was left unset in the file, so the default must survive.
	if cfg.MoveOverheadMS != Default().MoveOverheadMS {
		t.Errorf("MoveOverheadMS = %d, want the default %d", cfg.MoveOverheadMS, Default().MoveOverheadMS)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("hash = not-a-number"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Load(malformed TOML) returned nil error, want a decode error")
	}
}
