// Package config loads the engine's optional TOML configuration file.
// Every field here is also settable at runtime via UCI setoption; the file
// only supplies the defaults the engine starts with before any GUI talks
// to it, matching the "file is default, protocol is authoritative" contract
// of SPEC_FULL.md's ambient-stack section.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config mirrors the subset of UCI options worth pre-seeding from disk.
type Config struct {
	Hash            int    `toml:"hash"`
	Threads         int    `toml:"threads"`
	MoveOverheadMS  int    `toml:"move_overhead_ms"`
	SyzygyPath      string `toml:"syzygy_path"`
	BookPath        string `toml:"book_path"`
	MetricsListen   string `toml:"metrics_listen"`
	UseLichessProbe bool   `toml:"use_lichess_probe"`
}

// Default returns the engine's built-in defaults, used when no config file
// is present or a field is left unset in one that is.
func Default() Config {
	return Config{
		Hash:           64,
		Threads:        1,
		MoveOverheadMS: 10,
		MetricsListen:  "",
	}
}

// Load reads path (TOML) and overlays it onto Default(). A missing file is
// not an error — the engine runs on defaults, matching the teacher's
// tolerant "no config == NNUE not loaded" fallback style in cmd/main.go.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}
