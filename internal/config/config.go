// Package config holds globally available engine configuration, loaded from
// an optional TOML file and overridable from command-line flags or UCI
// setoption commands. Mirrors the teacher's layered default/file/flag
// resolution order.
package config

import (
	"log"

	"github.com/BurntSushi/toml"
)

// Settings is the process-wide configuration instance.
var Settings = Default()

// Config holds every tunable the engine reads at startup. Values set later
// via UCI setoption are applied directly to the running engine and do not
// round-trip back into this struct.
type Config struct {
	Search SearchConfig
	Log    LogConfig
}

// SearchConfig controls search-subsystem defaults.
type SearchConfig struct {
	// Threads is the default worker count for a search (UCI option Threads).
	Threads int
	// HashSizeMb is the default transposition cache size in megabytes (UCI option Hash).
	HashSizeMb int
	// Ponder allows a ponder search to run on the opponent's clock (UCI option Ponder).
	Ponder bool
	// ExplorationConstant is the `c` term in the UCB1 selection formula.
	ExplorationConstant float64
}

// LogConfig controls logging defaults.
type LogConfig struct {
	// Level is one of critical|error|warning|notice|info|debug.
	Level string
}

// Default returns the hard-coded fallback configuration used when no file
// is present or a field is left unset in the file.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Threads:             1,
			HashSizeMb:          16,
			Ponder:              true,
			ExplorationConstant: 1.41421356, // sqrt(2)
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load decodes path (a TOML file) into the global Settings, starting from
// Default() so any field absent from the file keeps its default. A missing
// or malformed file is not fatal: it is logged and defaults are kept,
// matching the teacher's "Config file not found. Using defaults." behavior.
func Load(path string) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		log.Printf("config: could not read %q, using defaults (%v)", path, err)
		return
	}
	Settings = cfg
}

// LogLevels maps the UCI/flag level names to go-logging level names so the
// cmd entrypoint and logging package share one vocabulary.
var LogLevels = map[string]string{
	"critical": "CRITICAL",
	"error":    "ERROR",
	"warning":  "WARNING",
	"notice":   "NOTICE",
	"info":     "INFO",
	"debug":    "DEBUG",
}
