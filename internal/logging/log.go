// Package logging provides a single leveled, formatted logger shared by the
// engine's subsystems. It wraps github.com/op/go-logging the same way a
// small tool wraps any logging library: one backend, one format, one entry
// point per named subsystem.
package logging

import (
	"os"
	"sync"

	. "github.com/op/go-logging"
)

var (
	once    sync.Once
	format  = MustStringFormatter(`%{time:15:04:05.000} %{shortfile}:%{shortfunc} %{level:7s}: %{message}`)
	backend *LeveledBackend
)

// SetLevel sets the level on the shared backend. Every *Logger returned by
// Get is a live view onto this backend, so this takes effect immediately
// for loggers already handed out.
func SetLevel(l Level) {
	once.Do(initBackend)
	(*backend).SetLevel(l, "")
}

// Get returns a named logger writing to stderr with the shared format and
// level. Safe to call from package init() functions.
func Get(name string) *Logger {
	once.Do(initBackend)
	return MustGetLogger(name)
}

// ParseLevel resolves a level name (as found in config.LogLevels) to a
// Level, for the cmd entrypoint's -loglvl flag.
func ParseLevel(name string) (Level, error) {
	return LogLevel(name)
}

func initBackend() {
	// stderr, not stdout: stdout is reserved for the UCI event stream
	// (internal/uci), which a GUI reads as a line-oriented protocol.
	raw := NewLogBackend(os.Stderr, "", 0)
	formatted := NewBackendFormatter(raw, format)
	leveled := AddModuleLevel(formatted)
	leveled.SetLevel(INFO, "")
	SetBackend(leveled)
	backend = &leveled
}
