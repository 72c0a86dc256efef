// Command corvid is the UCI engine binary: it wires flags and an optional
// TOML config file into internal/config, then either runs a one-shot perft
// self-test or hands control to internal/uci's stdin/stdout command loop.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/internal/config"
	"github.com/corvidchess/corvid/internal/logging"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/position"
	"github.com/corvidchess/corvid/internal/uci"
)

var out = message.NewPrinter(language.English)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version info and exit")
		configFile  = flag.String("config", "./config.toml", "path to a TOML config file")
		logLevel    = flag.String("loglvl", "", "override the configured log level (critical|error|warning|notice|info|debug)")
		perftDepth  = flag.Int("perft", 0, "run a perft self-test to this depth and exit, instead of starting the UCI loop")
		fen         = flag.String("fen", position.StartFEN, "starting position for -perft, in FEN")
		cpuProfile  = flag.Bool("profile", false, "write a CPU profile (pprof) for the life of the process")
	)
	flag.Parse()

	if *showVersion {
		printVersionInfo()
		return
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	config.Load(*configFile)
	cfg := config.Settings

	level := cfg.Log.Level
	if *logLevel != "" {
		level = *logLevel
	}
	if name, ok := config.LogLevels[level]; ok {
		if l, err := logging.ParseLevel(name); err == nil {
			logging.SetLevel(l)
		}
	}

	if *perftDepth > 0 {
		runPerft(*fen, *perftDepth)
		return
	}

	uci.New(cfg).Loop()
}

func runPerft(fen string, depth int) {
	p, err := position.NewPositionFEN(fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "corvid: invalid -fen: %v\n", err)
		os.Exit(1)
	}
	for d := 1; d <= depth; d++ {
		start := time.Now()
		nodes := movegen.Perft(p, d)
		elapsed := time.Since(start)
		nps := float64(nodes) / elapsed.Seconds()
		out.Printf("depth %d: %d nodes in %s (%.0f nps)\n", d, nodes, elapsed.Round(time.Millisecond), nps)
	}
}

func printVersionInfo() {
	out.Printf("Corvid UCI chess engine\n")
	out.Printf("Go version:    %s\n", runtime.Version())
	out.Printf("GOARCH:        %s\n", runtime.GOARCH)
	out.Printf("GOOS:          %s\n", runtime.GOOS)
	out.Printf("NumCPU:        %d\n", runtime.NumCPU())
	out.Printf("NumGoroutine:  %d\n", runtime.NumGoroutine())
	if cwd, err := os.Getwd(); err == nil {
		out.Printf("cwd:           %s\n", cwd)
	}
}
