// Package uci implements the line-oriented text codec and the command
// loop for the UCI protocol boundary (§4.H, §6). It parses commands into
// calls on an engine.Controller and renders the controller's results back
// as UCI events; the controller itself never sees protocol text.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/internal/config"
	"github.com/corvidchess/corvid/internal/engine"
	"github.com/corvidchess/corvid/internal/logging"
	"github.com/corvidchess/corvid/internal/search"
)

// EngineName and EngineAuthor answer the "uci" command's identify lines.
const (
	EngineName   = "Corvid"
	EngineAuthor = "the Corvid contributors"
)

var out = message.NewPrinter(language.English)

var whitespace = regexp.MustCompile(`\s+`)

// Handler owns the stdin/stdout loop and translates it to/from an
// engine.Controller. Create one with New; InIo and SetOutput let tests
// redirect the command stream and event stream independently.
type Handler struct {
	InIo *bufio.Scanner

	log        *logging.Logger
	controller *engine.Controller

	// outMu guards outIo: the asynchronous reportWhileSearching goroutine
	// and the main command loop (or, in tests, Command's temporary
	// redirection) both write to it.
	outMu sync.Mutex
	outIo *bufio.Writer
}

// New creates a Handler reading from stdin and writing to stdout, backed
// by a freshly constructed engine.Controller.
func New(cfg config.Config) *Handler {
	h := &Handler{
		InIo:  bufio.NewScanner(os.Stdin),
		outIo: bufio.NewWriter(os.Stdout),
		log:   logging.Get("uci"),
	}
	h.controller = engine.New(cfg, h.sendResult)
	return h
}

// SetOutput redirects all subsequent events to w, replacing stdout. Useful
// for tests that need to observe output emitted asynchronously, after a
// command itself has already returned (e.g. a "bestmove" reported once a
// search finishes in the background).
func (h *Handler) SetOutput(w io.Writer) {
	h.outMu.Lock()
	h.outIo = bufio.NewWriter(w)
	h.outMu.Unlock()
}

// Loop reads commands from InIo until "quit" or end of input.
func (h *Handler) Loop() {
	for h.InIo.Scan() {
		if h.handleReceivedCommand(h.InIo.Text()) {
			return
		}
	}
}

// Command runs a single line through the handler and returns whatever it
// wrote to its output, for tests and scripting.
func (h *Handler) Command(cmd string) string {
	buf := new(bytes.Buffer)

	h.outMu.Lock()
	prev := h.outIo
	h.outIo = bufio.NewWriter(buf)
	h.outMu.Unlock()

	h.handleReceivedCommand(cmd)

	h.outMu.Lock()
	_ = h.outIo.Flush()
	h.outIo = prev
	h.outMu.Unlock()

	return buf.String()
}

func (h *Handler) handleReceivedCommand(cmd string) (quit bool) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return false
	}
	h.log.Infof("<< %s", cmd)

	tokens := whitespace.Split(cmd, -1)
	switch tokens[0] {
	case "quit":
		h.controller.Quit()
		return true
	case "uci":
		h.uciCommand()
	case "debug":
		// accepted, verbose info toggling is not currently implemented
	case "isready":
		h.controller.IsReady()
		h.send("readyok")
	case "setoption":
		h.setOptionCommand(tokens)
	case "ucinewgame":
		h.controller.NewGame()
	case "position":
		h.positionCommand(tokens)
	case "go":
		h.goCommand(tokens)
	case "stop":
		h.controller.Stop()
	case "ponderhit":
		h.controller.PonderHit()
	default:
		h.sendInfoString(fmt.Sprintf("unknown command: %s", tokens[0]))
	}
	return false
}

func (h *Handler) uciCommand() {
	h.send(fmt.Sprintf("id name %s", EngineName))
	h.send(fmt.Sprintf("id author %s", EngineAuthor))
	for _, o := range engine.OptionSpecs() {
		h.send(renderOption(o))
	}
	h.send("uciok")
}

func renderOption(o engine.OptionSpec) string {
	switch o.Type {
	case "spin":
		return fmt.Sprintf("option name %s type spin default %s min %d max %d", o.Name, o.Default, o.Min, o.Max)
	case "check":
		return fmt.Sprintf("option name %s type check default %s", o.Name, o.Default)
	default:
		return fmt.Sprintf("option name %s type string default %s", o.Name, o.Default)
	}
}

func (h *Handler) setOptionCommand(tokens []string) {
	// "setoption name <N...> value <V...>"; the option name may itself
	// contain spaces, so scan up to the "value" keyword.
	if len(tokens) < 3 || tokens[1] != "name" {
		h.sendInfoString("malformed setoption command")
		return
	}
	i := 2
	var name []string
	for i < len(tokens) && tokens[i] != "value" {
		name = append(name, tokens[i])
		i++
	}
	value := ""
	if i < len(tokens)-1 && tokens[i] == "value" {
		value = strings.Join(tokens[i+1:], " ")
	}
	if err := h.controller.SetOption(strings.Join(name, " "), value); err != nil {
		h.sendInfoString(err.Error())
	}
}

func (h *Handler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		h.sendInfoString("malformed position command")
		return
	}

	i := 1
	var err error
	switch tokens[i] {
	case "startpos":
		i++
		moves := movesAfter(tokens, i)
		err = h.controller.SetPositionStartpos(moves)
	case "fen":
		i++
		var fenFields []string
		for i < len(tokens) && tokens[i] != "moves" {
			fenFields = append(fenFields, tokens[i])
			i++
		}
		moves := movesAfter(tokens, i)
		err = h.controller.SetPositionFEN(strings.Join(fenFields, " "), moves)
	default:
		h.sendInfoString("malformed position command: expected startpos or fen")
		return
	}
	if err != nil {
		h.sendInfoString(err.Error())
	}
}

func movesAfter(tokens []string, i int) []string {
	if i < len(tokens) && tokens[i] == "moves" {
		return tokens[i+1:]
	}
	return nil
}

func (h *Handler) goCommand(tokens []string) {
	limits, err := parseLimits(tokens)
	if err != nil {
		h.sendInfoString(err.Error())
		return
	}
	h.controller.Go(limits)
	go h.reportWhileSearching()
}

func parseLimits(tokens []string) (search.Limits, error) {
	limits := search.Limits{Mode: search.ModeInfinite}
	i := 1
	for i < len(tokens) {
		switch tokens[i] {
		case "infinite":
			limits.Mode = search.ModeInfinite
			i++
		case "ponder":
			limits.Ponder = true
			i++
		case "depth":
			i++
			n, err := intArg(tokens, i, "depth")
			if err != nil {
				return limits, err
			}
			limits.Mode = search.ModeDepth
			limits.Depth = n
			i++
		case "nodes":
			i++
			n, err := intArg(tokens, i, "nodes")
			if err != nil {
				return limits, err
			}
			limits.Mode = search.ModeNodes
			limits.Nodes = uint64(n)
			i++
		case "mate":
			i++
			n, err := intArg(tokens, i, "mate")
			if err != nil {
				return limits, err
			}
			limits.Mode = search.ModeMateIn
			limits.MateIn = n
			i++
		case "movetime":
			i++
			n, err := intArg(tokens, i, "movetime")
			if err != nil {
				return limits, err
			}
			limits.MoveTime = time.Duration(n) * time.Millisecond
			i++
		case "wtime":
			i++
			n, err := intArg(tokens, i, "wtime")
			if err != nil {
				return limits, err
			}
			limits.WTime = time.Duration(n) * time.Millisecond
			i++
		case "btime":
			i++
			n, err := intArg(tokens, i, "btime")
			if err != nil {
				return limits, err
			}
			limits.BTime = time.Duration(n) * time.Millisecond
			i++
		case "winc":
			i++
			n, err := intArg(tokens, i, "winc")
			if err != nil {
				return limits, err
			}
			limits.WInc = time.Duration(n) * time.Millisecond
			i++
		case "binc":
			i++
			n, err := intArg(tokens, i, "binc")
			if err != nil {
				return limits, err
			}
			limits.BInc = time.Duration(n) * time.Millisecond
			i++
		case "movestogo":
			i++
			n, err := intArg(tokens, i, "movestogo")
			if err != nil {
				return limits, err
			}
			limits.MovesToGo = n
			i++
		case "searchmoves":
			// root move restriction is not currently implemented; consume
			// the remaining tokens so they are not misread as a new kind.
			i = len(tokens)
		default:
			i++
		}
	}
	return limits, nil
}

func intArg(tokens []string, i int, field string) (int, error) {
	if i >= len(tokens) {
		return 0, fmt.Errorf("go command missing value for %s", field)
	}
	n, err := strconv.Atoi(tokens[i])
	if err != nil {
		return 0, fmt.Errorf("go command: %s value %q is not a number", field, tokens[i])
	}
	return n, nil
}

// reportWhileSearching periodically emits "info nodes/hashfull" lines
// until the controller stops searching (§6 info event).
func (h *Handler) reportWhileSearching() {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		if !h.controller.IsSearching() {
			return
		}
		h.send(fmt.Sprintf("info nodes %d hashfull %d", h.controller.NodesVisited(), h.controller.Hashfull()))
	}
}

// sendResult is the engine.Controller's onResult callback: renders a
// search.Result as a "bestmove" event (§6).
func (h *Handler) sendResult(r search.Result) {
	var b strings.Builder
	b.WriteString("bestmove ")
	if r.Best == 0 {
		b.WriteString("0000")
	} else {
		b.WriteString(r.Best.String())
	}
	if r.Ponder != 0 {
		b.WriteString(" ponder ")
		b.WriteString(r.Ponder.String())
	}
	h.send(b.String())
}

func (h *Handler) sendInfoString(msg string) {
	h.send("info string " + msg)
	h.log.Warning(msg)
}

func (h *Handler) send(line string) {
	h.outMu.Lock()
	_, _ = io.WriteString(h.outIo, line+"\n")
	_ = h.outIo.Flush()
	h.outMu.Unlock()
	h.log.Infof(">> %s", line)
}
