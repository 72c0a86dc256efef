// Package engine implements the engine controller (§4.G): the Idle <->
// Searching state machine that owns game state, the search tree's
// dependencies and the UCI option table. It knows nothing about the UCI
// wire format — that lives in internal/uci, which calls into a Controller.
package engine

import (
	"strconv"
	"sync"

	"github.com/corvidchess/corvid/internal/config"
	"github.com/corvidchess/corvid/internal/evaluator"
	"github.com/corvidchess/corvid/internal/logging"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/position"
	"github.com/corvidchess/corvid/internal/search"
	"github.com/corvidchess/corvid/internal/transpositiontable"
)

// Options mirrors §4.G's configuration table.
type Options struct {
	Threads        int
	HashMb         int
	Ponder         bool
	MultiPV        int
	UCIAnalyseMode bool
}

func defaultOptions(cfg config.SearchConfig) Options {
	return Options{
		Threads: cfg.Threads,
		HashMb:  cfg.HashSizeMb,
		Ponder:  cfg.Ponder,
		MultiPV: 1,
	}
}

// Controller holds everything the spec assigns to the engine controller:
// current GameState, the shared transposition cache, at-most-one active
// Search, and configuration (§4.G).
type Controller struct {
	log *logging.Logger

	mu       sync.Mutex
	position *position.Position
	options  Options

	eval *evaluator.Evaluator
	tt   *transpositiontable.TtTable
	srch *search.Search

	pendingPonder bool
	lastGoLimits  search.Limits

	onResult func(search.Result)
}

// New creates a Controller in Idle state at the standard starting
// position. onResult is invoked once per search with its Result — the uci
// package wires this to a "bestmove" event.
func New(cfg config.Config, onResult func(search.Result)) *Controller {
	c := &Controller{
		log:      logging.Get("engine"),
		position: position.NewPosition(),
		options:  defaultOptions(cfg.Search),
		eval:     evaluator.New(),
		tt:       transpositiontable.New(cfg.Search.HashSizeMb),
		onResult: onResult,
	}
	c.srch = search.NewSearch(c.eval, c.tt, c.wrapResult)
	c.srch.Threads = c.options.Threads
	c.srch.ExplorationConstant = cfg.Search.ExplorationConstant
	return c
}

func (c *Controller) wrapResult(r search.Result) {
	if c.onResult != nil {
		c.onResult(r)
	}
}

// NewGame resets game state and clears the transposition cache (§9's
// resolution of the cache-lifetime open question).
func (c *Controller) NewGame() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.srch.NewGame()
	c.position = position.NewPosition()
}

// SetPositionStartpos sets the current position to the standard starting
// position, then applies uciMoves in order.
func (c *Controller) SetPositionStartpos(uciMoves []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position.NewPosition()
	return c.applyMovesLocked(uciMoves)
}

// SetPositionFEN sets the current position from fen, then applies
// uciMoves. On an invalid FEN the current position is left unchanged
// (§7 InvalidFen).
func (c *Controller) SetPositionFEN(fen string, uciMoves []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := position.NewPositionFEN(fen)
	if err != nil {
		return err
	}
	c.position = p
	return c.applyMovesLocked(uciMoves)
}

// applyMovesLocked applies moves in long-algebraic form to c.position.
// The first illegal move stops processing and returns InvalidMoveError,
// per §7's "ignore the move (or all remaining in the list)" choice.
func (c *Controller) applyMovesLocked(uciMoves []string) error {
	for _, token := range uciMoves {
		m, ok := movegen.FromUci(c.position, token)
		if !ok {
			return &InvalidMoveError{Token: token}
		}
		c.position.DoMove(m)
	}
	return nil
}

// Go starts a search under limits on the current position (§4.F/§4.G).
// Non-blocking: returns once the search goroutine has been launched.
func (c *Controller) Go(limits search.Limits) {
	c.mu.Lock()
	pos := c.position.Clone()
	if limits.Ponder {
		c.pendingPonder = true
		c.lastGoLimits = limits
		c.lastGoLimits.Ponder = false
	}
	c.mu.Unlock()

	c.srch.StartSearch(pos, limits)
}

// PonderHit converts a running ponder search into a normally time-managed
// one. Because the tree search does not support swapping time budgets on
// a live tree, this stops the ponder search and restarts a fresh one on
// the (now-confirmed) current position with the original non-ponder
// limits, so the ponder search's tree is discarded rather than reused.
func (c *Controller) PonderHit() {
	c.mu.Lock()
	if !c.pendingPonder {
		c.mu.Unlock()
		c.log.Warning("ponderhit received while not pondering")
		return
	}
	limits := c.lastGoLimits
	c.pendingPonder = false
	c.mu.Unlock()

	c.srch.StopSearch()
	c.Go(limits)
}

// Stop cancels any running search; the controller's onResult callback
// fires with the search's final Result (§5 ordering guarantee: Stop
// precedes the next ReadyOk).
func (c *Controller) Stop() {
	c.srch.StopSearch()
}

// IsSearching reports whether a search is currently running.
func (c *Controller) IsSearching() bool {
	return c.srch.IsSearching()
}

// IsReady blocks until the engine can accept further commands. Nothing in
// this controller needs lazy initialization, so this only needs to ensure
// no search setup is still in flight.
func (c *Controller) IsReady() {
	// no-op: construction is synchronous and StartSearch's own semaphore
	// handshake already guarantees a prior Go has fully initialized
	// before returning.
}

// Quit stops any running search and releases resources. After Quit the
// Controller must not be used again.
func (c *Controller) Quit() {
	c.srch.StopSearch()
}

// Position returns a snapshot of the current position for diagnostics
// (e.g. "info string" board dumps).
func (c *Controller) Position() *position.Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position.Clone()
}

// Hashfull reports the transposition cache's per-mille fullness.
func (c *Controller) Hashfull() int {
	return c.tt.Hashfull()
}

// NodesVisited returns the running (or most recent) search's iteration
// count, for "info nodes" reporting.
func (c *Controller) NodesVisited() uint64 {
	return c.srch.NodesVisited()
}

// CurrentTree exposes the running (or most recent) search's tree, for
// "info score"/"info pv" reporting while a search is in progress.
func (c *Controller) CurrentTree() *search.Tree {
	return c.srch.CurrentTree()
}

// SetOption applies a setoption command (§4.G/§6). Out-of-range numeric
// values are clamped and the clamp is reported via the returned error
// (§7 OptionOutOfRange); the option is still applied at its clamped value.
func (c *Controller) SetOption(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case "Threads":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &InvalidUciSyntaxError{Command: "setoption", Detail: "Threads value not a number: " + value}
		}
		clamped, rangeErr := clamp(name, value, n, 1, 512)
		c.options.Threads = clamped
		c.srch.Threads = clamped
		return rangeErr
	case "Hash":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &InvalidUciSyntaxError{Command: "setoption", Detail: "Hash value not a number: " + value}
		}
		clamped, rangeErr := clamp(name, value, n, 1, 65536)
		c.options.HashMb = clamped
		c.tt.Resize(clamped)
		return rangeErr
	case "Ponder":
		c.options.Ponder = value == "true"
		return nil
	case "MultiPV":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &InvalidUciSyntaxError{Command: "setoption", Detail: "MultiPV value not a number: " + value}
		}
		clamped, rangeErr := clamp(name, value, n, 1, 8)
		c.options.MultiPV = clamped
		return rangeErr
	case "UCI_AnalyseMode":
		c.options.UCIAnalyseMode = value == "true"
		return nil
	default:
		return &InvalidUciSyntaxError{Command: "setoption", Detail: "no such option: " + name}
	}
}

func clamp(name, requested string, n, min, max int) (int, error) {
	if n < min {
		return min, &OptionOutOfRangeError{Name: name, Requested: requested, ClampedValue: strconv.Itoa(min), Min: min, Max: max}
	}
	if n > max {
		return max, &OptionOutOfRangeError{Name: name, Requested: requested, ClampedValue: strconv.Itoa(max), Min: min, Max: max}
	}
	return n, nil
}

// OptionSpecs describes the UCI "option" lines to advertise (§6), in a
// fixed order.
func OptionSpecs() []OptionSpec {
	return []OptionSpec{
		{Name: "Threads", Type: "spin", Default: "1", Min: 1, Max: 512},
		{Name: "Hash", Type: "spin", Default: "16", Min: 1, Max: 65536},
		{Name: "Ponder", Type: "check", Default: "true"},
		{Name: "MultiPV", Type: "spin", Default: "1", Min: 1, Max: 8},
		{Name: "UCI_AnalyseMode", Type: "check", Default: "false"},
	}
}

// OptionSpec is one advertised UCI option.
type OptionSpec struct {
	Name, Type, Default string
	Min, Max            int
}
