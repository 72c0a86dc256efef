// Package search implements the budget-bounded MCTS-variant tree search
// (§4.F): an arena-indexed tree (arena.go) driven by a pool of worker
// goroutines, gated by the same weighted-semaphore discipline the teacher's
// internal/search.Search uses for StartSearch/StopSearch/IsSearching.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/corvidchess/corvid/internal/evaluator"
	"github.com/corvidchess/corvid/internal/logging"
	"github.com/corvidchess/corvid/internal/position"
	"github.com/corvidchess/corvid/internal/transpositiontable"
	. "github.com/corvidchess/corvid/internal/types"
)

// ErrInternalInvariantViolation is returned (wrapped with the recovered
// panic value) when a worker goroutine panics — a magic-table collision or
// bitboard desync, never an ordinary search condition (§7).
var ErrInternalInvariantViolation = errors.New("internal invariant violation")

// Mode selects a search's termination rule (§4.F).
type Mode int

const (
	ModeInfinite Mode = iota
	ModeDepth
	ModeNodes
	ModeMateIn
)

// Limits bundles a Go-side go command's parameters (§6).
type Limits struct {
	Mode   Mode
	Depth  int
	Nodes  uint64
	MateIn int

	WTime, BTime time.Duration
	WInc, BInc   time.Duration
	MoveTime     time.Duration
	MovesToGo    int
	Ponder       bool
	AnalyseMode  bool // UCI_AnalyseMode: disables time-management shortcuts
}

// Result is what StartSearch eventually reports: the engine controller
// turns this into a bestmove event (§6).
type Result struct {
	Best   Move
	Ponder Move
	PV     []Move
	Score  Value
	Nodes  uint64
	Depth  int
}

// Search drives one Tree with Threads workers. Mirrors the teacher's
// internal/search.Search lifecycle: NewSearch, StartSearch, StopSearch,
// IsSearching, WaitWhileSearching, NewGame.
type Search struct {
	log *logging.Logger

	eval *evaluator.Evaluator
	tt   *transpositiontable.TtTable

	Threads             int
	ExplorationConstant float64

	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	mu           sync.Mutex
	cancel       atomic.Bool
	nodesVisited atomic.Uint64
	tree         *Tree
	lastResult   Result

	onResult func(Result)
}

// NewSearch creates a Search using eval for static scoring and tt as the
// shared transposition cache. onResult (may be nil) is called exactly once
// per search that StartSearch launches, with the final Result, from the
// search's own goroutine. A StartSearch made while another search is still
// running logs an error, starts nothing and does not call onResult.
func NewSearch(eval *evaluator.Evaluator, tt *transpositiontable.TtTable, onResult func(Result)) *Search {
	return &Search{
		log:                 logging.Get("search"),
		eval:                eval,
		tt:                  tt,
		Threads:             1,
		ExplorationConstant: 1.41421356,
		initSemaphore:       semaphore.NewWeighted(1),
		isRunning:           semaphore.NewWeighted(1),
		onResult:            onResult,
	}
}

// NewGame stops any running search and clears the transposition cache
// (§9's resolution of the open question: NewGame clears the cache).
func (s *Search) NewGame() {
	s.StopSearch()
	s.tt.Clear()
}

// StartSearch begins searching pos under limits. Takes a clone of pos
// internally; callers may keep mutating their own copy. Returns once the
// search goroutine has started, not once it has finished — use
// WaitWhileSearching or the onResult callback to observe completion.
func (s *Search) StartSearch(pos *position.Position, limits Limits) {
	_ = s.initSemaphore.Acquire(context.Background(), 1)
	go s.run(pos.Clone(), limits)
	_ = s.initSemaphore.Acquire(context.Background(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch cancels a running search and blocks until it has finished and
// reported its Result (§5: "Stop must cause a BestMove event before any
// subsequent ReadyOk").
func (s *Search) StopSearch() {
	s.cancel.Store(true)
	s.WaitWhileSearching()
}

// IsSearching reports whether a search is currently running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until no search is running.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.Background(), 1)
	s.isRunning.Release(1)
}

// LastResult returns the most recently completed search's Result.
func (s *Search) LastResult() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// NodesVisited returns the number of tree iterations performed by the
// current (or most recent) search.
func (s *Search) NodesVisited() uint64 {
	return s.nodesVisited.Load()
}

// CurrentTree returns the tree belonging to the running (or most recently
// finished) search, or nil if none has started yet. Used by the UCI
// boundary to report "info" lines (best line, score, node count) while a
// search is still in progress.
func (s *Search) CurrentTree() *Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// run is launched by StartSearch in its own goroutine and owns one Tree
// for the lifetime of one search.
func (s *Search) run(pos *position.Position, limits Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("search already running")
		s.initSemaphore.Release(1)
		return
	}
	defer s.isRunning.Release(1)

	s.cancel.Store(false)
	s.nodesVisited.Store(0)

	tree := NewTree(pos, s.eval, s.tt, s.ExplorationConstant)
	s.mu.Lock()
	s.tree = tree
	s.mu.Unlock()

	s.log.Infof("searching: %s", pos.FEN())

	// init phase is done: wake StartSearch's second Acquire.
	s.initSemaphore.Release(1)

	deadline, cancelTimer := s.scheduleDeadline(pos, limits)
	defer cancelTimer()

	threads := s.Threads
	if threads < 1 {
		threads = 1
	}

	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()
	if !deadline.IsZero() {
		t := time.AfterFunc(time.Until(deadline), func() {
			s.cancel.Store(true)
			cancelCtx()
		})
		defer t.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < threads; i++ {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: %v", ErrInternalInvariantViolation, r)
				}
			}()
			for !s.cancel.Load() {
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				tree.Iterate()
				n := s.nodesVisited.Add(1)
				if s.terminationReached(tree, limits, n) {
					s.cancel.Store(true)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Criticalf("search worker failed: %v", err)
	}

	result := s.buildResult(tree)
	s.mu.Lock()
	s.lastResult = result
	s.mu.Unlock()

	if s.onResult != nil {
		s.onResult(result)
	}
}

// scheduleDeadline computes a wall-clock deadline from limits' time
// controls (§5: "Timeouts... are implemented by scheduling a cancellation
// after the budget elapses"), or a zero Time if the search has no
// intrinsic deadline (Depth/Nodes/MateIn/Infinite without movetime).
func (s *Search) scheduleDeadline(pos *position.Position, limits Limits) (time.Time, func()) {
	if limits.MoveTime > 0 {
		return time.Now().Add(limits.MoveTime), func() {}
	}
	if limits.AnalyseMode || limits.Ponder {
		return time.Time{}, func() {}
	}

	var budget time.Duration
	switch pos.ActiveSide() {
	case White:
		budget = allocateBudget(limits.WTime, limits.WInc, limits.MovesToGo)
	case Black:
		budget = allocateBudget(limits.BTime, limits.BInc, limits.MovesToGo)
	}
	if budget <= 0 {
		return time.Time{}, func() {}
	}
	return time.Now().Add(budget), func() {}
}

// allocateBudget is a simple fixed fraction of remaining time plus the
// increment, divided across the estimated moves left in the time control.
func allocateBudget(remaining, inc time.Duration, movesToGo int) time.Duration {
	if remaining <= 0 {
		return 0
	}
	slices := movesToGo
	if slices <= 0 {
		slices = 30
	}
	budget := remaining/time.Duration(slices) + inc
	if budget > remaining {
		budget = remaining
	}
	return budget
}

func (s *Search) terminationReached(tree *Tree, limits Limits, nodesVisited uint64) bool {
	switch limits.Mode {
	case ModeNodes:
		return nodesVisited >= limits.Nodes
	case ModeDepth:
		_, leaf := tree.BestLine()
		return tree.IsTerminal(leaf) || tree.depthOf(leaf) >= limits.Depth
	case ModeMateIn:
		_, leaf := tree.BestLine()
		if !tree.IsTerminal(leaf) {
			return false
		}
		v := tree.Value(leaf)
		return v.IsMateValue() && v > 0 && v.MateIn() <= limits.MateIn
	default: // ModeInfinite: runs until StopSearch cancels it.
		return false
	}
}

func (s *Search) buildResult(tree *Tree) Result {
	line, _ := tree.BestLine()
	best, ok := tree.BestChild(0)
	r := Result{
		PV:    line,
		Nodes: s.nodesVisited.Load(),
	}
	if !ok {
		return r
	}
	r.Best = tree.Move(best)
	r.Score = tree.Value(best)
	r.Depth = len(line)
	if ponder, ok := tree.BestChild(best); ok {
		r.Ponder = tree.Move(ponder)
	}
	return r
}
