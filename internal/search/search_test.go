package search_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/internal/evaluator"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/position"
	"github.com/corvidchess/corvid/internal/search"
	"github.com/corvidchess/corvid/internal/transpositiontable"
)

func TestStartSearchNodesModeReturnsLegalBestMove(t *testing.T) {
	tt := transpositiontable.New(1)
	var result search.Result
	done := make(chan struct{})

	s := search.NewSearch(evaluator.New(), tt, func(r search.Result) {
		result = r
		close(done)
	})
	s.Threads = 2

	p := position.NewPosition()
	s.StartSearch(p, search.Limits{Mode: search.ModeNodes, Nodes: 200})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("search did not complete in time")
	}

	legal := movegen.GenerateLegal(p)
	assert.True(t, legal.Contains(result.Best), "bestmove %s not among legal moves %s", result.Best, legal)
	assert.GreaterOrEqual(t, result.Nodes, uint64(200))
}

func TestStopSearchReturnsBeforeSecondAcquireBlocks(t *testing.T) {
	tt := transpositiontable.New(1)
	s := search.NewSearch(evaluator.New(), tt, nil)
	s.Threads = 1

	p := position.NewPosition()
	s.StartSearch(p, search.Limits{Mode: search.ModeInfinite})
	require.True(t, s.IsSearching())

	time.Sleep(20 * time.Millisecond)
	s.StopSearch()

	assert.False(t, s.IsSearching())
}

func TestNewGameClearsTranspositionCache(t *testing.T) {
	tt := transpositiontable.New(1)
	tt.Insert(position.NewPosition().ZobristKey(), 100)

	s := search.NewSearch(evaluator.New(), tt, nil)
	s.NewGame()

	assert.Equal(t, 0, tt.Len())
}
