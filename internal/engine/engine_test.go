package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/internal/config"
	"github.com/corvidchess/corvid/internal/engine"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/search"
)

func newController(t *testing.T, onResult func(search.Result)) *engine.Controller {
	t.Helper()
	cfg := config.Default()
	cfg.Search.HashSizeMb = 1
	return engine.New(cfg, onResult)
}

func TestSetPositionFenLeavesPositionUnchangedOnError(t *testing.T) {
	c := newController(t, nil)
	before := c.Position().FEN()

	err := c.SetPositionFEN("not a fen at all", nil)
	require.Error(t, err)
	assert.Equal(t, before, c.Position().FEN())
}

func TestSetPositionStartposAppliesMoves(t *testing.T) {
	c := newController(t, nil)
	err := c.SetPositionStartpos([]string{"e2e4", "e7e5", "g1f3"})
	require.NoError(t, err)
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", c.Position().FEN())
}

func TestSetPositionStartposStopsAtFirstIllegalMove(t *testing.T) {
	c := newController(t, nil)
	err := c.SetPositionStartpos([]string{"e2e4", "e2e4"})
	var invalidMove *engine.InvalidMoveError
	require.ErrorAs(t, err, &invalidMove)
	assert.Equal(t, "e2e4", invalidMove.Token)
}

func TestGoNodesModeProducesLegalBestMoveViaCallback(t *testing.T) {
	done := make(chan search.Result, 1)
	c := newController(t, func(r search.Result) { done <- r })

	require.NoError(t, c.SetPositionStartpos(nil))
	c.Go(search.Limits{Mode: search.ModeNodes, Nodes: 150})

	select {
	case r := <-done:
		legal := movegen.GenerateLegal(c.Position())
		assert.True(t, legal.Contains(r.Best))
	case <-time.After(5 * time.Second):
		t.Fatal("search did not report a result in time")
	}
}

func TestSetOptionClampsOutOfRangeThreads(t *testing.T) {
	c := newController(t, nil)
	err := c.SetOption("Threads", "9999")
	var rangeErr *engine.OptionOutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "512", rangeErr.ClampedValue)
}

func TestSetOptionUnknownNameReturnsSyntaxError(t *testing.T) {
	c := newController(t, nil)
	err := c.SetOption("NotAnOption", "1")
	var syntaxErr *engine.InvalidUciSyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}

func TestNewGameClearsCacheAndResetsPosition(t *testing.T) {
	c := newController(t, nil)
	require.NoError(t, c.SetPositionStartpos([]string{"e2e4"}))
	c.NewGame()
	assert.Equal(t, 0, c.Hashfull())

	legal := movegen.GenerateLegal(c.Position())
	assert.Equal(t, 20, legal.Len())
}
