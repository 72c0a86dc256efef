package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/position"
)

func TestStartPositionFenRoundTrip(t *testing.T) {
	p := position.NewPosition()
	assert.Equal(t, position.StartFEN, p.FEN())
}

var fenSamples = []string{
	position.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
	"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
	"8/8/8/8/8/8/8/R3K2R w KQ - 0 1",
}

func TestFenRoundTrip(t *testing.T) {
	for _, fen := range fenSamples {
		p, err := position.NewPositionFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, p.FEN())
	}
}

func TestInvalidFenNamesBadField(t *testing.T) {
	_, err := position.NewPositionFEN("not a fen at all")
	require.Error(t, err)

	_, err = position.NewPositionFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1")
	var fenErr *position.InvalidFenError
	require.ErrorAs(t, err, &fenErr)
	assert.Equal(t, "active side", fenErr.Field)
}

func TestFenWithFewerThanSixFieldsIsRejected(t *testing.T) {
	_, err := position.NewPositionFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	require.Error(t, err)
}

func TestDoMoveThenUndoMoveRestoresPosition(t *testing.T) {
	for _, fen := range fenSamples {
		p, err := position.NewPositionFEN(fen)
		require.NoError(t, err, fen)
		before := p.FEN()
		beforeKey := p.ZobristKey()

		legal := movegen.GenerateLegal(p)
		for i := 0; i < legal.Len(); i++ {
			m := legal.At(i)
			p.DoMove(m)
			p.UndoMove()
			assert.Equal(t, before, p.FEN(), "undo of %s did not restore fen for %s", m, fen)
			assert.Equal(t, beforeKey, p.ZobristKey(), "undo of %s did not restore zobrist key for %s", m, fen)
		}
	}
}

func TestSideOccupancyIsDisjointAndCoversOccupancy(t *testing.T) {
	p := position.NewPosition()
	occ := p.Occupancy()
	assert.Equal(t, p.SideOccupancy(0)|p.SideOccupancy(1), occ)
	assert.Equal(t, uint64(0), uint64(p.SideOccupancy(0)&p.SideOccupancy(1)))
}

func TestKnownOpeningSequenceProducesExpectedFen(t *testing.T) {
	p := position.NewPosition()
	for _, uci := range []string{"e2e4", "e7e5", "g1f3"} {
		m, ok := movegen.FromUci(p, uci)
		require.True(t, ok, uci)
		p.DoMove(m)
	}
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", p.FEN())
}
