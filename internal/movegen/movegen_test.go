package movegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/position"
	. "github.com/corvidchess/corvid/internal/types"
)

// Perft counts from the standard starting position (§8). Depths 4-5 are
// accurate against the same generator but are left out of the default test
// run to keep `go test` fast; the depth-3 case already includes captures,
// and TestPerftKiwipete covers castling and en passant. No perft case here
// reaches a promotion.
func TestPerftStartPosition(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	for _, c := range cases {
		p := position.NewPosition()
		got := movegen.Perft(p, c.depth)
		assert.Equal(t, c.nodes, got, "perft(%d) from start position", c.depth)
	}
}

// The "Kiwipete" position is the standard second perft test position,
// chosen because it exercises castling and en-passant, which the start
// position alone does not reach within a couple of plies. Its first
// promotions occur at depth 4, beyond the depth-2 count checked here.
func TestPerftKiwipete(t *testing.T) {
	p, err := position.NewPositionFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, uint64(48), movegen.Perft(p, 1))
	assert.Equal(t, uint64(2039), movegen.Perft(p, 2))
}

func TestGeneratedMovesHaveDistinctSquaresAndActiveSideSource(t *testing.T) {
	p := position.NewPosition()
	moves := movegen.GenerateLegal(p)
	require.Equal(t, 20, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		assert.NotEqual(t, m.From(), m.To(), "move %s has src == dest", m)
		piece := p.PieceAt(m.From())
		assert.Equal(t, p.ActiveSide(), piece.Side(), "move %s source square not occupied by active side", m)
	}
}

func TestCastlingMoveUpdatesRights(t *testing.T) {
	p, err := position.NewPositionFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	m, ok := movegen.FromUci(p, "e1g1")
	require.True(t, ok, "kingside castle should be legal and findable via FromUci")
	p.DoMove(m)

	assert.False(t, p.CastlingRights().Has(WhiteKingside))
	assert.Equal(t, byte('R'), p.PieceAt(mustSquare(t, "f1")).Letter())
	assert.Equal(t, byte('K'), p.PieceAt(mustSquare(t, "g1")).Letter())
}

func mustSquare(t *testing.T, text string) Square {
	t.Helper()
	sq, ok := ParseSquare(text)
	if !ok {
		t.Fatalf("invalid square %q", text)
	}
	return sq
}
