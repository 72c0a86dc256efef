package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/corvidchess/corvid/internal/types"
)

func TestMoveRoundTrip(t *testing.T) {
	src, _ := ParseSquare("e2")
	dst, _ := ParseSquare("e4")
	m := NewMove(src, dst, FlagDoublePawnPush)

	assert.Equal(t, src, m.From())
	assert.Equal(t, dst, m.To())
	assert.Equal(t, FlagDoublePawnPush, m.Flag())
	assert.False(t, m.IsCapture())
	assert.Equal(t, "e2e4", m.String())
}

func TestMovePromotionLongAlgebraic(t *testing.T) {
	src, _ := ParseSquare("a7")
	dst, _ := ParseSquare("a8")
	m := NewMove(src, dst, PromotionFlag(Queen, false))

	require.True(t, m.IsPromotion())
	assert.False(t, m.IsCapture())
	assert.Equal(t, Queen, m.PromotionType())
	assert.Equal(t, "a7a8q", m.String())
}

func TestMoveCapturingPromotion(t *testing.T) {
	src, _ := ParseSquare("b7")
	dst, _ := ParseSquare("a8")
	m := NewMove(src, dst, PromotionFlag(Rook, true))

	assert.True(t, m.IsPromotion())
	assert.True(t, m.IsCapture())
	assert.Equal(t, Rook, m.PromotionType())
}

func TestMoveNoneIsZero(t *testing.T) {
	assert.Equal(t, Move(0), MoveNone)
	assert.Equal(t, "0000", MoveNone.String())
}

func TestSquareParseRoundTrip(t *testing.T) {
	for _, text := range []string{"a1", "h8", "e4", "d5"} {
		sq, ok := ParseSquare(text)
		require.True(t, ok)
		assert.Equal(t, text, sq.String())
	}
}

func TestSquareInvalidText(t *testing.T) {
	_, ok := ParseSquare("z9")
	assert.False(t, ok)
	_, ok = ParseSquare("e")
	assert.False(t, ok)
}
