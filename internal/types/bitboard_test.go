package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/corvidchess/corvid/internal/types"
)

func TestBitboardSetClearHas(t *testing.T) {
	var b Bitboard
	sq := NewSquare(4, 3) // e4
	b = b.Set(sq)
	assert.True(t, b.Has(sq))
	assert.Equal(t, 1, b.PopCount())
	b = b.Clear(sq)
	assert.False(t, b.Has(sq))
	assert.Equal(t, 0, b.PopCount())
}

func TestBitboardPopLsbIteratesAllBits(t *testing.T) {
	b := FileAMask | Rank1Mask
	count := 0
	for b != BbEmpty {
		b.PopLsb()
		count++
	}
	// a-file (8) + rank-1 (8) minus the shared square a1 counted once
	assert.Equal(t, 15, count)
}

func TestShiftDoesNotWrapFiles(t *testing.T) {
	aFile := FileAMask
	shiftedWest := Shift(aFile, West)
	assert.Equal(t, BbEmpty, shiftedWest, "shifting the a-file west must fall off the board, not wrap to h-file")

	hFile := FileHMask
	shiftedEast := Shift(hFile, East)
	assert.Equal(t, BbEmpty, shiftedEast, "shifting the h-file east must fall off the board, not wrap to a-file")
}

func TestStepOffBoardReturnsNone(t *testing.T) {
	a1 := NewSquare(0, 0)
	assert.Equal(t, SquareNone, Step(a1, South))
	assert.Equal(t, SquareNone, Step(a1, West))
}
