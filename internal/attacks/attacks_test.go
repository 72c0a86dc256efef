package attacks_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/corvid/internal/attacks"
	. "github.com/corvidchess/corvid/internal/types"
)

// bruteForceSlide ray-walks in the given directions, stopping at (and
// including) the first blocker -- the reference implementation the magic
// tables are checked against (§8: "equals the result of four-direction
// ray-walking stopping at the first set bit of o (inclusive)").
func bruteForceSlide(directions [4]Direction, sq Square, occupied Bitboard) Bitboard {
	var attack Bitboard
	for _, d := range directions {
		s := sq
		for {
			next := Step(s, d)
			if !next.IsValid() {
				break
			}
			attack = attack.Set(next)
			if occupied.Has(next) {
				break
			}
			s = next
		}
	}
	return attack
}

func TestRookAttacksMatchBruteForceRayWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for sqIdx := 0; sqIdx < SquareCount; sqIdx++ {
		sq := Square(sqIdx)
		for trial := 0; trial < 50; trial++ {
			occ := Bitboard(rng.Uint64())
			want := bruteForceSlide(RookDirections, sq, occ)
			got := attacks.RookAttacks(sq, occ)
			assert.Equal(t, want, got, "rook attacks mismatch at %s with occupancy %016x", sq, uint64(occ))
		}
	}
}

func TestBishopAttacksMatchBruteForceRayWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for sqIdx := 0; sqIdx < SquareCount; sqIdx++ {
		sq := Square(sqIdx)
		for trial := 0; trial < 50; trial++ {
			occ := Bitboard(rng.Uint64())
			want := bruteForceSlide(BishopDirections, sq, occ)
			got := attacks.BishopAttacks(sq, occ)
			assert.Equal(t, want, got, "bishop attacks mismatch at %s with occupancy %016x", sq, uint64(occ))
		}
	}
}

func TestQueenAttacksIsUnionOfRookAndBishop(t *testing.T) {
	e4 := NewSquare(4, 3)
	occ := Bitboard(0)
	want := attacks.RookAttacks(e4, occ) | attacks.BishopAttacks(e4, occ)
	assert.Equal(t, want, attacks.QueenAttacks(e4, occ))
}

func TestKnightAttacksCornerSquare(t *testing.T) {
	a1 := NewSquare(0, 0)
	got := attacks.KnightAttacks(a1)
	assert.Equal(t, 2, got.PopCount())
	assert.True(t, got.Has(NewSquare(1, 2)))
	assert.True(t, got.Has(NewSquare(2, 1)))
}

func TestKingAttacksCenterSquare(t *testing.T) {
	e4 := NewSquare(4, 3)
	got := attacks.KingAttacks(e4)
	assert.Equal(t, 8, got.PopCount())
}

func TestPawnAttacksDoNotWrapFiles(t *testing.T) {
	aFile4 := NewSquare(0, 3)
	got := attacks.PawnAttacks(White, aFile4)
	assert.Equal(t, 1, got.PopCount())
	assert.True(t, got.Has(NewSquare(1, 4)))
}
