// Package attacks precomputes every table the move generator needs: king,
// knight and pawn step/attack tables, and magic-indexed sliding attack
// tables for bishops and rooks. All tables are built once by init() and are
// read-only afterward, the way the teacher's internal/attacks/internal/types
// magic machinery precomputes Stockfish-style fancy magic bitboards at
// process startup rather than shipping literal tables.
package attacks

import (
	. "github.com/corvidchess/corvid/internal/types"
)

var (
	kingAttacks   [SquareCount]Bitboard
	knightAttacks [SquareCount]Bitboard
	pawnPush      [SideCount][SquareCount]Bitboard
	pawnAttacks   [SideCount][SquareCount]Bitboard
)

var kingSteps = [8]Direction{North, South, East, West, Northeast, Northwest, Southeast, Southwest}

func init() {
	initLeapers()
	initMagics()
}

func initLeapers() {
	for sqIdx := 0; sqIdx < SquareCount; sqIdx++ {
		sq := Square(sqIdx)
		var king Bitboard
		for _, d := range kingSteps {
			if to := Step(sq, d); to.IsValid() {
				king = king.Set(to)
			}
		}
		kingAttacks[sq] = king

		knightAttacks[sq] = knightAttacksFrom(sq)

		// White pawn push: one step north, plus a double push from the
		// second rank when both the step-over and landing squares are on
		// the board (occupancy is applied later by the move generator).
		if sq.Rank() < 7 {
			push := Step(sq, North).Bb()
			if sq.Rank() == 1 {
				push |= Step(Step(sq, North), North).Bb()
			}
			pawnPush[White][sq] = push
		}
		if sq.Rank() > 0 {
			push := Step(sq, South).Bb()
			if sq.Rank() == 6 {
				push |= Step(Step(sq, South), South).Bb()
			}
			pawnPush[Black][sq] = push
		}

		var wAtt, bAtt Bitboard
		if to := Step(sq, Northeast); to.IsValid() {
			wAtt = wAtt.Set(to)
		}
		if to := Step(sq, Northwest); to.IsValid() {
			wAtt = wAtt.Set(to)
		}
		if to := Step(sq, Southeast); to.IsValid() {
			bAtt = bAtt.Set(to)
		}
		if to := Step(sq, Southwest); to.IsValid() {
			bAtt = bAtt.Set(to)
		}
		pawnAttacks[White][sq] = wAtt
		pawnAttacks[Black][sq] = bAtt
	}
}

// knightAttacksFrom computes the knight's destinations from sq on an empty
// board by composing two leaper steps (one file-step, one rank-step) in
// every combination, discarding any that leave the board or wrap an edge.
func knightAttacksFrom(sq Square) Bitboard {
	file, rank := sq.File(), sq.Rank()
	deltas := [8][2]int{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	var b Bitboard
	for _, d := range deltas {
		f, r := file+d[0], rank+d[1]
		if f >= 0 && f < 8 && r >= 0 && r < 8 {
			b = b.Set(NewSquare(f, r))
		}
	}
	return b
}

// KingAttacks returns the king's destination set from sq on an empty board.
func KingAttacks(sq Square) Bitboard { return kingAttacks[sq] }

// KnightAttacks returns the knight's destination set from sq on an empty
// board.
func KnightAttacks(sq Square) Bitboard { return knightAttacks[sq] }

// PawnPushes returns the push destinations (single, plus double from the
// home rank) for a pawn of side s on sq, ignoring occupancy.
func PawnPushes(s Side, sq Square) Bitboard { return pawnPush[s][sq] }

// PawnAttacks returns the diagonal capture destinations for a pawn of side
// s on sq.
func PawnAttacks(s Side, sq Square) Bitboard { return pawnAttacks[s][sq] }
