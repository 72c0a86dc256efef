package attacks

import (
	. "github.com/corvidchess/corvid/internal/types"
)

// AttacksFrom returns the attack/destination set for a piece of kind pt
// standing on sq, given the full board occupancy. Pawns are intentionally
// excluded: their attack set also depends on side, so callers use
// PawnAttacks directly (mirrors the teacher's GetAttacksBb / GetPawnAttacks
// split).
func AttacksFrom(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Knight:
		return KnightAttacks(sq)
	case King:
		return KingAttacks(sq)
	case Bishop:
		return BishopAttacks(sq, occupied)
	case Rook:
		return RookAttacks(sq, occupied)
	case Queen:
		return QueenAttacks(sq, occupied)
	default:
		return BbEmpty
	}
}
