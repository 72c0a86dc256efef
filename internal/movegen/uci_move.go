package movegen

import (
	"github.com/corvidchess/corvid/internal/position"
	. "github.com/corvidchess/corvid/internal/types"
)

// FromUci resolves a long-algebraic move string (e.g. "e2e4", "a7a8q")
// against the legal moves available in p. Returns MoveNone, false if the
// text doesn't name a legal move in the current position (§7 InvalidMove).
func FromUci(p *position.Position, text string) (Move, bool) {
	if len(text) < 4 {
		return MoveNone, false
	}
	from, ok := ParseSquare(text[0:2])
	if !ok {
		return MoveNone, false
	}
	to, ok := ParseSquare(text[2:4])
	if !ok {
		return MoveNone, false
	}
	var wantPromo PieceType = PieceTypeNone
	if len(text) == 5 {
		piece, ok := PieceFromLetter(text[4])
		if !ok {
			return MoveNone, false
		}
		wantPromo = piece.Type()
	}

	legal := GenerateLegal(p)
	for i := 0; i < legal.Len(); i++ {
		m := legal.At(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() && m.PromotionType() != wantPromo {
			continue
		}
		if !m.IsPromotion() && wantPromo != PieceTypeNone {
			continue
		}
		return m, true
	}
	return MoveNone, false
}
