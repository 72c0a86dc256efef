// Package movegen enumerates pseudo-legal moves for a position (§4.C) and
// filters them to legal moves by testing whether the mover's king would be
// left in check (§3 "A separate legality filter").
package movegen

import (
	"github.com/corvidchess/corvid/internal/attacks"
	"github.com/corvidchess/corvid/internal/corvidassert"
	"github.com/corvidchess/corvid/internal/logging"
	"github.com/corvidchess/corvid/internal/moveslice"
	"github.com/corvidchess/corvid/internal/position"
	. "github.com/corvidchess/corvid/internal/types"
)

var log = logging.Get("movegen")

// GeneratePseudoLegal emits every move the active side could make ignoring
// whether the mover's own king ends up in check (§4.C).
func GeneratePseudoLegal(p *position.Position) *moveslice.MoveSlice {
	ml := moveslice.New()
	side := p.ActiveSide()
	generatePawnMoves(p, side, ml)
	generateKnightMoves(p, side, ml)
	generateSliderMoves(p, side, Bishop, ml)
	generateSliderMoves(p, side, Rook, ml)
	generateSliderMoves(p, side, Queen, ml)
	generateKingMoves(p, side, ml)
	generateCastling(p, side, ml)
	return ml
}

// GenerateLegal filters GeneratePseudoLegal's output to moves that do not
// leave the mover's own king in check, by making each move on a scratch
// copy of p and testing king safety with the same attack tables used for
// generation (§3, §4.C).
func GenerateLegal(p *position.Position) *moveslice.MoveSlice {
	pseudo := GeneratePseudoLegal(p)
	legal := moveslice.New()
	side := p.ActiveSide()
	scratch := p.Clone()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		scratch.DoMove(m)
		if !scratch.IsAttacked(scratch.KingSquare(side), side.Other()) {
			legal.Push(m)
		}
		scratch.UndoMove()
	}
	return legal
}

// HasLegalMove reports whether the active side has at least one legal
// move, short-circuiting at the first one found (checkmate/stalemate
// detection without paying for full enumeration).
func HasLegalMove(p *position.Position) bool {
	pseudo := GeneratePseudoLegal(p)
	side := p.ActiveSide()
	scratch := p.Clone()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		scratch.DoMove(m)
		attacked := scratch.IsAttacked(scratch.KingSquare(side), side.Other())
		scratch.UndoMove()
		if !attacked {
			return true
		}
	}
	return false
}

func generateKnightMoves(p *position.Position, side Side, ml *moveslice.MoveSlice) {
	friendly := p.SideOccupancy(side)
	enemy := p.SideOccupancy(side.Other())
	for knights := p.PiecesBb(side, Knight); knights != BbEmpty; {
		from := knights.PopLsb()
		for dests := attacks.KnightAttacks(from) &^ friendly; dests != BbEmpty; {
			to := dests.PopLsb()
			pushLeaperMove(ml, from, to, enemy)
		}
	}
}

func generateKingMoves(p *position.Position, side Side, ml *moveslice.MoveSlice) {
	friendly := p.SideOccupancy(side)
	enemy := p.SideOccupancy(side.Other())
	from := p.KingSquare(side)
	for dests := attacks.KingAttacks(from) &^ friendly; dests != BbEmpty; {
		to := dests.PopLsb()
		pushLeaperMove(ml, from, to, enemy)
	}
}

func pushLeaperMove(ml *moveslice.MoveSlice, from, to Square, enemy Bitboard) {
	if corvidassert.Debug {
		corvidassert.Assert(from.IsValid() && to.IsValid() && from != to, "invalid leaper move %d->%d", from, to)
	}
	flag := FlagQuiet
	if enemy.Has(to) {
		flag = FlagCapture
	}
	ml.Push(NewMove(from, to, flag))
}

func generateSliderMoves(p *position.Position, side Side, pt PieceType, ml *moveslice.MoveSlice) {
	friendly := p.SideOccupancy(side)
	enemy := p.SideOccupancy(side.Other())
	occ := p.Occupancy()
	for pieces := p.PiecesBb(side, pt); pieces != BbEmpty; {
		from := pieces.PopLsb()
		for dests := attacks.AttacksFrom(pt, from, occ) &^ friendly; dests != BbEmpty; {
			to := dests.PopLsb()
			pushLeaperMove(ml, from, to, enemy)
		}
	}
}

func generatePawnMoves(p *position.Position, side Side, ml *moveslice.MoveSlice) {
	occ := p.Occupancy()
	enemy := p.SideOccupancy(side.Other())
	epSquare := p.EnPassantSquare()
	promoRank := side.PromotionRank()

	for pawns := p.PiecesBb(side, Pawn); pawns != BbEmpty; {
		from := pawns.PopLsb()

		// Pushes: the precomputed table gives the single (and, from the
		// home rank, double) destination squares ignoring occupancy; the
		// single-step square must be empty for either to be legal, and the
		// double-step square must itself be empty too (§4.C).
		single := Square(int(from) + side.PawnDirection())
		if single.IsValid() && !occ.Has(single) {
			for dests := attacks.PawnPushes(side, from); dests != BbEmpty; {
				to := dests.PopLsb()
				if to == single {
					pushPawnMove(ml, from, to, FlagQuiet, promoRank, false)
				} else if !occ.Has(to) {
					ml.Push(NewMove(from, to, FlagDoublePawnPush))
				}
			}
		}

		// Captures, including en-passant.
		for dests := attacks.PawnAttacks(side, from); dests != BbEmpty; {
			to := dests.PopLsb()
			switch {
			case enemy.Has(to):
				pushPawnMove(ml, from, to, FlagCapture, promoRank, true)
			case to == epSquare && epSquare != SquareNone:
				ml.Push(NewMove(from, to, FlagEnPassant))
			}
		}
	}
}

// pushPawnMove emits a single quiet/capturing pawn move, expanding to four
// promotion moves when the destination is on the last rank (§4.C).
func pushPawnMove(ml *moveslice.MoveSlice, from, to Square, flag MoveFlag, promoRank int, capture bool) {
	if to.Rank() == promoRank {
		for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
			ml.Push(NewMove(from, to, PromotionFlag(pt, capture)))
		}
		return
	}
	ml.Push(NewMove(from, to, flag))
}

// generateCastling emits a move for each castling right still held whose
// king/rook home squares, transit squares, and king's path are clear and
// unattacked (§4.C, resolving the source's deferred transit-attack check).
func generateCastling(p *position.Position, side Side, ml *moveslice.MoveSlice) {
	occ := p.Occupancy()
	rank := 0
	if side == Black {
		rank = 7
	}
	kingFrom := NewSquare(4, rank)
	if p.KingSquare(side) != kingFrom {
		return
	}

	type candidate struct {
		right     CastlingRights
		flag      MoveFlag
		kingTo    Square
		transit   Bitboard // squares that must be empty
		safe      [2]Square // squares (besides kingFrom) the king must not be attacked on
	}
	candidates := [2]candidate{
		{
			right:   KingsideRight(side),
			flag:    FlagCastleKingside,
			kingTo:  NewSquare(6, rank),
			transit: NewSquare(5, rank).Bb() | NewSquare(6, rank).Bb(),
			safe:    [2]Square{NewSquare(5, rank), NewSquare(6, rank)},
		},
		{
			right:   QueensideRight(side),
			flag:    FlagCastleQueenside,
			kingTo:  NewSquare(2, rank),
			transit: NewSquare(1, rank).Bb() | NewSquare(2, rank).Bb() | NewSquare(3, rank).Bb(),
			safe:    [2]Square{NewSquare(3, rank), NewSquare(2, rank)},
		},
	}

	if p.InCheck(side) {
		return
	}

	for _, c := range candidates {
		if !p.CastlingRights().Has(c.right) {
			continue
		}
		if occ&c.transit != BbEmpty {
			continue
		}
		if p.IsAttacked(c.safe[0], side.Other()) || p.IsAttacked(c.safe[1], side.Other()) {
			continue
		}
		ml.Push(NewMove(kingFrom, c.kingTo, c.flag))
	}
}
