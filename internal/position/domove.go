package position

import (
	. "github.com/corvidchess/corvid/internal/types"
)

// placePiece sets piece on sq (OR of the square mask) and updates the
// zobrist key incrementally.
func (p *Position) placePiece(piece Piece, sq Square) {
	p.board[sq] = piece
	mask := sq.Bb()
	p.piecesBb[piece.Side()][piece.Type()] |= mask
	p.occupiedBb[piece.Side()] |= mask
	p.zobristKey ^= pieceKey(piece, sq)
}

// removePiece clears sq (XOR of the square mask) and returns what was
// there, updating the zobrist key incrementally.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.board[sq]
	p.board[sq] = PieceNone
	mask := sq.Bb()
	p.piecesBb[piece.Side()][piece.Type()] &^= mask
	p.occupiedBb[piece.Side()] &^= mask
	p.zobristKey ^= pieceKey(piece, sq)
	return piece
}

// movePieceSq relocates whatever sits on from to to: remove then place
// (§4.A).
func (p *Position) movePieceSq(from, to Square) {
	piece := p.removePiece(from)
	p.placePiece(piece, to)
}

func rookHomeSquare(s Side, kingside bool) Square {
	rank := 0
	if s == Black {
		rank = 7
	}
	file := 0
	if kingside {
		file = 7
	}
	return NewSquare(file, rank)
}

func rookCastleDestination(s Side, kingside bool) Square {
	rank := 0
	if s == Black {
		rank = 7
	}
	file := 5
	if !kingside {
		file = 3
	}
	return NewSquare(file, rank)
}

// castlingRightsLostBy returns the castling rights that must be cleared
// because a piece left or arrived at sq (a king or rook home square).
func castlingRightsLostBy(sq Square) CastlingRights {
	switch sq {
	case NewSquare(0, 0):
		return WhiteQueenside
	case NewSquare(7, 0):
		return WhiteKingside
	case NewSquare(0, 7):
		return BlackQueenside
	case NewSquare(7, 7):
		return BlackKingside
	case NewSquare(4, 0):
		return WhiteKingside | WhiteQueenside
	case NewSquare(4, 7):
		return BlackKingside | BlackQueenside
	default:
		return CastlingNone
	}
}

// DoMove applies m to the position, pushing enough undo information onto
// p's internal history stack for a matching UndoMove to restore the prior
// state exactly (§8 round-trip law). The caller is responsible for having
// validated m against the current position (pseudo-legal generation plus
// the legality filter); DoMove does not itself re-validate.
func (p *Position) DoMove(m Move) {
	from, to, flag := m.From(), m.To(), m.Flag()
	mover := p.board[from]

	undo := undoState{
		move:            m,
		castlingRights:  p.castlingRights,
		enPassantSquare: p.enPassantSquare,
		halfMoveClock:   p.halfMoveClock,
		zobristKey:      p.zobristKey,
		capturedSquare:  SquareNone,
	}

	p.zobristKey ^= castlingKey(p.castlingRights)
	p.zobristKey ^= enPassantKey(p.enPassantSquare)
	p.enPassantSquare = SquareNone

	switch {
	case flag.IsCastle():
		p.movePieceSq(from, to)
		kingside := flag == FlagCastleKingside
		rookFrom := rookHomeSquare(p.activeSide, kingside)
		rookTo := rookCastleDestination(p.activeSide, kingside)
		p.movePieceSq(rookFrom, rookTo)

	case flag == FlagEnPassant:
		capturedSq := NewSquare(to.File(), from.Rank())
		undo.captured = p.removePiece(capturedSq)
		undo.capturedSquare = capturedSq
		p.movePieceSq(from, to)

	case m.IsPromotion():
		if m.IsCapture() {
			undo.captured = p.removePiece(to)
			undo.capturedSquare = to
		}
		p.removePiece(from)
		p.placePiece(NewPiece(p.activeSide, m.PromotionType()), to)

	case m.IsCapture():
		undo.captured = p.removePiece(to)
		undo.capturedSquare = to
		p.movePieceSq(from, to)

	default:
		p.movePieceSq(from, to)
		if flag == FlagDoublePawnPush {
			p.enPassantSquare = NewSquare(from.File(), (from.Rank()+to.Rank())/2)
		}
	}

	p.castlingRights = p.castlingRights.
		Without(castlingRightsLostBy(from)).
		Without(castlingRightsLostBy(to))

	p.zobristKey ^= castlingKey(p.castlingRights)
	p.zobristKey ^= enPassantKey(p.enPassantSquare)

	if mover.Type() == Pawn || m.IsCapture() {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}

	if p.activeSide == Black {
		p.fullMoveNumber++
	}
	p.activeSide = p.activeSide.Other()
	p.zobristKey ^= sideToMoveKey

	p.history = append(p.history, undo)
}

// UndoMove reverses the most recent DoMove (§8 round-trip law:
// make_move(make_move_inverse(b, m), m) == b).
func (p *Position) UndoMove() {
	n := len(p.history)
	undo := p.history[n-1]
	p.history = p.history[:n-1]

	p.activeSide = p.activeSide.Other()
	if p.activeSide == Black {
		p.fullMoveNumber--
	}

	m := undo.move
	from, to, flag := m.From(), m.To(), m.Flag()

	switch {
	case flag.IsCastle():
		p.movePieceSq(to, from)
		kingside := flag == FlagCastleKingside
		rookFrom := rookHomeSquare(p.activeSide, kingside)
		rookTo := rookCastleDestination(p.activeSide, kingside)
		p.movePieceSq(rookTo, rookFrom)

	case flag == FlagEnPassant:
		p.movePieceSq(to, from)
		p.placePiece(undo.captured, undo.capturedSquare)

	case m.IsPromotion():
		p.removePiece(to)
		p.placePiece(NewPiece(p.activeSide, Pawn), from)
		if m.IsCapture() {
			p.placePiece(undo.captured, undo.capturedSquare)
		}

	case m.IsCapture():
		p.movePieceSq(to, from)
		p.placePiece(undo.captured, undo.capturedSquare)

	default:
		p.movePieceSq(to, from)
	}

	p.castlingRights = undo.castlingRights
	p.enPassantSquare = undo.enPassantSquare
	p.halfMoveClock = undo.halfMoveClock
	p.zobristKey = undo.zobristKey
}
