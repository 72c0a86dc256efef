package types

// PieceType is a kind of chess piece, independent of side.
type PieceType int8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	PieceTypeCount
)

// PieceTypeNone is the "no piece kind" sentinel, e.g. the PromotionType of a
// move that does not promote. Empty board squares are marked by PieceNone.
const PieceTypeNone PieceType = -1

var pieceLetters = [PieceTypeCount]byte{'p', 'n', 'b', 'r', 'q', 'k'}

// Letter returns the lowercase FEN letter for the piece kind.
func (pt PieceType) Letter() byte { return pieceLetters[pt] }

// Piece is a (side, kind) pair packed for the 0x88-free per-square array
// position.Position keeps alongside its bitboards.
type Piece int8

// PieceNone marks an empty square.
const PieceNone Piece = -1

// NewPiece packs a side and kind into a Piece.
func NewPiece(s Side, pt PieceType) Piece {
	return Piece(int8(s)*int8(PieceTypeCount) + int8(pt))
}

// Side unpacks the side from a Piece.
func (p Piece) Side() Side { return Side(int8(p) / int8(PieceTypeCount)) }

// Type unpacks the piece kind from a Piece.
func (p Piece) Type() PieceType { return PieceType(int8(p) % int8(PieceTypeCount)) }

// Letter returns the FEN letter for the piece: uppercase for White,
// lowercase for Black.
func (p Piece) Letter() byte {
	l := p.Type().Letter()
	if p.Side() == White {
		return l - ('a' - 'A')
	}
	return l
}

// PieceFromLetter parses a single FEN piece letter into a Piece.
func PieceFromLetter(c byte) (Piece, bool) {
	side := White
	lower := c
	if c >= 'a' && c <= 'z' {
		side = Black
	} else {
		lower = c + ('a' - 'A')
	}
	for pt := Pawn; pt < PieceTypeCount; pt++ {
		if pieceLetters[pt] == lower {
			return NewPiece(side, pt), true
		}
	}
	return PieceNone, false
}
