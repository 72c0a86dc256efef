package types

// Move is the compact 16-bit move encoding:
//
//	bits 0-5:   source square (0-63)
//	bits 6-11:  destination square (0-63)
//	bits 12-15: flag nibble (MoveFlag)
//
// The zero value is the sentinel "invalid move" (src==dest==a1, flag
// Quiet), which never occurs as a generated move since generation always
// requires src != dest.
type Move uint16

// MoveNone is the invalid-move sentinel.
const MoveNone Move = 0

const (
	srcShift  = 0
	srcMask   = 0x3F
	destShift = 6
	destMask  = 0x3F
	flagShift = 12
	flagMask  = 0xF
)

// MoveFlag is the 4-bit move-type tag packed into a Move's top nibble.
// Layout follows the standard chess-programming encoding: bit 3 marks a
// promotion, bit 2 marks a capture, and the low 2 bits disambiguate
// (castling side / en-passant / promotion piece kind).
type MoveFlag uint8

const (
	FlagQuiet           MoveFlag = 0
	FlagDoublePawnPush  MoveFlag = 1
	FlagCastleKingside  MoveFlag = 2
	FlagCastleQueenside MoveFlag = 3
	FlagCapture         MoveFlag = 4
	FlagEnPassant       MoveFlag = 5
	FlagPromoKnight     MoveFlag = 8
	FlagPromoBishop     MoveFlag = 9
	FlagPromoRook       MoveFlag = 10
	FlagPromoQueen      MoveFlag = 11
	FlagPromoCapKnight  MoveFlag = 12
	FlagPromoCapBishop  MoveFlag = 13
	FlagPromoCapRook    MoveFlag = 14
	FlagPromoCapQueen   MoveFlag = 15
)

// NewMove packs a source, destination and flag into a Move.
func NewMove(src, dest Square, flag MoveFlag) Move {
	return Move(uint16(src)&srcMask<<srcShift |
		uint16(dest)&destMask<<destShift |
		uint16(flag)&flagMask<<flagShift)
}

// From returns the move's source square.
func (m Move) From() Square { return Square((m >> srcShift) & srcMask) }

// To returns the move's destination square.
func (m Move) To() Square { return Square((m >> destShift) & destMask) }

// Flag returns the move's flag nibble.
func (m Move) Flag() MoveFlag { return MoveFlag((m >> flagShift) & flagMask) }

// IsCapture reports whether the move captures a piece (including
// en-passant and capturing promotions). Bit 2 of the flag nibble.
func (m Move) IsCapture() bool { return m.Flag()&FlagCapture != 0 }

// IsPromotion reports whether the move promotes a pawn. Bit 3 of the flag
// nibble.
func (m Move) IsPromotion() bool { return m.Flag()&0x8 != 0 }

// IsEnPassant reports whether the move is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }

// IsCastle reports whether the move is a castling move.
func (m Move) IsCastle() bool {
	return m.Flag() == FlagCastleKingside || m.Flag() == FlagCastleQueenside
}

// PromotionType returns the piece kind a promotion move promotes to. Only
// meaningful when IsPromotion() is true.
func (m Move) PromotionType() PieceType {
	switch m.Flag() &^ FlagCapture {
	case FlagPromoKnight:
		return Knight
	case FlagPromoBishop:
		return Bishop
	case FlagPromoRook:
		return Rook
	case FlagPromoQueen:
		return Queen
	default:
		return PieceTypeNone
	}
}

// promoFlags maps a promotion piece kind to its (non-capturing, capturing)
// flag pair, used by move generation.
var promoFlags = map[PieceType][2]MoveFlag{
	Knight: {FlagPromoKnight, FlagPromoCapKnight},
	Bishop: {FlagPromoBishop, FlagPromoCapBishop},
	Rook:   {FlagPromoRook, FlagPromoCapRook},
	Queen:  {FlagPromoQueen, FlagPromoCapQueen},
}

// PromotionFlag returns the flag for promoting to pt, capturing or not.
func PromotionFlag(pt PieceType, capture bool) MoveFlag {
	pair := promoFlags[pt]
	if capture {
		return pair[1]
	}
	return pair[0]
}

// String renders long-algebraic notation (e.g. "e2e4", "a7a8q"), the wire
// format used by the UCI `position ... moves` and `bestmove` lines.
func (m Move) String() string {
	if m == MoveNone {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.PromotionType().Letter())
	}
	return s
}
