package position

import (
	"math/rand"

	. "github.com/corvidchess/corvid/internal/types"
)

// Key is a 64-bit incremental hash of a position: piece placement, side to
// move, castling rights and en-passant file. Derived from independent
// random constants per (side, piece, square), one per castling right, and
// one per en-passant file, so every make/unmake step updates it with O(1)
// XORs (§4.E).
type Key uint64

var (
	pieceKeys    [SideCount][PieceTypeCount][SquareCount]Key
	sideToMoveKey Key
	castlingKeys [16]Key
	enPassantFileKeys [8]Key
)

func init() {
	// Fixed seed: zobrist constants must be stable across process restarts
	// so that a saved transposition cache (or a reproduced perft run) is
	// comparable between runs.
	rng := rand.New(rand.NewSource(0xC0FFEE))
	for s := White; s <= Black; s++ {
		for pt := Pawn; pt < PieceTypeCount; pt++ {
			for sq := 0; sq < SquareCount; sq++ {
				pieceKeys[s][pt][sq] = Key(rng.Uint64())
			}
		}
	}
	sideToMoveKey = Key(rng.Uint64())
	for i := range castlingKeys {
		castlingKeys[i] = Key(rng.Uint64())
	}
	for i := range enPassantFileKeys {
		enPassantFileKeys[i] = Key(rng.Uint64())
	}
}

func pieceKey(p Piece, sq Square) Key {
	return pieceKeys[p.Side()][p.Type()][sq]
}

func castlingKey(cr CastlingRights) Key {
	return castlingKeys[cr&0xF]
}

func enPassantKey(sq Square) Key {
	if sq == SquareNone {
		return 0
	}
	return enPassantFileKeys[sq.File()]
}
