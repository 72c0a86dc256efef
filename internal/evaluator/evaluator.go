// Package evaluator computes a static, centipawn-scale score for a
// position from White's perspective (§4.D). The current implementation is
// material-only; Weights is exposed so future piece-square-table or
// mobility terms can extend it without changing callers.
package evaluator

import (
	"github.com/corvidchess/corvid/internal/position"
	. "github.com/corvidchess/corvid/internal/types"
)

// Weights holds the per-kind centipawn value used by material scoring. The
// king's weight is 0 because both sides always retain a king, so it never
// contributes to the material difference (§4.D).
type Weights struct {
	Pawn, Knight, Bishop, Rook, Queen, King Value
}

// DefaultWeights are the standard centipawn piece values.
var DefaultWeights = Weights{
	Pawn:   100,
	Knight: 300,
	Bishop: 350,
	Rook:   400,
	Queen:  900,
	King:   0,
}

func (w Weights) forKind(pt PieceType) Value {
	switch pt {
	case Pawn:
		return w.Pawn
	case Knight:
		return w.Knight
	case Bishop:
		return w.Bishop
	case Rook:
		return w.Rook
	case Queen:
		return w.Queen
	default:
		return w.King
	}
}

// Material scores p from White's perspective using weights:
// sum over piece kinds of (white_count - black_count) * weight[kind].
func Material(p *position.Position, weights Weights) Value {
	var score Value
	for pt := Pawn; pt < PieceTypeCount; pt++ {
		w := p.PiecesBb(White, pt).PopCount()
		b := p.PiecesBb(Black, pt).PopCount()
		score += Value(w-b) * weights.forKind(pt)
	}
	return score
}

// Evaluator wraps Material with a configurable weight table so the search
// tree (§4.F) doesn't need to thread weights through every call site.
type Evaluator struct {
	Weights Weights
}

// New returns an Evaluator using DefaultWeights.
func New() *Evaluator {
	return &Evaluator{Weights: DefaultWeights}
}

// Score evaluates p from White's perspective.
func (e *Evaluator) Score(p *position.Position) Value {
	return Material(p, e.Weights)
}

// Relative evaluates p from the perspective of side s: positive is good
// for s. Search tree nodes compare sim scores from the mover's perspective,
// so static eval must be flipped for Black (§4.F).
func (e *Evaluator) Relative(p *position.Position, s Side) Value {
	score := e.Score(p)
	if s == Black {
		return -score
	}
	return score
}
