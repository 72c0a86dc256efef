package movegen

import (
	"github.com/corvidchess/corvid/internal/position"
)

// Perft counts leaf positions reachable by depth plies of legal moves from
// a starting position, the standard move-generation correctness check
// (§8). Nodes at depth 0 is always 1 (the position itself).
func Perft(p *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	legal := GenerateLegal(p)
	if depth == 1 {
		return uint64(legal.Len())
	}
	var nodes uint64
	for i := 0; i < legal.Len(); i++ {
		p.DoMove(legal.At(i))
		nodes += Perft(p, depth-1)
		p.UndoMove()
	}
	return nodes
}
