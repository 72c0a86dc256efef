package search

import (
	"math"
	"sync"

	"github.com/corvidchess/corvid/internal/evaluator"
	"github.com/corvidchess/corvid/internal/movegen"
	"github.com/corvidchess/corvid/internal/position"
	"github.com/corvidchess/corvid/internal/transpositiontable"
	. "github.com/corvidchess/corvid/internal/types"
)

// noParent marks the arena root, which has no parent index.
const noParent = int32(-1)

// node is one arena slot (§9: "flatten the tree into an arena... each node
// stores indices for parent and children", eliminating the original
// source's cyclic parent/child back-pointers). Fields mutated by more than
// one worker are guarded by mu (§4.F/§5: per-node lock discipline).
type node struct {
	parent int32
	move   Move

	mu       sync.Mutex
	children []int32
	visits   int64
	simScore float64
	terminal bool

	expandOnce sync.Once
}

// Tree is one search's arena: a root board plus an index-addressed slab of
// nodes reachable from it by replaying moves, never by a stored per-node
// board (§5: "workers read the root board and derive modified copies
// locally; no shared mutable board state").
type Tree struct {
	root     *position.Position
	rootSide Side
	eval     *evaluator.Evaluator
	tt       *transpositiontable.TtTable
	c        float64 // UCB1 exploration constant

	// nodesMu guards the nodes slice header itself (append/read), separate
	// from each node's own mu which guards that node's mutable fields.
	// Multiple search workers call Iterate concurrently (§4.F/§5), so a
	// reallocating append in newNode must never race an unsynchronized
	// index into the slice from another goroutine.
	nodesMu sync.RWMutex
	nodes   []*node
}

// at returns the node at idx, synchronized against concurrent appends.
func (t *Tree) at(idx int32) *node {
	t.nodesMu.RLock()
	defer t.nodesMu.RUnlock()
	return t.nodes[idx]
}

// NewTree creates a search tree rooted at a clone of root (callers may keep
// mutating their own copy) for the side to move, using eval for static
// scoring, tt for cross-node score reuse, and c as the UCB1 exploration
// constant.
func NewTree(root *position.Position, eval *evaluator.Evaluator, tt *transpositiontable.TtTable, c float64) *Tree {
	t := &Tree{
		root:     root.Clone(),
		rootSide: root.ActiveSide(),
		eval:     eval,
		tt:       tt,
		c:        c,
	}
	t.nodes = append(t.nodes, &node{parent: noParent, simScore: float64(eval.Relative(t.root, t.rootSide))})
	return t
}

// positionAt reconstructs the board at node idx by replaying the move path
// from root, since nodes never carry their own board copy.
func (t *Tree) positionAt(idx int32) *position.Position {
	var path []Move
	for i := idx; t.at(i).parent != noParent; i = t.at(i).parent {
		path = append(path, t.at(i).move)
	}
	p := t.root.Clone()
	for i := len(path) - 1; i >= 0; i-- {
		p.DoMove(path[i])
	}
	return p
}

func (t *Tree) newNode(parent int32, move Move, simScore float64) int32 {
	t.nodesMu.Lock()
	defer t.nodesMu.Unlock()
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, &node{parent: parent, move: move, simScore: simScore})
	return idx
}

// SelectLeaf descends from the root choosing, at each step, the child
// maximizing UCB1 over the current node's children (§4.F step 1), stopping
// at a node with no children — either never expanded, or terminal.
func (t *Tree) SelectLeaf() int32 {
	idx := int32(0)
	for {
		n := t.at(idx)
		n.mu.Lock()
		n.visits++
		parentVisits := n.visits
		children := n.children
		n.mu.Unlock()

		if len(children) == 0 {
			return idx
		}
		idx = t.bestChild(children, parentVisits)
	}
}

func (t *Tree) bestChild(children []int32, parentVisits int64) int32 {
	best := children[0]
	bestScore := math.Inf(-1)
	for _, c := range children {
		cn := t.at(c)
		cn.mu.Lock()
		visits, sim := cn.visits, cn.simScore
		cn.mu.Unlock()

		var score float64
		if visits == 0 {
			score = math.Inf(1)
		} else {
			score = sim + t.c*math.Sqrt(math.Log(float64(parentVisits))/float64(visits))
		}
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

// Expand generates the legal children of idx the first time any worker
// reaches it (single-initiator via sync.Once, §4.F). A position with no
// legal moves is terminal: checkmate scores as a mate value signed for the
// root side, stalemate as a draw.
func (t *Tree) Expand(idx int32) {
	n := t.at(idx)
	n.expandOnce.Do(func() {
		pos := t.positionAt(idx)
		legal := movegen.GenerateLegal(pos)
		if legal.Len() == 0 {
			n.mu.Lock()
			n.terminal = true
			n.simScore = float64(t.terminalScore(idx, pos))
			n.mu.Unlock()
			return
		}

		children := make([]int32, 0, legal.Len())
		for i := 0; i < legal.Len(); i++ {
			m := legal.At(i)
			pos.DoMove(m)
			score := t.scoreOf(pos)
			child := t.newNode(idx, m, float64(score))
			children = append(children, child)
			pos.UndoMove()
		}
		t.sortByEvalDesc(children)

		n.mu.Lock()
		n.children = children
		n.mu.Unlock()
	})
}

// scoreOf returns pos's static score, from the root side's perspective,
// reusing a cached value from the transposition cache when present and
// inserting otherwise (§4.F step 2).
func (t *Tree) scoreOf(pos *position.Position) Value {
	key := pos.ZobristKey()
	if v, ok := t.tt.Query(key); ok {
		return v
	}
	v := t.eval.Relative(pos, t.rootSide)
	t.tt.Insert(key, v)
	return v
}

// terminalScore scores a position with no legal moves: a mate value
// (distance-adjusted, signed for the root side) when the side to move is
// in check, a draw otherwise.
func (t *Tree) terminalScore(idx int32, pos *position.Position) Value {
	if !pos.InCheck(pos.ActiveSide()) {
		return ValueDraw
	}
	ply := Value(t.depthOf(idx))
	mateValue := ValueMate - ply
	if pos.ActiveSide() == t.rootSide {
		// the root side has no moves and is in check: root side is mated.
		return -mateValue
	}
	return mateValue
}

func (t *Tree) depthOf(idx int32) int {
	depth := 0
	for i := idx; t.at(i).parent != noParent; i = t.at(i).parent {
		depth++
	}
	return depth
}

func (t *Tree) sortByEvalDesc(children []int32) {
	for i := 1; i < len(children); i++ {
		for j := i; j > 0 && t.at(children[j]).simScore > t.at(children[j-1]).simScore; j-- {
			children[j], children[j-1] = children[j-1], children[j]
		}
	}
}

// Simulate sets idx's sim_score to the average of its children's
// sim_scores (§4.F step 3). No-op on a leaf (including a terminal node,
// whose score was fixed by Expand).
func (t *Tree) Simulate(idx int32) {
	n := t.at(idx)
	n.mu.Lock()
	children := n.children
	n.mu.Unlock()
	if len(children) == 0 {
		return
	}

	var sum float64
	for _, c := range children {
		cn := t.at(c)
		cn.mu.Lock()
		sum += cn.simScore
		cn.mu.Unlock()
	}
	avg := sum / float64(len(children))

	n.mu.Lock()
	n.simScore = avg
	n.mu.Unlock()
}

// Backpropagate re-averages every ancestor of idx from its own children,
// walking root-ward one lock at a time (§4.F step 4, §4.F concurrency
// discipline: never two node locks held at once).
func (t *Tree) Backpropagate(idx int32) {
	for i := t.at(idx).parent; i != noParent; i = t.at(i).parent {
		t.Simulate(i)
	}
}

// Iterate runs one full per-iteration body: select, expand, simulate,
// backpropagate (§4.F).
func (t *Tree) Iterate() {
	leaf := t.SelectLeaf()
	t.Expand(leaf)
	t.Simulate(leaf)
	t.Backpropagate(leaf)
}

// BestChild returns the best child of idx by sim_score (not visit count),
// and whether idx has any children at all.
func (t *Tree) BestChild(idx int32) (int32, bool) {
	n := t.at(idx)
	n.mu.Lock()
	children := append([]int32(nil), n.children...)
	n.mu.Unlock()
	if len(children) == 0 {
		return 0, false
	}
	best := children[0]
	bestScore := t.simScoreOf(best)
	for _, c := range children[1:] {
		if s := t.simScoreOf(c); s > bestScore {
			bestScore = s
			best = c
		}
	}
	return best, true
}

func (t *Tree) simScoreOf(idx int32) float64 {
	n := t.at(idx)
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.simScore
}

// BestLine follows BestChild from the root as far as it can, returning the
// chain of moves (the principal variation) and the index of the line's
// final node.
func (t *Tree) BestLine() ([]Move, int32) {
	var moves []Move
	idx := int32(0)
	for {
		child, ok := t.BestChild(idx)
		if !ok {
			return moves, idx
		}
		moves = append(moves, t.at(child).move)
		idx = child
	}
}

// Move returns the move stored at idx (MoveNone for the root).
func (t *Tree) Move(idx int32) Move {
	return t.at(idx).move
}

// IsTerminal reports whether idx has no legal moves.
func (t *Tree) IsTerminal(idx int32) bool {
	n := t.at(idx)
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.terminal
}

// Value returns idx's current sim_score as a centipawn Value, from the
// root side's perspective.
func (t *Tree) Value(idx int32) Value {
	return Value(t.simScoreOf(idx))
}

// NodeCount returns the number of arena nodes allocated so far.
func (t *Tree) NodeCount() int {
	t.nodesMu.RLock()
	defer t.nodesMu.RUnlock()
	return len(t.nodes)
}
