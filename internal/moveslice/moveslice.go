// Package moveslice provides the fixed-capacity move buffer move generation
// writes into: at most 218 entries (the known theoretical maximum for a
// legal chess position, §3 "MoveList"), with no heap allocation per
// position once the buffer itself is allocated.
package moveslice

import (
	"strings"

	. "github.com/corvidchess/corvid/internal/types"
)

// MaxMoves is the theoretical maximum number of legal moves in any single
// chess position.
const MaxMoves = 218

// MoveSlice is a bounded move buffer. Count is the only tail pointer;
// entries at index >= Count are leftover from a previous fill and must
// never be read (§9 "Move list storage").
type MoveSlice struct {
	moves [MaxMoves]Move
	count int
}

// New returns an empty MoveSlice ready to be filled by move generation.
func New() *MoveSlice {
	return &MoveSlice{}
}

// Len returns the number of valid entries.
func (ms *MoveSlice) Len() int { return ms.count }

// Reset empties the slice without reallocating the backing array.
func (ms *MoveSlice) Reset() { ms.count = 0 }

// Push appends a move. Panics if the buffer is already at MaxMoves, which
// would indicate a move-generation bug (more legal moves than the known
// theoretical maximum).
func (ms *MoveSlice) Push(m Move) {
	if ms.count >= MaxMoves {
		panic("moveslice: move buffer overflow past theoretical maximum")
	}
	ms.moves[ms.count] = m
	ms.count++
}

// At returns the i'th move. Panics if i is out of [0, Len()).
func (ms *MoveSlice) At(i int) Move {
	if i < 0 || i >= ms.count {
		panic("moveslice: index out of range")
	}
	return ms.moves[i]
}

// Slice returns the valid prefix of the buffer as a plain []Move. The
// returned slice aliases ms's backing array; callers must not retain it
// past the next Reset/Push.
func (ms *MoveSlice) Slice() []Move {
	return ms.moves[:ms.count]
}

// Contains reports whether m is present in the slice.
func (ms *MoveSlice) Contains(m Move) bool {
	for i := 0; i < ms.count; i++ {
		if ms.moves[i] == m {
			return true
		}
	}
	return false
}

// String renders the slice as space-separated long-algebraic moves, for
// "info string" / PV diagnostics.
func (ms *MoveSlice) String() string {
	parts := make([]string, ms.count)
	for i := 0; i < ms.count; i++ {
		parts[i] = ms.moves[i].String()
	}
	return strings.Join(parts, " ")
}
