package types

import (
	"strconv"
	"strings"
)

// Value is a centipawn-scale evaluation score, White's perspective unless
// otherwise noted at the call site.
type Value int32

// Well-known values. MaxPly bounds how many plies a mate score can be "in",
// so IsMateValue can tell a genuine mate score from a merely large material
// score.
const (
	ValueZero      Value = 0
	ValueDraw      Value = 0
	MaxPly               = 128
	ValueInf       Value = 1_000_000
	ValueMate      Value = 100_000
	ValueMateBound Value = ValueMate - MaxPly
)

// IsMateValue reports whether v encodes a forced mate (within MaxPly
// plies), as opposed to an ordinary material/positional score.
func (v Value) IsMateValue() bool {
	a := v
	if a < 0 {
		a = -a
	}
	return a > ValueMateBound && a <= ValueMate
}

// MateIn returns the number of full moves to mate encoded in v (positive:
// the side to move mates; negative: the side to move is mated), valid only
// when IsMateValue() is true.
func (v Value) MateIn() int {
	plies := int(ValueMate - absValue(v))
	moves := (plies + 1) / 2
	if v < 0 {
		return -moves
	}
	return moves
}

func absValue(v Value) Value {
	if v < 0 {
		return -v
	}
	return v
}

// String renders a UCI-style score fragment: "cp <n>" or "mate <n>".
func (v Value) String() string {
	var b strings.Builder
	if v.IsMateValue() {
		b.WriteString("mate ")
		b.WriteString(strconv.Itoa(v.MateIn()))
	} else {
		b.WriteString("cp ")
		b.WriteString(strconv.Itoa(int(v)))
	}
	return b.String()
}
