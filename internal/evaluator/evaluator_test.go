package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/internal/evaluator"
	"github.com/corvidchess/corvid/internal/position"
	. "github.com/corvidchess/corvid/internal/types"
)

func TestStartPositionIsMaterialBalanced(t *testing.T) {
	p := position.NewPosition()
	assert.Equal(t, Value(0), evaluator.Material(p, evaluator.DefaultWeights))
}

func TestMaterialFavorsExtraQueen(t *testing.T) {
	p, err := position.NewPositionFEN("4k3/8/8/8/8/8/8/4KQ2 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, Value(900), evaluator.Material(p, evaluator.DefaultWeights))
}

func TestRelativeFlipsForBlack(t *testing.T) {
	p, err := position.NewPositionFEN("4k3/8/8/8/8/8/8/4KQ2 w - - 0 1")
	require.NoError(t, err)
	e := evaluator.New()
	assert.Equal(t, Value(900), e.Relative(p, White))
	assert.Equal(t, Value(-900), e.Relative(p, Black))
}
