package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blokada/game"
)

func TestEvaluateInitialStateIsSymmetric(t *testing.T) {
	s := game.NewState()

	// Both corners: mobility and freedom cancel (3 vs 3), manhattan
	// distance is 12, center distance 6 halved to 3.
	assert.Equal(t, -15, Evaluate(s, game.PlayerA))
	assert.Equal(t, -15, Evaluate(s, game.PlayerB))
}

func TestEvaluateTruncatesTowardZero(t *testing.T) {
	// A on (0,1): 5 moves vs B's 3, manhattan 11, freedom +4, center
	// distance 5 halved to 2.5. Sum is -3.5 and must truncate to -3,
	// not round to -4.
	s := stateFrom(t,
		".A.....",
		".......",
		".......",
		".......",
		".......",
		".......",
		"......B",
	)
	assert.Equal(t, -3, Evaluate(s, game.PlayerA))

	// From B's perspective the same position sums to exactly -24.
	assert.Equal(t, -24, Evaluate(s, game.PlayerB))
}

func TestEvaluateRewardsMobilityAndFreedom(t *testing.T) {
	open := stateFrom(t,
		".......",
		".......",
		"...A...",
		".......",
		".......",
		".......",
		"......B",
	)
	cramped := stateFrom(t,
		".......",
		"..###..",
		"..#A#..",
		"..###..",
		".......",
		".......",
		"......B",
	)
	require.Greater(t, Evaluate(open, game.PlayerA), Evaluate(cramped, game.PlayerA))
}

func TestEvaluateIsDeterministic(t *testing.T) {
	s := stateFrom(t,
		".......",
		".#A....",
		"..#....",
		"....B..",
		"...#...",
		".......",
		".......",
	)
	first := Evaluate(s, game.PlayerA)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Evaluate(s, game.PlayerA))
	}
}
