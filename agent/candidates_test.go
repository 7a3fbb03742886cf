package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blokada/game"
)

func TestCandidateBlocksUnionSortedDeduplicated(t *testing.T) {
	// A and B two king-steps apart on an open board. Their neighbor
	// rings overlap at (3,3); the union must contain it exactly once.
	s := stateFrom(t,
		".......",
		".......",
		"..A....",
		".......",
		"....B..",
		".......",
		".......",
	)
	want := []game.Point{
		{R: 1, C: 1}, {R: 1, C: 2}, {R: 1, C: 3},
		{R: 2, C: 1}, {R: 2, C: 3},
		{R: 3, C: 1}, {R: 3, C: 2}, {R: 3, C: 3}, {R: 3, C: 4}, {R: 3, C: 5},
		{R: 4, C: 3}, {R: 4, C: 5},
		{R: 5, C: 3}, {R: 5, C: 4}, {R: 5, C: 5},
	}
	assert.Equal(t, want, CandidateBlocks(s, game.PlayerA))
}

func TestCandidateBlocksSkipNonEmptyCells(t *testing.T) {
	s := stateFrom(t,
		".......",
		".......",
		".......",
		".......",
		".....##",
		"....#B.",
		".....A.",
	)
	got := CandidateBlocks(s, game.PlayerA)
	for _, q := range got {
		require.Equal(t, game.CellEmpty, s.At(q), "candidate %v is not empty", q)
	}
	// B's only escapes and the open cells ringing both pawns.
	want := []game.Point{
		{R: 4, C: 4},
		{R: 5, C: 6},
		{R: 6, C: 4}, {R: 6, C: 6},
	}
	assert.Equal(t, want, got)
}

func TestCandidateBlocksFallbackFullBoardScan(t *testing.T) {
	// Both pawns are fully walled in, so the focused union is empty and
	// every empty cell on the board becomes a candidate, row-major.
	s := stateFrom(t,
		"A#.....",
		"##.....",
		".......",
		".......",
		".......",
		".....##",
		".....#B",
	)
	got := CandidateBlocks(s, game.PlayerA)
	assert.Equal(t, s.LegalBlocks(), got)
	require.NotEmpty(t, got)
}

func TestCandidateBlocksStableAcrossCalls(t *testing.T) {
	s := stateFrom(t,
		".......",
		"..A....",
		".......",
		"..#B...",
		".......",
		".......",
		".......",
	)
	first := CandidateBlocks(s, game.PlayerB)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, CandidateBlocks(s, game.PlayerB))
	}
}
