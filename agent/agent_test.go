package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"blokada/game"
)

// stateFrom builds a state from N rows of N characters:
// '.' empty, '#' blocked, 'A'/'B' the pawns.
func stateFrom(t *testing.T, rows ...string) *game.State {
	t.Helper()
	require.Len(t, rows, game.N, "board literal must have N rows")
	s := &game.State{Current: game.PlayerA}
	for r, row := range rows {
		require.Len(t, row, game.N, "board literal row %d", r)
		for c := 0; c < game.N; c++ {
			p := game.Point{R: r, C: c}
			switch row[c] {
			case '.':
			case '#':
				s.Board[r][c] = game.CellBlocked
			case 'A':
				s.Board[r][c] = game.CellA
				s.Pos[game.PlayerA] = p
			case 'B':
				s.Board[r][c] = game.CellB
				s.Pos[game.PlayerB] = p
			default:
				t.Fatalf("bad cell %q at (%d,%d)", row[c], r, c)
			}
		}
	}
	return s
}
