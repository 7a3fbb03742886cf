package game

import "strings"

// Cell is the content of one board square.
type Cell int8

const (
	CellEmpty Cell = iota
	CellBlocked
	CellA
	CellB
)

// Player identifies one of the two sides. PlayerA moves first.
type Player int8

const (
	PlayerA Player = 0
	PlayerB Player = 1
)

// Other returns the opposing player.
func (p Player) Other() Player { return 1 - p }

func (p Player) String() string {
	if p == PlayerA {
		return "A"
	}
	return "B"
}

func (p Player) cell() Cell {
	if p == PlayerA {
		return CellA
	}
	return CellB
}

// State is the complete game state: board, pawn positions, side to move.
//
// The board is a fixed-size array, so cloning is a plain value copy and a
// clone shares nothing with its original. Blocked and occupied cells are
// never reset to empty for the lifetime of a game; the only cell that
// ever becomes empty again is the one a pawn vacates.
type State struct {
	Board   [N][N]Cell
	Pos     [2]Point
	Current Player
}

// NewState returns a fresh game with the pawns in opposite corners and
// player A to move.
func NewState() *State {
	s := &State{Current: PlayerA}
	s.Pos[PlayerA] = Point{0, 0}
	s.Pos[PlayerB] = Point{N - 1, N - 1}
	s.Board[0][0] = CellA
	s.Board[N-1][N-1] = CellB
	return s
}

// Clone returns an independent copy. Mutating the clone never affects
// the original; the agent relies on this for speculative simulation.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// At returns the cell at p. p must be in bounds.
func (s *State) At(p Point) Cell { return s.Board[p.R][p.C] }

// LegalMoves returns the empty cells adjacent to player's pawn in the 8
// king directions, in Neighbors8 order.
func (s *State) LegalMoves(player Player) []Point {
	var out []Point
	for _, q := range Neighbors8(s.Pos[player]) {
		if s.Board[q.R][q.C] == CellEmpty {
			out = append(out, q)
		}
	}
	return out
}

// LegalBlocks returns every empty cell on the board, row-major.
func (s *State) LegalBlocks() []Point {
	var out []Point
	for r := 0; r < N; r++ {
		for c := 0; c < N; c++ {
			if s.Board[r][c] == CellEmpty {
				out = append(out, Point{r, c})
			}
		}
	}
	return out
}

// Move steps player's pawn to dest. It succeeds only when dest is on the
// board, empty, and exactly one king-step from the pawn. A failed move
// leaves the state untouched.
func (s *State) Move(player Player, dest Point) bool {
	if !InBounds(dest.R, dest.C) || s.Board[dest.R][dest.C] != CellEmpty {
		return false
	}
	from := s.Pos[player]
	if Chebyshev(from, dest) != 1 {
		return false
	}
	s.Board[from.R][from.C] = CellEmpty
	s.Board[dest.R][dest.C] = player.cell()
	s.Pos[player] = dest
	return true
}

// PlaceBlock drops a permanent block on an empty in-bounds cell. A
// failed placement leaves the state untouched.
func (s *State) PlaceBlock(p Point) bool {
	if !InBounds(p.R, p.C) || s.Board[p.R][p.C] != CellEmpty {
		return false
	}
	s.Board[p.R][p.C] = CellBlocked
	return true
}

// HasMoves reports whether player has at least one legal step.
func (s *State) HasMoves(player Player) bool {
	return len(s.LegalMoves(player)) > 0
}

// SwitchTurn toggles the side to move.
func (s *State) SwitchTurn() { s.Current = s.Current.Other() }

// Finished reports the winner, if any. A player loses the instant it is
// their turn with no legal step left, so callers check this at the start
// of every turn, before any action.
func (s *State) Finished() (Player, bool) {
	if !s.HasMoves(s.Current) {
		return s.Current.Other(), true
	}
	return PlayerA, false
}

// String renders the board as an ASCII grid, one row per line. Used for
// logs and test failure dumps.
func (s *State) String() string {
	var b strings.Builder
	for r := 0; r < N; r++ {
		for c := 0; c < N; c++ {
			switch s.Board[r][c] {
			case CellBlocked:
				b.WriteByte('#')
			case CellA:
				b.WriteByte('A')
			case CellB:
				b.WriteByte('B')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
