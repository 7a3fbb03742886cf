// Package game implements the Blokada board model: an NxN grid on which
// two pawns step king-style and drop permanent blocks. A player loses the
// moment their turn starts with no legal step left.
//
// The state is designed to be cheaply clonable so the agent can simulate
// candidate turns without touching the live game.
package game

// N is the board size. Blokada is played on a fixed 7x7 grid.
const N = 7

// Point is a board coordinate, row first. Row 0 is the top row.
type Point struct {
	R int
	C int
}

// Less orders points ascending by (row, col). Every deterministic
// enumeration in this module leans on this ordering.
func (p Point) Less(q Point) bool {
	if p.R != q.R {
		return p.R < q.R
	}
	return p.C < q.C
}

// InBounds reports whether (r, c) lies on the board.
func InBounds(r, c int) bool {
	return r >= 0 && r < N && c >= 0 && c < N
}

// Neighbors8 returns the in-bounds cells at Chebyshev distance 1 from p
// (king-move adjacency). The 3x3 offset grid is walked in a fixed order,
// so the result is always the same sequence for the same p.
func Neighbors8(p Point) []Point {
	out := make([]Point, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := p.R+dr, p.C+dc
			if InBounds(r, c) {
				out = append(out, Point{r, c})
			}
		}
	}
	return out
}

// Manhattan returns |dr| + |dc|. Steps are diagonal-capable, so this is
// not a legality metric; the evaluator uses it as a cheap proximity term.
func Manhattan(a, b Point) int {
	return abs(a.R-b.R) + abs(a.C-b.C)
}

// Chebyshev returns max(|dr|, |dc|), the king-move distance. A step is
// legal exactly when this is 1.
func Chebyshev(a, b Point) int {
	dr, dc := abs(a.R-b.R), abs(a.C-b.C)
	if dr > dc {
		return dr
	}
	return dc
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
