package agent

import (
	"sort"

	"blokada/game"
)

// CandidateBlocks proposes block squares for the player who just moved.
// The union covers, in priority of intent but collapsed into one set:
// the opponent's current legal moves (directly removes escape options),
// the empty cells around the opponent's pawn, and the empty cells around
// the just-moved pawn (tightens corridors). If that union is empty, every
// empty cell on the board is a candidate.
//
// The result is deduplicated and sorted ascending by (row, col) so the
// decision procedure's tie-break sees a reproducible enumeration. This is
// a fixed pruning heuristic: it can miss a globally better square, and
// that is part of the agent's defined behavior.
func CandidateBlocks(s *game.State, justMoved game.Player) []game.Point {
	opp := justMoved.Other()
	set := make(map[game.Point]struct{})

	for _, q := range s.LegalMoves(opp) {
		set[q] = struct{}{}
	}
	for _, q := range game.Neighbors8(s.Pos[opp]) {
		if s.At(q) == game.CellEmpty {
			set[q] = struct{}{}
		}
	}
	for _, q := range game.Neighbors8(s.Pos[justMoved]) {
		if s.At(q) == game.CellEmpty {
			set[q] = struct{}{}
		}
	}

	if len(set) == 0 {
		for _, q := range s.LegalBlocks() {
			set[q] = struct{}{}
		}
	}

	out := make([]game.Point, 0, len(set))
	for q := range set {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
