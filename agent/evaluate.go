// Package agent implements the deterministic one-ply Blokada agent: a
// fixed linear position evaluator, a pruned block-candidate generator,
// and a move-and-block decision procedure that scores each candidate
// turn against a simulated greedy reply from the opponent.
//
// The agent is stateless. Every decision is recomputed from the position
// it is handed, and identical inputs always produce identical output.
package agent

import (
	"math"

	"blokada/game"
)

// Evaluator weights. The agent's behavior is defined by these exact
// constants; they are not tunable at runtime.
const (
	mobilityWeight = 3
	freedomWeight  = 2
	centerWeight   = 0.5
)

// Evaluate scores a state from player's perspective, higher is better.
// It sums four terms: mobility difference, proximity to the opponent
// (closer is better, it enables cutting them off), local freedom around
// each pawn, and a slight pull toward the board center.
func Evaluate(s *game.State, player game.Player) int {
	opp := player.Other()

	mobility := mobilityWeight * (len(s.LegalMoves(player)) - len(s.LegalMoves(opp)))

	dist := -game.Manhattan(s.Pos[player], s.Pos[opp])

	freedom := freedomWeight * (emptyNeighbors(s, s.Pos[player]) - emptyNeighbors(s, s.Pos[opp]))

	// The geometric center is fractional when N is even. The final cast
	// truncates toward zero; scores ending in .5 must not round.
	center := float64(game.N-1) / 2
	me := s.Pos[player]
	centerBias := -(math.Abs(float64(me.R)-center) + math.Abs(float64(me.C)-center)) * centerWeight

	return int(float64(mobility+dist+freedom) + centerBias)
}

func emptyNeighbors(s *game.State, p game.Point) int {
	n := 0
	for _, q := range game.Neighbors8(p) {
		if s.At(q) == game.CellEmpty {
			n++
		}
	}
	return n
}
