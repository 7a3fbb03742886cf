package agent

import (
	"sort"

	"blokada/game"
)

// Action is one full turn: step the pawn, then drop a block.
type Action struct {
	Move  game.Point
	Block game.Point
}

// less orders actions lexicographically, move first, each coordinate by
// (row, col). Combined with strict score comparison this gives the
// decision procedure a single deterministic winner.
func (a Action) less(b Action) bool {
	if a.Move != b.Move {
		return a.Move.Less(b.Move)
	}
	return a.Block.Less(b.Block)
}

// ChooseAction returns the (move, block) pair the agent plays for
// player. For every legal move it clones the state, applies the move,
// generates candidate blocks on the post-move position, and scores each
// (move, block) pair as the position's own evaluation minus the score of
// the opponent's simulated greedy reply. Strictly higher score wins; an
// exact tie goes to the lexicographically smaller pair.
//
// Precondition: player has at least one legal move. Callers detect lost
// positions through State.Finished before asking for an action; with no
// moves the returned coordinates are (-1,-1) and meaningless.
func ChooseAction(s *game.State, player game.Player) Action {
	opp := player.Other()

	moves := s.LegalMoves(player)
	sort.Slice(moves, func(i, j int) bool { return moves[i].Less(moves[j]) })

	var (
		best      Action
		bestScore int
		found     bool
	)

	for _, mv := range moves {
		afterMove := s.Clone()
		afterMove.Move(player, mv)

		for _, bl := range CandidateBlocks(afterMove, player) {
			// Candidates are generated once per move; re-check emptiness
			// before committing.
			if afterMove.At(bl) != game.CellEmpty {
				continue
			}
			post := afterMove.Clone()
			post.PlaceBlock(bl)

			score := Evaluate(post, player) - greedyReply(post, opp, player)

			pair := Action{Move: mv, Block: bl}
			if !found || score > bestScore || (score == bestScore && pair.less(best)) {
				found = true
				bestScore = score
				best = pair
			}
		}
	}

	if !found {
		return Action{Move: game.Point{R: -1, C: -1}, Block: game.Point{R: -1, C: -1}}
	}
	return best
}

// greedyReply models replyPlayer's single best answering turn, scored
// from pov's perspective with the same evaluator and the same tie-break.
// It runs the identical move-and-block enumeration one ply deep and no
// deeper. When replyPlayer cannot move, or degenerately no block can be
// placed, the current position's own score is returned unchanged.
func greedyReply(s *game.State, replyPlayer, pov game.Player) int {
	moves := s.LegalMoves(replyPlayer)
	if len(moves) == 0 {
		return Evaluate(s, pov)
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i].Less(moves[j]) })

	var (
		best      Action
		bestScore int
		found     bool
	)

	for _, mv := range moves {
		afterMove := s.Clone()
		if !afterMove.Move(replyPlayer, mv) {
			continue
		}
		for _, bl := range CandidateBlocks(afterMove, replyPlayer) {
			if afterMove.At(bl) != game.CellEmpty {
				continue
			}
			post := afterMove.Clone()
			if !post.PlaceBlock(bl) {
				continue
			}

			score := Evaluate(post, pov)
			pair := Action{Move: mv, Block: bl}
			if !found || score > bestScore || (score == bestScore && pair.less(best)) {
				found = true
				bestScore = score
				best = pair
			}
		}
	}

	if !found {
		return Evaluate(s, pov)
	}
	return bestScore
}

// Heuristic adapts the package-level decision procedure to the selfplay
// Agent interface.
type Heuristic struct{}

func (Heuristic) Name() string { return "heuristic-1ply" }

func (Heuristic) ChooseAction(s *game.State, player game.Player) (move, block game.Point) {
	a := ChooseAction(s, player)
	return a.Move, a.Block
}
