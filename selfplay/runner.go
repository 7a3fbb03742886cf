// Package selfplay runs headless agent-vs-agent Blokada games and
// produces archive rows for the match store.
package selfplay

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"blokada/game"
	"blokada/store"
)

// Agent is anything that can produce a full (move, block) turn for the
// player it is asked about.
type Agent interface {
	Name() string
	ChooseAction(s *game.State, player game.Player) (move, block game.Point)
}

// DefaultTurnCap bounds automated games. A game that reaches the cap
// without a winner ends as a technical draw. Every turn permanently
// consumes one empty cell, so real games on a 7x7 board finish far
// below this; the cap only guards degenerate configurations.
const DefaultTurnCap = 500

// Options tunes a single game.
type Options struct {
	// TurnCap overrides DefaultTurnCap when positive.
	TurnCap int
	// Source is stamped on every archive row.
	Source string
}

// GameResult is the outcome of one finished game.
type GameResult struct {
	GameID string
	Winner game.Player
	Draw   bool
	Turns  int
}

// PlayGame plays one full game between a (playing A) and b (playing B)
// on a fresh board. Each turn it checks for termination first, then asks
// the current side's agent for its (move, block) pair, applies both, and
// switches the turn. It returns the result plus one archive row per
// completed turn, each stamped with the final outcome.
//
// An agent that proposes an illegal move or block aborts the game with
// an error; the bundled heuristic agent never does. A cancelled context
// abandons the game between turns and returns ctx.Err.
func PlayGame(ctx context.Context, a, b Agent, opts Options) (GameResult, []store.TurnRow, error) {
	turnCap := opts.TurnCap
	if turnCap <= 0 {
		turnCap = DefaultTurnCap
	}

	agents := [2]Agent{a, b}
	s := game.NewState()
	res := GameResult{GameID: uuid.NewString()}
	rows := make([]store.TurnRow, 0, 64)

	for turn := 0; turn < turnCap; turn++ {
		select {
		case <-ctx.Done():
			return res, nil, ctx.Err()
		default:
		}

		if winner, over := s.Finished(); over {
			res.Winner = winner
			res.Turns = turn
			stampOutcome(rows, winner.String(), false)
			return res, rows, nil
		}

		player := s.Current
		mv, bl := agents[player].ChooseAction(s, player)
		if !s.Move(player, mv) {
			return res, nil, fmt.Errorf("game %s turn %d: agent %s proposed illegal move (%d,%d)",
				res.GameID, turn, agents[player].Name(), mv.R, mv.C)
		}
		if !s.PlaceBlock(bl) {
			return res, nil, fmt.Errorf("game %s turn %d: agent %s proposed illegal block (%d,%d)",
				res.GameID, turn, agents[player].Name(), bl.R, bl.C)
		}

		rows = append(rows, store.TurnRow{
			GameID: res.GameID,
			Turn:   int32(turn),
			Player: player.String(),
			MoveR:  int32(mv.R),
			MoveC:  int32(mv.C),
			BlockR: int32(bl.R),
			BlockC: int32(bl.C),
			Source: opts.Source,
		})

		s.SwitchTurn()
	}

	res.Draw = true
	res.Turns = turnCap
	stampOutcome(rows, "", true)
	return res, rows, nil
}

func stampOutcome(rows []store.TurnRow, winner string, draw bool) {
	for i := range rows {
		rows[i].Winner = winner
		rows[i].Draw = draw
	}
}
