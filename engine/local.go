package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"nogo/agent"
	"nogo/experiments/metrics"
	"nogo/game"
	"nogo/searcher"
)

// MaxTurns caps runaway games; a NoGo game ends well before the board fills.
const MaxTurns = 200

// Engine drives a local game between two agents, feeding each one the
// board produced by the other's move.
type Engine struct {
	Black agent.Agent
	White agent.Agent
	State game.State
	Moves []metrics.SearchMetric
}

type reporter interface {
	LastReport() searcher.Report
}

// Local wires two agents to a starting position.
func Local(black, white agent.Agent, start game.State) (*Engine, error) {
	if black.Role() != game.Black {
		return nil, fmt.Errorf("engine: black agent has role %q", black.Role())
	}
	if white.Role() != game.White {
		return nil, fmt.Errorf("engine: white agent has role %q", white.Role())
	}
	return &Engine{Black: black, White: white, State: start}, nil
}

// Run plays one episode to completion and returns the winning role. The
// side that returns the None move has no legal placement and loses.
func (e *Engine) Run() (string, error) {
	episode := uuid.NewString()
	e.Black.OpenEpisode(episode)
	e.White.OpenEpisode(episode)
	log.Info().Str("episode", episode).Msg("episode started")

	state := e.State
	winner := ""
	for turn := 1; turn <= MaxTurns; turn++ {
		mover := state.Player()
		acting := e.Black
		if mover == game.White {
			acting = e.White
		}

		move, err := acting.TakeAction(state)
		if err != nil {
			return "", fmt.Errorf("engine: %s turn %d: %w", mover, turn, err)
		}
		if r, ok := acting.(reporter); ok {
			e.Moves = append(e.Moves, metrics.FromReport(r.LastReport()))
		}
		if game.IsNone(move) {
			winner = game.Opponent(mover)
			break
		}

		next, err := state.Apply(move)
		if err != nil {
			return "", fmt.Errorf("engine: %s played illegal move %v: %w", mover, move, err)
		}
		state = next
		log.Debug().Str("episode", episode).Int("turn", turn).Str("move", fmt.Sprint(move)).Send()
	}
	e.State = state

	e.Black.CloseEpisode(episode)
	e.White.CloseEpisode(episode)
	log.Info().Str("episode", episode).Str("winner", winner).Msg("episode over")
	return winner, nil
}
