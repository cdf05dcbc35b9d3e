package agent

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"nogo/game"
	"nogo/searcher"
)

// MCTS is the tree-search player. It keeps a persistent search tree
// across turns: each turn it reconciles the opponent's move into the
// tree (or resets on a new game), runs the budgeted simulation loop and
// commits the robust-child move.
type MCTS struct {
	name        string
	role        string
	oppo        string
	exploration float64
	budget      searcher.Budget
	width       int
	seed        int64
	seeded      bool

	tree      *searcher.Tree
	search    *searcher.Searcher
	space     []game.Move
	oppoSpace []game.Move

	lastBoard game.State
	turn      int
	remaining time.Duration
	report    searcher.Report
}

func NewMCTS(args string) (*MCTS, error) {
	meta := ParseArgs(args)
	role, err := roleOf(meta)
	if err != nil {
		return nil, err
	}
	name, err := nameOf(meta, "mcts")
	if err != nil {
		return nil, err
	}

	budget := searcher.DefaultBudget()
	budget.SimCount = meta.Int("fix_sim", searcher.DefaultSimCount)
	if meta.Has("enhanced_f") {
		budget.EnhancedPeak = meta.Int("enhanced_f", searcher.EnhancedPeak)
		budget.TimeManaged = true
	}
	if meta.Has("basic_f") {
		budget.BasicConst = meta.Int("basic_f", searcher.BasicConst)
		budget.TimeManaged = true
	}
	budget.Early = meta.Has("early")
	if meta.Has("early_c") {
		budget.Early = true
		budget.EarlyCut = meta.Float("early_c", 0)
	}
	budget.UnstableTries = meta.Int("unst", 0)
	budget.TimeBonus = meta.Float("t_bonus", 1)

	p := &MCTS{
		name:        name,
		role:        role,
		oppo:        game.Opponent(role),
		exploration: meta.Float("C", searcher.DefaultExploration),
		budget:      budget,
		width:       meta.Int("p_leaf", 0),
		remaining:   searcher.InitTime,
	}
	if meta.Has("seed") {
		p.seed = meta.Int64("seed", 0)
		p.seeded = true
	}
	p.tree = searcher.NewTree(role, p.exploration)
	return p, nil
}

func (p *MCTS) Name() string { return p.name }

func (p *MCTS) Role() string { return p.role }

func (p *MCTS) OpenEpisode(flag string) {
	p.turn = 0
}

func (p *MCTS) CloseEpisode(flag string) {
	log.Debug().Str("agent", p.name).Dur("clock_left", p.remaining).Msg("episode closed")
}

// LastReport returns diagnostics from the most recent TakeAction.
func (p *MCTS) LastReport() searcher.Report { return p.report }

// TakeAction runs one full turn: reconcile, search, commit.
func (p *MCTS) TakeAction(state game.State) (game.Move, error) {
	start := time.Now()
	if p.search == nil {
		p.space = state.MoveSpace(p.role)
		p.oppoSpace = state.MoveSpace(p.oppo)
		options := []searcher.SearcherOption{searcher.WithWidth(p.width)}
		if p.seeded {
			options = append(options, searcher.WithSeed(p.seed))
		}
		p.search = searcher.NewSearcher(p.tree, p.role, p.space, p.oppoSpace, options...)
	}

	if p.turn > 0 {
		p.reconcile(state)
	} else {
		p.reset()
	}

	if p.tree.RootRole() != p.role {
		return game.None, fmt.Errorf("%w: root expects %s to move, agent plays %s",
			ErrDesync, p.tree.RootRole(), p.role)
	}

	// The time formula runs on the pre-move turn counter, so the opening
	// turns get the full enhanced divisor.
	thinking := p.budget.ThinkingTime(p.remaining, p.turn)
	p.turn++
	p.report = p.search.Run(state, p.budget, thinking, p.turn)
	move := p.report.Move
	if game.IsNone(move) {
		// Terminal root: no legal move, let the caller treat it as a
		// resign/game-over signal.
		p.remaining -= time.Since(start)
		return game.None, nil
	}

	p.tree.Advance(move)
	after, err := state.Apply(move)
	if err != nil {
		return game.None, fmt.Errorf("%w: search chose an illegal move %v", ErrDesync, move)
	}
	p.lastBoard = after
	p.remaining -= time.Since(start)
	return move, nil
}

// reconcile recovers the opponent's move by replaying their move space
// against the board committed at the end of our previous turn. A match
// advances the tree root, keeping the explored subtree. No match means a
// new game started, which is a normal reset, not an error.
func (p *MCTS) reconcile(state game.State) {
	// lastBoard is nil when the previous turn ended in the no-move
	// sentinel; there is nothing to replay against.
	if p.lastBoard != nil {
		for _, mv := range p.oppoSpace {
			after, err := p.lastBoard.Apply(mv)
			if err != nil {
				continue
			}
			if after.Equal(state) {
				p.tree.Advance(mv)
				return
			}
		}
	}
	log.Info().
		Str("agent", p.name).
		Dur("clock_left", p.remaining).
		Msg("opponent move not found, treating as a new game")
	p.reset()
	p.turn = 0
}

func (p *MCTS) reset() {
	p.tree.Reset(p.role)
	p.remaining = searcher.InitTime
}
