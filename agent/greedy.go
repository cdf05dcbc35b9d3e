package agent

import (
	"time"

	"golang.org/x/exp/rand"

	"nogo/game"
)

// Greedy is a two-ply heuristic baseline: among its legal moves it picks
// one minimizing the opponent's legal replies, exploring candidates in a
// shuffled order so ties do not always favor the same point.
type Greedy struct {
	name      string
	role      string
	space     []game.Move
	oppoSpace []game.Move
	rng       *rand.Rand
}

func NewGreedy(args string) (*Greedy, error) {
	meta := ParseArgs(args)
	role, err := roleOf(meta)
	if err != nil {
		return nil, err
	}
	name, err := nameOf(meta, "greedy")
	if err != nil {
		return nil, err
	}
	seed := uint64(meta.Int64("seed", time.Now().UnixNano()))
	return &Greedy{
		name: name,
		role: role,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

func (a *Greedy) Name() string { return a.name }

func (a *Greedy) Role() string { return a.role }

func (a *Greedy) OpenEpisode(flag string) {}

func (a *Greedy) CloseEpisode(flag string) {}

func (a *Greedy) TakeAction(state game.State) (game.Move, error) {
	if a.space == nil {
		a.space = state.MoveSpace(a.role)
		a.oppoSpace = state.MoveSpace(game.Opponent(a.role))
	}
	a.rng.Shuffle(len(a.space), func(i, j int) {
		a.space[i], a.space[j] = a.space[j], a.space[i]
	})

	best := game.None
	bestReplies := -1
	for _, mv := range a.space {
		after, err := state.Apply(mv)
		if err != nil {
			continue
		}
		replies := 0
		for _, reply := range a.oppoSpace {
			if _, err := after.Apply(reply); err == nil {
				replies++
			}
		}
		if bestReplies == -1 || replies < bestReplies {
			best, bestReplies = mv, replies
		}
	}
	return best, nil
}
