package agent

import (
	"time"

	"golang.org/x/exp/rand"

	"nogo/game"
)

// Random plays a uniformly random legal move: shuffle the move space,
// scan for the first legal placement, None if there is none.
type Random struct {
	name  string
	role  string
	space []game.Move
	rng   *rand.Rand
}

func NewRandom(args string) (*Random, error) {
	meta := ParseArgs(args)
	role, err := roleOf(meta)
	if err != nil {
		return nil, err
	}
	name, err := nameOf(meta, "random")
	if err != nil {
		return nil, err
	}
	seed := uint64(meta.Int64("seed", time.Now().UnixNano()))
	return &Random{
		name: name,
		role: role,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

func (a *Random) Name() string { return a.name }

func (a *Random) Role() string { return a.role }

func (a *Random) OpenEpisode(flag string) {}

func (a *Random) CloseEpisode(flag string) {}

func (a *Random) TakeAction(state game.State) (game.Move, error) {
	if a.space == nil {
		a.space = state.MoveSpace(a.role)
	}
	a.rng.Shuffle(len(a.space), func(i, j int) {
		a.space[i], a.space[j] = a.space[j], a.space[i]
	})
	for _, mv := range a.space {
		if _, err := state.Apply(mv); err == nil {
			return mv, nil
		}
	}
	return game.None, nil
}
