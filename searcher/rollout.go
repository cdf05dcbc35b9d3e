package searcher

import (
	"math/rand"
	"sync"

	"github.com/seehuhn/mt19937"

	"nogo/game"
)

// rollout plays a randomized game to completion. Each side's move space
// is shuffled once up front; every ply scans the mover's remaining moves
// for the first legal placement and swap-removes the one played, until
// one side has no legal move and loses. The result is WinWeight when the
// searching side wins, else 0. Safe for concurrent use as long as each
// call gets its own rng: states are value copies, never shared.
func (s *Searcher) rollout(state game.State, rng *rand.Rand) int {
	selfMoves := shuffled(s.selfSpace, rng)
	oppoMoves := shuffled(s.oppoSpace, rng)

	turn := state.Player()
	for {
		moves := &selfMoves
		if turn == s.oppo {
			moves = &oppoMoves
		}
		after, ok := playFirstLegal(state, moves)
		if !ok {
			break
		}
		state = after
		turn = game.Opponent(turn)
	}
	if turn == s.oppo {
		return WinWeight
	}
	return 0
}

func shuffled(space []game.Move, rng *rand.Rand) []game.Move {
	moves := append([]game.Move(nil), space...)
	rng.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})
	return moves
}

// playFirstLegal scans for the first legal move and swap-removes it from
// the pool, so a rollout never replays a consumed placement.
func playFirstLegal(state game.State, moves *[]game.Move) (game.State, bool) {
	pool := *moves
	for i, mv := range pool {
		after, err := state.Apply(mv)
		if err != nil {
			continue
		}
		pool[i] = pool[len(pool)-1]
		*moves = pool[:len(pool)-1]
		return after, true
	}
	return nil, false
}

// fanout produces the expansion estimate: one rollout, or width rollouts
// on their own goroutines when leaf parallelism is enabled. Workers get
// independent RNGs seeded from the parent stream and report into a
// buffered channel; all workers are joined before aggregation, so the
// sum is complete and no tree node is touched concurrently.
func (s *Searcher) fanout(state game.State) int {
	if s.width <= 1 {
		return s.rollout(state, s.rng)
	}

	results := make(chan int, s.width)
	var wg sync.WaitGroup
	for i := 0; i < s.width; i++ {
		src := mt19937.New()
		src.Seed(s.rng.Int63())
		rng := rand.New(src)
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()
			results <- s.rollout(state, rng)
		}(rng)
	}
	wg.Wait()
	close(results)

	total := 0
	for outcome := range results {
		total += outcome
	}
	return total
}
