package searcher

import (
	"math"
	"math/rand"
	"time"

	"github.com/seehuhn/mt19937"

	"nogo/game"
)

// Searcher runs simulation cycles against a persistent tree for one
// fixed perspective side. It owns no game state: every cycle starts from
// the externally supplied position matching the tree root.
type Searcher struct {
	tree      *Tree
	self      string
	oppo      string
	selfSpace []game.Move
	oppoSpace []game.Move
	width     int // leaf-parallel rollouts per expansion, 0/1 = sequential
	rng       *rand.Rand
	simRate   float64 // achieved simulations per second, previous turn
}

type SearcherOption func(*Searcher)

// WithWidth enables leaf parallelism: width rollouts per expansion.
func WithWidth(width int) SearcherOption {
	return func(s *Searcher) {
		if width > 0 {
			s.width = width
		}
	}
}

// WithSeed makes rollouts deterministic.
func WithSeed(seed int64) SearcherOption {
	return func(s *Searcher) {
		src := mt19937.New()
		src.Seed(seed)
		s.rng = rand.New(src)
	}
}

func NewSearcher(tree *Tree, self string, selfSpace, oppoSpace []game.Move, options ...SearcherOption) *Searcher {
	src := mt19937.New()
	src.Seed(time.Now().UnixNano())
	s := &Searcher{
		tree:      tree,
		self:      self,
		oppo:      game.Opponent(self),
		selfSpace: selfSpace,
		oppoSpace: oppoSpace,
		rng:       rand.New(src),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Searcher) Tree() *Tree { return s.tree }

// Simulate runs one full cycle from the root: UCB descent to a leaf, one
// expansion, rollout(s), and backpropagation on the way back up. It
// returns the move chosen at the root and the aggregated rollout result.
func (s *Searcher) Simulate(state game.State) (game.Move, int) {
	return s.descend(state, s.tree.root)
}

func (s *Searcher) descend(state game.State, id nodeID) (game.Move, int) {
	role := s.tree.at(id).role
	visits := s.tree.at(id).visits
	space := s.selfSpace
	if role == s.oppo {
		space = s.oppoSpace
	}

	// Scan the mover's full move space; UCB only ranks legal moves.
	bestMove := game.None
	bestScore := math.Inf(-1)
	var bestAfter game.State
	for _, mv := range space {
		after, err := state.Apply(mv)
		if err != nil {
			continue
		}
		if score := s.tree.scoreMove(id, mv, s.self); score > bestScore {
			bestMove, bestScore, bestAfter = mv, score, after
		}
	}

	// No legal move: the mover is stuck, which decides the game here.
	if bestAfter == nil {
		outcome := 0
		if role == s.oppo {
			outcome = (visits + max(1, s.width)) * WinWeight
		}
		s.tree.at(id).markTerminal(outcome, s.width)
		if outcome > 0 {
			return game.None, WinWeight
		}
		return game.None, 0
	}

	if cid, err := s.tree.child(id, bestMove); err == nil {
		_, result := s.descend(bestAfter, cid)
		s.tree.at(id).recordVisit(result, s.width)
		return bestMove, result
	}

	// Expand exactly one new node per cycle, then estimate it.
	cid := s.tree.newChild(id, game.Opponent(role), bestMove)
	result := s.fanout(bestAfter)
	s.tree.at(cid).recordVisit(result, s.width)
	s.tree.at(id).recordVisit(result, s.width)
	return bestMove, result
}
