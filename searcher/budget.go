package searcher

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"nogo/game"
)

// Budget decides how much search effort one turn receives.
type Budget struct {
	// SimCount is the fixed number of simulation cycles per turn,
	// used when TimeManaged is false.
	SimCount int
	// TimeManaged switches to wall-clock budgeting: simulate until the
	// thinking time for this turn is spent.
	TimeManaged bool
	// BasicConst divides the remaining clock: thinking = remaining/BasicConst.
	BasicConst int
	// EnhancedPeak, when set, inflates the divisor early in the game:
	// thinking = remaining / (BasicConst + max(EnhancedPeak-2*turn, 0)).
	EnhancedPeak int
	// TimeBonus scales the computed thinking time.
	TimeBonus float64
	// Early stops the turn as soon as the most-visited root child leads
	// the runner-up by a decisive margin.
	Early bool
	// EarlyCut, when non-zero, scales the margin by the time still
	// available and the simulation rate instead of the fixed threshold.
	EarlyCut float64
	// UnstableTries is the number of half-budget bursts spent when the
	// visit-count choice and the winrate choice disagree.
	UnstableTries int
}

// DefaultBudget is the fixed-count configuration: 100 simulations, no
// time management, no early stop.
func DefaultBudget() Budget {
	return Budget{
		SimCount:   DefaultSimCount,
		BasicConst: BasicConst,
		TimeBonus:  1,
	}
}

// ThinkingTime computes this turn's wall-clock allowance from the
// remaining game clock. Only meaningful in time-managed mode.
func (b Budget) ThinkingTime(remaining time.Duration, turn int) time.Duration {
	divisor := b.BasicConst
	if divisor <= 0 {
		divisor = BasicConst
	}
	if b.EnhancedPeak > 0 {
		divisor += max(b.EnhancedPeak-2*turn, 0)
	}
	bonus := b.TimeBonus
	if bonus <= 0 {
		bonus = 1
	}
	return time.Duration(float64(remaining) / float64(divisor) * bonus)
}

// Report summarizes one turn's search for diagnostics and metrics.
type Report struct {
	Move           game.Move
	Simulations    int
	Rollouts       int
	Thinking       time.Duration
	Elapsed        time.Duration
	SimsPerSec     float64
	EarlyStop      bool
	UnstableBursts int
}

// Run executes the budgeted simulation loop for one turn and returns the
// chosen move. The wall clock is checked between whole cycles only; a
// cycle in flight always runs to completion.
func (s *Searcher) Run(state game.State, b Budget, thinking time.Duration, turn int) Report {
	start := time.Now()
	rep := Report{Move: game.None, Thinking: thinking}
	width := max(1, s.width)

	// A decisive lead left over from tree reuse may already settle the turn.
	if b.Early {
		if mv := s.earlyChoice(b, thinking); !game.IsNone(mv) {
			rep.Move = mv
			rep.EarlyStop = true
			rep.Elapsed = time.Since(start)
			return rep
		}
	}

	sims, early := s.loop(state, b, thinking, start, turn)
	rep.Simulations = sims
	rep.EarlyStop = early

	move := s.tree.BestMove()
	if b.UnstableTries > 0 {
		for tries := b.UnstableTries; tries > 0 && s.unstable(move); tries-- {
			burst, _ := s.loop(state, b, thinking/2, time.Now(), turn)
			rep.Simulations += burst
			rep.UnstableBursts++
			move = s.tree.BestMove()
		}
	}
	if s.tree.RootTerminal() {
		move = game.None
	}
	rep.Move = move

	rep.Elapsed = time.Since(start)
	rep.Rollouts = rep.Simulations * width
	if sec := rep.Elapsed.Seconds(); sec > 0 {
		rep.SimsPerSec = float64(rep.Simulations) / sec
	}
	log.Debug().
		Int("width", width).
		Int("rollouts", rep.Rollouts).
		Float64("sims_per_sec", rep.SimsPerSec).
		Bool("early", rep.EarlyStop).
		Msg("turn search finished")
	return rep
}

func (s *Searcher) loop(state game.State, b Budget, thinking time.Duration, start time.Time, turn int) (sims int, early bool) {
	limit := b.SimCount
	if b.TimeManaged {
		limit = math.MaxInt
	}
	for i := 0; i < limit; i++ {
		cost := time.Since(start)
		if b.TimeManaged && cost >= thinking {
			if sec := thinking.Seconds(); sec > 0 {
				s.simRate = float64(i) / sec
			}
			break
		}
		if s.tree.RootTerminal() {
			break
		}
		s.Simulate(state)
		sims++
		// The time-scaled early check re-runs between cycles; the fixed
		// threshold is only reachable across turns, so checking it once
		// up front is enough.
		if b.Early && b.EarlyCut > 0 && turn > 2 {
			if mv := s.earlyChoice(b, thinking-cost); !game.IsNone(mv) {
				return sims, true
			}
		}
	}
	return sims, false
}

// earlyChoice returns the most-visited root child when its lead over the
// runner-up is already decisive, else None.
func (s *Searcher) earlyChoice(b Budget, left time.Duration) game.Move {
	leader, most, second := s.tree.visitLead()
	if game.IsNone(leader) {
		return game.None
	}
	width := max(1, s.width)
	if b.EarlyCut == 0 {
		if most-EarlyThreshold*width >= second {
			return leader
		}
		return game.None
	}
	margin := left.Seconds() * s.simRate * b.EarlyCut * float64(width)
	if float64(most)-margin >= float64(second) {
		return leader
	}
	return game.None
}

// unstable reports disagreement between the robust-child choice and the
// winrate choice at the root.
func (s *Searcher) unstable(move game.Move) bool {
	return !game.IsNone(move) && s.tree.WinrateMove() != move
}
