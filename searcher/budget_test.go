package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nogo/game"
)

func TestThinkingTime(t *testing.T) {
	t.Run("basic formula divides the remaining clock", func(t *testing.T) {
		b := Budget{BasicConst: 30, TimeBonus: 1}
		require.Equal(t, time.Second, b.ThinkingTime(30*time.Second, 1))
	})

	t.Run("enhanced formula tapers toward the peak", func(t *testing.T) {
		b := Budget{BasicConst: 30, EnhancedPeak: 15, TimeBonus: 1}
		remaining := 30 * time.Second
		opening := b.ThinkingTime(remaining, 1)  // divisor 30+13
		midgame := b.ThinkingTime(remaining, 10) // divisor 30
		require.Equal(t, time.Duration(float64(remaining)/43), opening)
		require.Equal(t, time.Second, midgame)
		require.Less(t, opening, midgame, "Opening turns get a larger divisor, later turns the full share")
	})

	t.Run("time bonus scales the allowance", func(t *testing.T) {
		b := Budget{BasicConst: 30, TimeBonus: 2}
		require.Equal(t, 2*time.Second, b.ThinkingTime(30*time.Second, 1))
	})
}

func TestEarlyChoice(t *testing.T) {
	lead := func(most, second int) *Searcher {
		state := stubState{depth: 2, turn: game.Black, breadth: 2}
		s := newStubSearcher(t, game.Black, state)
		a := s.tree.newChild(s.tree.root, game.White, mv(0, game.Black))
		s.tree.at(a).visits = most
		b := s.tree.newChild(s.tree.root, game.White, mv(1, game.Black))
		s.tree.at(b).visits = second
		return s
	}

	t.Run("decisive fixed lead commits to the leader", func(t *testing.T) {
		s := lead(EarlyThreshold+600, 500)
		got := s.earlyChoice(Budget{Early: true}, 0)
		require.Equal(t, mv(0, game.Black), got)
	})

	t.Run("insufficient lead keeps searching", func(t *testing.T) {
		s := lead(EarlyThreshold+400, 500)
		got := s.earlyChoice(Budget{Early: true}, 0)
		require.True(t, game.IsNone(got))
	})

	t.Run("time-scaled margin uses the achieved simulation rate", func(t *testing.T) {
		s := lead(900, 500)
		s.simRate = 100 // sims per second
		b := Budget{Early: true, EarlyCut: 1}
		// 2s left: margin 200 < lead 400 -> commit.
		require.Equal(t, mv(0, game.Black), s.earlyChoice(b, 2*time.Second))
		// 10s left: margin 1000 > lead 400 -> keep searching.
		require.True(t, game.IsNone(s.earlyChoice(b, 10*time.Second)))
	})
}

func TestRun(t *testing.T) {
	t.Run("fixed budget runs the configured simulation count", func(t *testing.T) {
		state := stubState{depth: 4, turn: game.Black, breadth: 3}
		s := newStubSearcher(t, game.Black, state)

		rep := s.Run(state, DefaultBudget(), 0, 1)

		require.Equal(t, DefaultSimCount, rep.Simulations)
		require.Equal(t, DefaultSimCount, rep.Rollouts)
		require.Equal(t, DefaultSimCount, s.tree.RootVisits(),
			"Root child visits must add up to the simulation count")
		require.False(t, game.IsNone(rep.Move))
	})

	t.Run("time-managed budget stays within its allowance", func(t *testing.T) {
		state := stubState{depth: 6, turn: game.Black, breadth: 3}
		s := newStubSearcher(t, game.Black, state)
		b := Budget{TimeManaged: true, BasicConst: BasicConst, TimeBonus: 1}
		thinking := 50 * time.Millisecond

		rep := s.Run(state, b, thinking, 1)

		require.Positive(t, rep.Simulations)
		// The clock is only checked between whole cycles, so allow the
		// cost of one in-flight cycle on top of the allowance.
		require.Less(t, rep.Elapsed, thinking+250*time.Millisecond)
		require.Positive(t, rep.SimsPerSec)
	})

	t.Run("pre-existing decisive lead stops before simulating", func(t *testing.T) {
		state := stubState{depth: 2, turn: game.Black, breadth: 2}
		s := newStubSearcher(t, game.Black, state)
		a := s.tree.newChild(s.tree.root, game.White, mv(0, game.Black))
		s.tree.at(a).visits = EarlyThreshold + 1000
		s.tree.newChild(s.tree.root, game.White, mv(1, game.Black))

		rep := s.Run(state, Budget{Early: true, SimCount: 100}, 0, 5)

		require.True(t, rep.EarlyStop)
		require.Zero(t, rep.Simulations, "Early exit should spend no budget")
		require.Equal(t, mv(0, game.Black), rep.Move)
	})

	t.Run("unstable disagreement spends bounded extra bursts", func(t *testing.T) {
		state := stubState{depth: 2, turn: game.Black, breadth: 2}
		s := newStubSearcher(t, game.Black, state)
		// Most visited and best winrate disagree.
		a := s.tree.newChild(s.tree.root, game.White, mv(0, game.Black))
		s.tree.at(a).visits = 10
		s.tree.at(a).outcome = WinWeight
		b := s.tree.newChild(s.tree.root, game.White, mv(1, game.Black))
		s.tree.at(b).visits = 2
		s.tree.at(b).outcome = 2 * WinWeight
		s.tree.at(s.tree.root).visits = 12

		// Zero simulations per loop isolates the burst accounting.
		rep := s.Run(state, Budget{SimCount: 0, UnstableTries: 2}, 0, 1)

		require.Equal(t, 2, rep.UnstableBursts,
			"Persistent disagreement should spend every allowed burst")
		require.Equal(t, mv(0, game.Black), rep.Move,
			"Final choice stays the robust child")
	})

	t.Run("terminal root yields the sentinel move", func(t *testing.T) {
		state := stubState{depth: 0, turn: game.Black, breadth: 2}
		s := newStubSearcher(t, game.Black, state)

		rep := s.Run(state, DefaultBudget(), 0, 1)

		require.True(t, game.IsNone(rep.Move),
			"A stuck root is a resign signal, not an error")
	})
}
