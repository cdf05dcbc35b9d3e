package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nogo/game"
)

func TestNew(t *testing.T) {
	t.Run("random is the default strategy", func(t *testing.T) {
		a, err := New("role=black")
		require.NoError(t, err)
		require.IsType(t, &Random{}, a)
		require.Equal(t, "random", a.Name())
	})

	t.Run("search key selects the strategy", func(t *testing.T) {
		a, err := New("search=greedy role=white")
		require.NoError(t, err)
		require.IsType(t, &Greedy{}, a)

		a, err = New("search=MCTS role=black")
		require.NoError(t, err)
		require.IsType(t, &MCTS{}, a)
	})

	t.Run("unknown strategy is rejected", func(t *testing.T) {
		_, err := New("search=alphabeta role=black")
		require.Error(t, err)
	})

	t.Run("role must be black or white", func(t *testing.T) {
		_, err := New("role=purple")
		require.ErrorIs(t, err, ErrInvalidRole)
		_, err = New("search=greedy")
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("forbidden name characters are rejected", func(t *testing.T) {
		_, err := New("role=black name=bad(name")
		require.ErrorIs(t, err, ErrInvalidName)
	})
}

func TestRandomTakeAction(t *testing.T) {
	t.Run("plays a legal move", func(t *testing.T) {
		a, err := NewRandom("role=black seed=7")
		require.NoError(t, err)

		board := game.NewBoardSize(3)
		mv, err := a.TakeAction(board)
		require.NoError(t, err)
		require.False(t, game.IsNone(mv))
		_, err = board.Apply(mv)
		require.NoError(t, err)
	})

	t.Run("returns the sentinel when stuck", func(t *testing.T) {
		a, err := NewRandom("role=black seed=7")
		require.NoError(t, err)

		board := game.NewBoardSize(2, 0, 1, 2, 3) // every point hollow
		mv, err := a.TakeAction(board)
		require.NoError(t, err)
		require.True(t, game.IsNone(mv))
	})
}

func TestGreedyTakeAction(t *testing.T) {
	a, err := NewGreedy("role=black seed=7")
	require.NoError(t, err)

	board := game.NewBoardSize(3)
	mv, err := a.TakeAction(board)
	require.NoError(t, err)
	require.False(t, game.IsNone(mv))
	_, err = board.Apply(mv)
	require.NoError(t, err)
}
