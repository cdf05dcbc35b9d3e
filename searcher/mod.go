package searcher

import (
	"errors"
	"time"
)

// Search hyperparameters. Every value can be overridden through agent
// configuration; these are the documented defaults.
const (
	// DefaultExploration is the UCB exploration constant.
	DefaultExploration = 1.44
	// DefaultSimCount is the number of simulations per turn when no
	// time management is configured.
	DefaultSimCount = 100
	// WinWeight is the reward for a rollout won by the searching side.
	WinWeight = 2
	// BasicConst divides the remaining clock into per-turn thinking time.
	BasicConst = 30
	// EnhancedPeak is the default peak parameter of the enhanced
	// time-management formula, front-loading the opening turns.
	EnhancedPeak = 15
	// EarlyThreshold is the fixed visit-count lead at which the search
	// commits to the leading move and stops early.
	EarlyThreshold = 5000
	// InitTime is the per-game clock in time-managed mode.
	InitTime = 300 * time.Second
)

const (
	// A discovered terminal outcome is scaled far above any ordinary
	// UCB value so a forced result dominates statistical scores.
	terminalScale = 200
	// Unexplored-move sentinels. Deliberately asymmetric: a node where
	// the searching side is to move tries every unexplored move before
	// any visited one, while an opponent node treats unexplored replies
	// as non-threatening until proven otherwise.
	unexploredSelf = 999.0
	unexploredOppo = 0.0
)

// ErrNoChild reports a child lookup for a move the node never expanded.
// Callers are expected to check hasChild first; seeing this error means
// a search invariant was broken.
var ErrNoChild = errors.New("searcher: no child for move")
