package searcher

import "nogo/game"

type nodeID int32

const noNode nodeID = -1

// node is one search-tree vertex, stored in the tree's arena and
// addressed by a stable nodeID. role is the side to move from this
// position; move is the placement that led here (None for the root).
// outcome accumulates rollout results relative to the searching side,
// not relative to role.
type node struct {
	role     string
	move     game.Move
	outcome  int
	visits   int
	terminal bool
	children map[game.Move]nodeID
	order    []game.Move // insertion order, for deterministic ranking
}

// recordVisit adds a backpropagated result. With leaf parallelism each
// pass through the node carries width rollouts, so the visit count
// advances by max(1, width).
func (n *node) recordVisit(result, width int) {
	n.outcome += result
	n.visits += max(1, width)
}

// markTerminal pins the node's outcome once it is observed to have no
// legal move. The accumulator is set absolutely, not added to, so
// repeated visits keep it proportional to the visit count.
func (n *node) markTerminal(outcome, width int) {
	n.outcome = outcome
	n.visits += max(1, width)
	n.terminal = true
}

func (n *node) winrate() float64 {
	if n.visits == 0 {
		return 0
	}
	return float64(n.outcome) / float64(n.visits)
}
