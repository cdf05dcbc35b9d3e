package searcher

import (
	"math"

	"nogo/game"
)

// Tree owns the persistent search tree. Nodes live in a single growable
// arena and reference each other by index, so there is no shared
// ownership: advancing the root transfers the chosen subtree to the new
// root and releases every sibling subtree.
type Tree struct {
	nodes       []node
	root        nodeID
	exploration float64
}

// NewTree returns a tree rooted at a fresh node where role is to move.
func NewTree(role string, exploration float64) *Tree {
	t := &Tree{exploration: exploration}
	t.Reset(role)
	return t
}

// Reset discards the whole tree and roots it at a fresh node.
func (t *Tree) Reset(role string) {
	t.nodes = t.nodes[:0]
	t.root = t.alloc(role, game.None)
}

func (t *Tree) alloc(role string, mv game.Move) nodeID {
	t.nodes = append(t.nodes, node{
		role:     role,
		move:     mv,
		children: make(map[game.Move]nodeID),
	})
	return nodeID(len(t.nodes) - 1)
}

// at returns the node for id. The pointer is only valid until the next
// allocation grows the arena.
func (t *Tree) at(id nodeID) *node {
	return &t.nodes[id]
}

func (t *Tree) hasChild(id nodeID, mv game.Move) bool {
	_, ok := t.nodes[id].children[mv]
	return ok
}

func (t *Tree) child(id nodeID, mv game.Move) (nodeID, error) {
	cid, ok := t.nodes[id].children[mv]
	if !ok {
		return noNode, ErrNoChild
	}
	return cid, nil
}

// newChild inserts a fresh node reached by mv, where role is to move.
// Inserting twice for the same move is a logic error.
func (t *Tree) newChild(id nodeID, role string, mv game.Move) nodeID {
	if t.hasChild(id, mv) {
		panic("searcher: child already exists for move")
	}
	cid := t.alloc(role, mv)
	n := t.at(id)
	n.children[mv] = cid
	n.order = append(n.order, mv)
	return cid
}

// scoreMove is the UCB selection metric for choosing mv at node id, always
// valued from the fixed perspective side. Unexplored moves get the
// asymmetric sentinels; terminal children get their pinned outcome scaled
// above any statistical score; otherwise it is minimax-flavored UCT with
// the value term negated when the opponent is choosing.
func (t *Tree) scoreMove(id nodeID, mv game.Move, perspective string) float64 {
	n := t.at(id)
	cid, ok := n.children[mv]
	if !ok {
		if n.role == perspective {
			return unexploredSelf
		}
		return unexploredOppo
	}
	c := t.at(cid)
	if c.terminal {
		return float64(c.outcome) * terminalScale
	}
	sign := 1.0
	if n.role != perspective {
		sign = -1.0
	}
	return sign*float64(c.outcome)/float64(c.visits) +
		t.exploration*math.Sqrt(math.Log(float64(n.visits))/float64(c.visits))
}

// bestByVisits is the robust-child rule: the most-visited child wins,
// ties broken by insertion order.
func (t *Tree) bestByVisits(id nodeID) game.Move {
	best := game.None
	bestVisits := -1
	n := t.at(id)
	for _, mv := range n.order {
		if c := t.at(n.children[mv]); c.visits > bestVisits {
			best, bestVisits = mv, c.visits
		}
	}
	return best
}

// bestByWinrate ranks by mean outcome instead; used only by the
// stability heuristic, never for the final move choice.
func (t *Tree) bestByWinrate(id nodeID) game.Move {
	best := game.None
	bestRate := math.Inf(-1)
	n := t.at(id)
	for _, mv := range n.order {
		if rate := t.at(n.children[mv]).winrate(); rate > bestRate {
			best, bestRate = mv, rate
		}
	}
	return best
}

// visitLead returns the most-visited root child and the top two visit
// counts, for the early-stop check.
func (t *Tree) visitLead() (leader game.Move, most, second int) {
	leader = game.None
	n := t.at(t.root)
	for _, mv := range n.order {
		switch c := t.at(n.children[mv]); {
		case c.visits > most:
			second = most
			leader, most = mv, c.visits
		case c.visits > second:
			second = c.visits
		}
	}
	return leader, most, second
}

// Advance commits a move: the root descends into the child for mv,
// creating it first when the tree never explored that move. All sibling
// subtrees are released.
func (t *Tree) Advance(mv game.Move) {
	cid, err := t.child(t.root, mv)
	if err != nil {
		cid = t.newChild(t.root, game.Opponent(t.RootRole()), mv)
	}
	t.rebase(cid)
}

// rebase rebuilds the arena keeping only the subtree under newRoot.
func (t *Tree) rebase(newRoot nodeID) {
	fresh := make([]node, 0, len(t.nodes))
	remap := make(map[nodeID]nodeID, len(t.nodes))
	queue := []nodeID{newRoot}
	for len(queue) > 0 {
		old := queue[0]
		queue = queue[1:]
		remap[old] = nodeID(len(fresh))
		fresh = append(fresh, t.nodes[old])
		for _, mv := range t.nodes[old].order {
			queue = append(queue, t.nodes[old].children[mv])
		}
	}
	for i := range fresh {
		kids := make(map[game.Move]nodeID, len(fresh[i].children))
		for mv, old := range fresh[i].children {
			kids[mv] = remap[old]
		}
		fresh[i].children = kids
	}
	t.nodes = fresh
	t.root = 0
}

// RootRole returns the side to move at the root. It must equal the
// searching side at every turn start.
func (t *Tree) RootRole() string { return t.nodes[t.root].role }

// RootTerminal reports whether the root was observed to have no legal move.
func (t *Tree) RootTerminal() bool { return t.nodes[t.root].terminal }

// RootVisits returns the root's accumulated visit count.
func (t *Tree) RootVisits() int { return t.nodes[t.root].visits }

// BestMove is the final per-turn move choice (robust child).
func (t *Tree) BestMove() game.Move { return t.bestByVisits(t.root) }

// WinrateMove is the alternate ranking used by the stability heuristic.
func (t *Tree) WinrateMove() game.Move { return t.bestByWinrate(t.root) }

// Len returns the number of live nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }
