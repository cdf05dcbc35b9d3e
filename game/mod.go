package game

import "errors"

// The two adversarial roles. Black moves first.
const (
	Black = "black"
	White = "white"
)

// Opponent returns the other role.
func Opponent(role string) string {
	if role == Black {
		return White
	}
	return Black
}

var (
	// ErrWrongTurn reports a move attempted by the side not to act.
	ErrWrongTurn = errors.New("game: not this side's turn")
	// ErrForbidden reports a move that violates the placement rules.
	ErrForbidden = errors.New("game: forbidden placement")
)

// Move identifies a placement by one side. Implementations must be
// comparable so moves can key child maps in the search tree.
type Move interface {
	Player() string
	IsNone() bool
}

// IsNone reports whether m is the empty/no-op sentinel.
func IsNone(m Move) bool {
	return m == nil || m.IsNone()
}

// State is an immutable game position. Apply never mutates the receiver;
// it returns a fresh copy so the search can explore hypothetical futures
// without touching the real game state.
type State interface {
	// Player returns the side to move.
	Player() string
	// MoveSpace returns every candidate move for a side, legal or not,
	// in a deterministic order.
	MoveSpace(player string) []Move
	// Apply plays a move and returns the successor state, or
	// ErrWrongTurn / ErrForbidden when the move is illegal.
	Apply(m Move) (State, error)
	// Equal compares two positions, used to recover the opponent's move.
	Equal(other State) bool
}
