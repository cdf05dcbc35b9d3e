package game

import "strings"

// DefaultSize is the side length of a standard NoGo board.
const DefaultSize = 9

type cell uint8

const (
	empty cell = iota
	black
	white
	hollow // unplayable point, never legal for either side
)

func cellOf(role string) cell {
	if role == Black {
		return black
	}
	return white
}

// Board is a NoGo position. Placements that capture an opponent group or
// leave the placed group without liberties are forbidden; the first side
// without a legal placement loses. Board has value semantics: Apply
// returns a copy and never mutates the receiver.
type Board struct {
	size  int
	turn  string
	cells []cell
}

// NewBoard returns an empty standard board with black to move.
func NewBoard() Board {
	return NewBoardSize(DefaultSize)
}

// NewBoardSize returns an empty size×size board, optionally with hollow
// (unplayable) points.
func NewBoardSize(size int, hollows ...int) Board {
	b := Board{
		size:  size,
		turn:  Black,
		cells: make([]cell, size*size),
	}
	for _, pos := range hollows {
		b.cells[pos] = hollow
	}
	return b
}

func (b Board) Size() int { return b.size }

func (b Board) Player() string { return b.turn }

func (b Board) MoveSpace(player string) []Move {
	space := make([]Move, 0, len(b.cells))
	for pos, c := range b.cells {
		if c == hollow {
			continue
		}
		space = append(space, Place{Pos: pos, Who: player})
	}
	return space
}

func (b Board) Apply(m Move) (State, error) {
	p, ok := m.(Place)
	if !ok || p.IsNone() || p.Pos >= len(b.cells) {
		return b, ErrForbidden
	}
	if p.Who != b.turn {
		return b, ErrWrongTurn
	}
	if b.cells[p.Pos] != empty {
		return b, ErrForbidden
	}

	next := Board{
		size:  b.size,
		turn:  Opponent(b.turn),
		cells: append([]cell(nil), b.cells...),
	}
	own := cellOf(p.Who)
	next.cells[p.Pos] = own

	// Capturing is illegal: no adjacent opponent group may lose its
	// last liberty.
	for _, n := range next.neighbors(p.Pos) {
		if c := next.cells[n]; c != empty && c != hollow && c != own {
			if next.liberties(n) == 0 {
				return b, ErrForbidden
			}
		}
	}
	// Suicide is illegal: the placed group must keep a liberty.
	if next.liberties(p.Pos) == 0 {
		return b, ErrForbidden
	}
	return next, nil
}

func (b Board) Equal(other State) bool {
	o, ok := other.(Board)
	if !ok || o.size != b.size || o.turn != b.turn {
		return false
	}
	for i, c := range b.cells {
		if o.cells[i] != c {
			return false
		}
	}
	return true
}

func (b Board) neighbors(pos int) []int {
	ns := make([]int, 0, 4)
	row, col := pos/b.size, pos%b.size
	if row > 0 {
		ns = append(ns, pos-b.size)
	}
	if row < b.size-1 {
		ns = append(ns, pos+b.size)
	}
	if col > 0 {
		ns = append(ns, pos-1)
	}
	if col < b.size-1 {
		ns = append(ns, pos+1)
	}
	return ns
}

// liberties counts the empty points adjacent to the group at pos.
func (b Board) liberties(pos int) int {
	own := b.cells[pos]
	seen := make(map[int]bool, 8)
	libs := make(map[int]bool, 8)
	stack := []int{pos}
	seen[pos] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range b.neighbors(cur) {
			switch b.cells[n] {
			case empty:
				libs[n] = true
			case own:
				if !seen[n] {
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
	}
	return len(libs)
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			switch b.cells[row*b.size+col] {
			case black:
				sb.WriteByte('X')
			case white:
				sb.WriteByte('O')
			case hollow:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
