package game

import "fmt"

// Place puts a stone of Who on board index Pos.
type Place struct {
	Pos int
	Who string
}

// None is the empty/no-op sentinel, distinct from any legal placement.
// An agent returns it to signal "no move available" (resign/pass).
var None Move = Place{Pos: -1}

func (p Place) Player() string { return p.Who }

func (p Place) IsNone() bool { return p.Pos < 0 }

func (p Place) String() string {
	if p.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%s[%d]", p.Who, p.Pos)
}
