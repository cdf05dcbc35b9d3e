package agent

import (
	"errors"
	"fmt"
	"strings"

	"nogo/game"
)

var (
	// ErrInvalidRole rejects construction with a role that is neither
	// black nor white.
	ErrInvalidRole = errors.New("agent: invalid role")
	// ErrInvalidName rejects names containing forbidden characters.
	ErrInvalidName = errors.New("agent: invalid name")
	// ErrDesync reports an unrecoverable mismatch between the search
	// tree root and the side expected to move. Callers must treat it as
	// fatal: continuing risks playing for the wrong side.
	ErrDesync = errors.New("agent: search tree out of sync")
)

const forbiddenNameChars = "[]():; "

// Agent is the per-turn public contract: TakeAction is called once per
// turn by an external game loop. A None move is a legitimate "no move
// available" signal, not an error.
type Agent interface {
	Name() string
	Role() string
	OpenEpisode(flag string)
	CloseEpisode(flag string)
	TakeAction(state game.State) (game.Move, error)
}

// New constructs an agent from a flat key=value args string. The search
// key selects the strategy: random (default), greedy, or MCTS.
func New(args string) (Agent, error) {
	meta := ParseArgs(args)
	switch search := meta.String("search", "random"); search {
	case "random":
		return NewRandom(args)
	case "greedy":
		return NewGreedy(args)
	case "MCTS", "mcts":
		return NewMCTS(args)
	default:
		return nil, fmt.Errorf("agent: unknown search strategy %q", search)
	}
}

func roleOf(meta Meta) (string, error) {
	role := meta.String("role", "unknown")
	if role != game.Black && role != game.White {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return role, nil
}

func nameOf(meta Meta, fallback string) (string, error) {
	name := meta.String("name", fallback)
	if strings.ContainsAny(name, forbiddenNameChars) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}
