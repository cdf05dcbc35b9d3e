package agent

import (
	"strconv"
	"strings"
)

// Meta is the flat key=value configuration agents are constructed from,
// e.g. "name=mcts role=black search=MCTS C=1.44 p_leaf=4 early".
// Bare keys without '=' act as flags.
type Meta map[string]string

// ParseArgs splits a whitespace-separated key=value string.
func ParseArgs(args string) Meta {
	meta := make(Meta)
	for _, field := range strings.Fields(args) {
		key, value, _ := strings.Cut(field, "=")
		meta[key] = value
	}
	return meta
}

func (m Meta) Has(key string) bool {
	_, ok := m[key]
	return ok
}

func (m Meta) String(key, fallback string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return fallback
}

func (m Meta) Int(key string, fallback int) int {
	if v, ok := m[key]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func (m Meta) Float(key string, fallback float64) float64 {
	if v, ok := m[key]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func (m Meta) Int64(key string, fallback int64) int64 {
	if v, ok := m[key]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
