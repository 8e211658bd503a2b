package core

import "strings"

type StrategyKind int

const (
	StrategySync StrategyKind = iota
	StrategyAsync
)

func (k StrategyKind) String() string {
	switch k {
	case StrategySync:
		return "sync"
	case StrategyAsync:
		return "async"
	default:
		return "unknown"
	}
}

// Maps a declaration's strategy tag to a strategy kind. The tag selects the
// asynchronous strategy when it starts with "async", ignoring case.
func ParseStrategy(tag string) StrategyKind {
	if strings.HasPrefix(strings.ToLower(tag), "async") {
		return StrategyAsync
	}

	return StrategySync
}
