package types

import "fmt"

// Mode selects what is extracted from an input.
type Mode string

const (
	ModeTokens Mode = "tokens"
	ModeLines  Mode = "lines"
	ModeInts   Mode = "ints"
	ModeFloats Mode = "floats"
)

var Modes = []Mode{ModeTokens, ModeLines, ModeInts, ModeFloats}

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}
