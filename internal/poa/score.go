package poa

import (
	"fmt"
	"strings"
)

// Mode selects how a sequence is aligned against the graph. The numeric
// values match the original interface: 0 = local, 1 = global, 2 = gapped
type Mode int

const (
	// Local is Smith-Waterman-style alignment: only the highest scoring
	// window of the sequence is aligned, everything outside it is dropped
	Local Mode = 0

	// Global is Needleman-Wunsch-style alignment: the whole sequence is
	// aligned against a full path through the graph
	Global Mode = 1

	// SemiGlobal is global alignment with free end-gaps on the graph side:
	// skipping graph nodes before the first or after the last
	// sequence-consuming step costs nothing
	SemiGlobal Mode = 2
)

func (m Mode) String() string {
	switch m {
	case Local:
		return "local"
	case Global:
		return "global"
	case SemiGlobal:
		return "semi-global"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// valid reports whether m is one of the three known alignment modes
func (m Mode) valid() bool {
	return m == Local || m == Global || m == SemiGlobal
}

// ParseMode converts a mode name from the command line to a Mode.
// "gapped" is accepted as an alias for semi-global, matching the name the
// original interface used for alignment type 2
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "local":
		return Local, nil
	case "global":
		return Global, nil
	case "semi-global", "semiglobal", "gapped":
		return SemiGlobal, nil
	}
	return 0, fmt.Errorf("%w: unknown alignment mode %q", ErrInvalidInput, name)
}

// Scores holds the four alignment scores. Match is typically positive,
// the other three typically negative, with GapOpen <= GapExtend <= 0
// giving affine gap costs
type Scores struct {
	Match     int
	Mismatch  int
	GapOpen   int
	GapExtend int
}

// subScore is the substitution score for aligning sequence symbol a
// against graph symbol b
func (s Scores) subScore(a, b byte) int64 {
	if a == b {
		return int64(s.Match)
	}
	return int64(s.Mismatch)
}

// maxAbs returns the largest score magnitude, used to bound the worst-case
// accumulated path score
func (s Scores) maxAbs() int64 {
	m := int64(0)
	for _, v := range []int{s.Match, s.Mismatch, s.GapOpen, s.GapExtend} {
		a := int64(v)
		if a < 0 {
			a = -a
		}
		if a > m {
			m = a
		}
	}
	return m
}
