// Package poa computes a consensus sequence from a set of related symbol
// sequences (DNA bases or amino-acid residues) by partial order alignment:
// sequences are folded one at a time into a DAG summarizing the multiple
// alignment so far, and the consensus is the heaviest path through the
// final graph.
//
// The package is purely computational and stateless between calls: every
// Consensus call owns a fresh graph and fresh alignment tables, discarded
// when it returns.
package poa

import (
	"fmt"
	"math"
)

// defaultMaxCells bounds each DP table to 256M cells (about 2 GB per
// table at 8 bytes a cell) unless the caller overrides it
const defaultMaxCells = 1 << 28

// Option adjusts a single consensus computation
type Option func(*settings)

type settings struct {
	maxCells int
}

// WithMaxTableCells overrides the maximum number of DP table cells allowed
// for one alignment. Alignments that would exceed it fail with
// ErrTableTooLarge instead of allocating
func WithMaxTableCells(n int) Option {
	return func(s *settings) { s.maxCells = n }
}

// Consensus folds seqs into a partial order alignment graph, one sequence
// at a time, and returns the heaviest-path consensus. The first sequence
// seeds the graph as a linear chain; each later sequence is aligned
// against the current graph with the given mode and scores and its
// traceback is folded in.
//
// The result is truncated to maxLen symbols when the true consensus is
// longer; truncation is silent and documented, not an error. All other
// failures return no output: an empty sequence list, a zero-length
// sequence, an unknown mode or a non-positive maxLen yield
// ErrInvalidInput, oversized alignment tables yield ErrTableTooLarge, and
// score parameters that could overflow the accumulator yield
// ErrScoreOverflow
func Consensus(seqs [][]byte, maxLen int, mode Mode, scores Scores, opts ...Option) ([]byte, error) {
	s := settings{maxCells: defaultMaxCells}
	for _, opt := range opts {
		opt(&s)
	}

	if len(seqs) == 0 {
		return nil, fmt.Errorf("%w: no sequences", ErrInvalidInput)
	}
	if !mode.valid() {
		return nil, fmt.Errorf("%w: unknown alignment mode %d", ErrInvalidInput, int(mode))
	}
	if maxLen <= 0 {
		return nil, fmt.Errorf("%w: non-positive maximum consensus length %d", ErrInvalidInput, maxLen)
	}

	total := 0
	longest := 0
	for i, seq := range seqs {
		if len(seq) == 0 {
			return nil, fmt.Errorf("%w: sequence %d is empty", ErrInvalidInput, i)
		}
		total += len(seq)
		if len(seq) > longest {
			longest = len(seq)
		}
	}

	// a path can traverse at most every folded symbol plus the current
	// sequence; its score must stay clear of the unreachable-cell floor
	if worst := int64(total) + int64(longest) + 1; scores.maxAbs() > 0 &&
		worst > math.MaxInt64/4/scores.maxAbs() {
		return nil, fmt.Errorf("%w: scores of magnitude %d over %d symbols",
			ErrScoreOverflow, scores.maxAbs(), total)
	}

	g := newGraph()
	for _, seq := range seqs {
		if g.len() == 0 {
			g.seed(seq)
			continue
		}
		tb, err := align(g, seq, mode, scores, s.maxCells)
		if err != nil {
			return nil, err
		}
		g.fold(tb)
	}

	return g.consensus(maxLen), nil
}
