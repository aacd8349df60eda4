package poa

import "fmt"

// minScore marks unreachable cells. A quarter of the int64 range leaves
// headroom so adding a gap or substitution score can never wrap
const minScore = int64(-1) << 61

type opKind int

const (
	// opMatch consumes a sequence symbol and a graph node with the same symbol
	opMatch opKind = iota

	// opMismatch consumes a sequence symbol against a node with a different symbol
	opMismatch

	// opInsert consumes a sequence symbol with no corresponding graph node
	opInsert

	// opDelete consumes a graph node with no corresponding sequence symbol
	opDelete
)

// op is a single alignment step. node is a graph node id for
// match/mismatch/delete; symbol is the sequence symbol for
// match/mismatch/insert
type op struct {
	kind   opKind
	node   int
	symbol byte
}

// traceback is the ordered list of steps aligning one sequence against the
// graph, consumed exactly once by the graph's fold
type traceback []op

type matrix int

const (
	matM matrix = iota // ended in a match or mismatch
	matD               // ended in a deletion (graph node skipped by the sequence)
	matI               // ended in an insertion (extra sequence symbol)
)

// aligner holds the three DP tables for one sequence against one graph.
// Tables are flat row-major int64 slices indexed by (sequence position,
// column), where column 0 is the virtual root and column k is the k-th
// node in topological order
type aligner struct {
	g      *graph
	seq    []byte
	scores Scores
	mode   Mode

	order []int   // topological order of node ids
	preds [][]int // per column, predecessor columns ({0} for nodes with no in-edges)
	cols  int

	m, d, ins []int64

	// best local-mode cell, tracked during fill
	localBest int64
	localRow  int
	localCol  int
}

// align computes the optimal alignment of seq against g and returns its
// traceback. maxCells bounds the size of each DP table before allocation
func align(g *graph, seq []byte, mode Mode, scores Scores, maxCells int) (traceback, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("%w: empty sequence", ErrInvalidInput)
	}
	if g.len() == 0 {
		return nil, fmt.Errorf("%w: cannot align against an empty graph", ErrInvalidInput)
	}

	rows, cols := len(seq)+1, g.len()+1
	if maxCells > 0 && rows > maxCells/cols {
		return nil, fmt.Errorf("%w: %d x %d cells exceeds the limit of %d",
			ErrTableTooLarge, rows, cols, maxCells)
	}

	a := &aligner{
		g:      g,
		seq:    seq,
		scores: scores,
		mode:   mode,
		order:  g.topological(),
		cols:   cols,
	}

	a.preds = make([][]int, cols)
	rank := make([]int, g.len())
	for i, id := range a.order {
		rank[id] = i + 1
	}
	for k := 1; k < cols; k++ {
		v := &g.nodes[a.order[k-1]]
		if len(v.in) == 0 {
			a.preds[k] = []int{0}
			continue
		}
		ps := make([]int, len(v.in))
		for i, ei := range v.in {
			ps[i] = rank[g.edges[ei].from]
		}
		a.preds[k] = ps
	}

	a.fill()
	return a.trace()
}

// fill computes the M, D and I tables in topological column order; each
// cell only reads finalized predecessor columns and the previous row
func (a *aligner) fill() {
	rows := len(a.seq) + 1
	size := rows * a.cols
	a.m = make([]int64, size)
	a.d = make([]int64, size)
	a.ins = make([]int64, size)
	for i := 0; i < size; i++ {
		a.m[i] = minScore
		a.d[i] = minScore
		a.ins[i] = minScore
	}

	open, extend := int64(a.scores.GapOpen), int64(a.scores.GapExtend)
	a.localBest = 0

	// boundaries: row 0 has consumed no sequence, column 0 is the virtual root
	switch a.mode {
	case Local:
		// any cell may start a fresh alignment
		for k := 0; k < a.cols; k++ {
			a.m[k] = 0
		}
		for r := 1; r < rows; r++ {
			a.m[r*a.cols] = 0
		}
	default:
		a.m[0] = 0
		for k := 1; k < a.cols; k++ {
			best := minScore
			for _, p := range a.preds[k] {
				if s := a.m[p] + open; s > best {
					best = s
				}
				if s := a.d[p] + extend; s > best {
					best = s
				}
			}
			if a.mode == SemiGlobal && best < 0 {
				best = 0 // leading graph nodes may be skipped for free
			}
			a.d[k] = best
		}
		for r := 1; r < rows; r++ {
			mUp, iUp := a.m[(r-1)*a.cols], a.ins[(r-1)*a.cols]
			v := iUp + extend
			if s := mUp + open; s > v {
				v = s
			}
			a.ins[r*a.cols] = v
		}
	}

	for r := 1; r < rows; r++ {
		sym := a.seq[r-1]
		row, up := r*a.cols, (r-1)*a.cols
		for k := 1; k < a.cols; k++ {
			v := &a.g.nodes[a.order[k-1]]

			bestPrev := minScore
			for _, p := range a.preds[k] {
				if s := a.m[up+p]; s > bestPrev {
					bestPrev = s
				}
				if s := a.d[up+p]; s > bestPrev {
					bestPrev = s
				}
				if s := a.ins[up+p]; s > bestPrev {
					bestPrev = s
				}
			}
			mv := bestPrev + a.scores.subScore(sym, v.symbol)
			if a.mode == Local {
				if mv < 0 {
					mv = 0
				}
				if mv > a.localBest {
					a.localBest, a.localRow, a.localCol = mv, r, k
				}
			}
			a.m[row+k] = mv

			iv := a.ins[up+k] + extend
			if s := a.m[up+k] + open; s > iv {
				iv = s
			}
			a.ins[row+k] = iv

			dv := minScore
			for _, p := range a.preds[k] {
				if s := a.m[row+p] + open; s > dv {
					dv = s
				}
				if s := a.d[row+p] + extend; s > dv {
					dv = s
				}
			}
			a.d[row+k] = dv
		}
	}
}

// trace picks the alignment end cell for the mode and walks backward,
// recomputing each cell's provenance rather than keeping direction tables.
// Ties are broken deterministically: matrix preference M > D > I, then
// predecessors in stored adjacency order
func (a *aligner) trace() (traceback, error) {
	n := len(a.seq)
	var r, k int
	var mat matrix

	switch a.mode {
	case Local:
		if a.localBest <= 0 {
			return traceback{}, nil
		}
		r, k, mat = a.localRow, a.localCol, matM

	case Global:
		best := minScore
		found := false
		for col := 1; col < a.cols; col++ {
			v := &a.g.nodes[a.order[col-1]]
			if len(v.out) > 0 && a.g.endWeight[v.id] == 0 {
				continue
			}
			for _, c := range [3]struct {
				t []int64
				m matrix
			}{{a.m, matM}, {a.d, matD}, {a.ins, matI}} {
				if s := c.t[n*a.cols+col]; s > best {
					best, k, mat, found = s, col, c.m, true
				}
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: graph has no end nodes", ErrInvalidInput)
		}
		r = n

	case SemiGlobal:
		best := minScore
		for col := 0; col < a.cols; col++ {
			for _, c := range [3]struct {
				t []int64
				m matrix
			}{{a.m, matM}, {a.d, matD}, {a.ins, matI}} {
				if s := c.t[n*a.cols+col]; s > best {
					best, k, mat = s, col, c.m
				}
			}
		}
		r = n
	}

	open, extend := int64(a.scores.GapOpen), int64(a.scores.GapExtend)
	var ops traceback

walk:
	for {
		if r == 0 && k == 0 {
			break
		}
		if a.mode == SemiGlobal && r == 0 {
			break // remaining graph prefix is skipped for free
		}

		switch mat {
		case matM:
			id := a.order[k-1]
			sym := a.seq[r-1]
			kind := opMatch
			if a.g.nodes[id].symbol != sym {
				kind = opMismatch
			}
			ops = append(ops, op{kind: kind, node: id, symbol: sym})

			need := a.m[r*a.cols+k] - a.scores.subScore(sym, a.g.nodes[id].symbol)
			if a.mode == Local && need <= 0 {
				break walk // reached the start of the local window
			}
			for _, p := range a.preds[k] {
				for _, c := range [3]struct {
					t []int64
					m matrix
				}{{a.m, matM}, {a.d, matD}, {a.ins, matI}} {
					if c.t[(r-1)*a.cols+p] == need {
						r, k, mat = r-1, p, c.m
						continue walk
					}
				}
			}
			return nil, fmt.Errorf("alignment traceback lost at row %d, column %d", r, k)

		case matD:
			id := a.order[k-1]
			ops = append(ops, op{kind: opDelete, node: id})

			need := a.d[r*a.cols+k]
			for _, p := range a.preds[k] {
				if a.m[r*a.cols+p]+open == need {
					k, mat = p, matM
					continue walk
				}
				if a.d[r*a.cols+p]+extend == need {
					k, mat = p, matD
					continue walk
				}
			}
			return nil, fmt.Errorf("alignment traceback lost at row %d, column %d", r, k)

		case matI:
			ops = append(ops, op{kind: opInsert, symbol: a.seq[r-1]})

			need := a.ins[r*a.cols+k]
			switch {
			case a.m[(r-1)*a.cols+k]+open == need:
				mat = matM
			case a.ins[(r-1)*a.cols+k]+extend == need:
				// the insert run continues
			default:
				return nil, fmt.Errorf("alignment traceback lost at row %d, column %d", r, k)
			}
			r--
		}
	}

	// ops were collected end-first
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops, nil
}
