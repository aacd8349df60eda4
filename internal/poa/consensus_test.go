package poa

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

// the reference DNA reads: small perturbations of AATGCCCGTT
var dnaReads = [][]byte{
	[]byte("ATTGCCCGTT"),
	[]byte("AATGCCGTT"),
	[]byte("AATGCCCGAT"),
	[]byte("AACGCCCGTC"),
	[]byte("AGTGCTCGTT"),
	[]byte("AATGCTCGTT"),
}

func Test_Consensus_dna(t *testing.T) {
	got, err := Consensus(dnaReads, 20, Global, testScores)
	if err != nil {
		t.Fatal(err)
	}

	if want := []byte("AATGCCCGTT"); !bytes.Equal(got, want) {
		t.Errorf("Consensus() = %s, want %s", got, want)
	}
}

func Test_Consensus_protein(t *testing.T) {
	reads := [][]byte{
		[]byte("FNLKESWDDCQ"),
		[]byte("FNLKPSWDCQ"),
		[]byte("FNLKSPSWDDCQ"),
		[]byte("FNLKASWCQ"),
		[]byte("FLKPSWDDCQ"),
		[]byte("FNLKPSWDADCQ"),
	}

	got, err := Consensus(reads, 20, Global, testScores)
	if err != nil {
		t.Fatal(err)
	}

	if want := []byte("FNLKPSWDDCQ"); !bytes.Equal(got, want) {
		t.Errorf("Consensus() = %s, want %s", got, want)
	}
}

// a single input sequence is its own consensus in every mode
func Test_Consensus_single(t *testing.T) {
	seq := []byte("GATTACA")

	for _, mode := range []Mode{Local, Global, SemiGlobal} {
		got, err := Consensus([][]byte{seq}, 100, mode, testScores)
		if err != nil {
			t.Fatalf("mode %s: %v", mode, err)
		}
		if !bytes.Equal(got, seq) {
			t.Errorf("mode %s: Consensus() = %s, want %s", mode, got, seq)
		}
	}
}

// when the true consensus is longer than the bound, the result is exactly
// the bound-length prefix of the untruncated consensus
func Test_Consensus_truncation(t *testing.T) {
	full, err := Consensus(dnaReads, 20, Global, testScores)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Consensus(dnaReads, 4, Global, testScores)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 4 {
		t.Fatalf("truncated consensus length = %d, want 4", len(got))
	}
	if !bytes.Equal(got, full[:4]) {
		t.Errorf("truncated consensus = %s, want prefix %s", got, full[:4])
	}
}

// sequences sharing a core motif between unrelated flanks: local mode
// recovers just the motif, global mode spans the flanks too
func Test_Consensus_localMotif(t *testing.T) {
	core := []byte("GATTACAGATTACA")
	reads := [][]byte{
		core,
		[]byte("CCCGG" + string(core) + "TTAAC"),
		[]byte("AAGTC" + string(core) + "GGCAT"),
		[]byte("TTTTT" + string(core) + "AAAAA"),
	}

	local, err := Consensus(reads, 100, Local, testScores)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(local, core) {
		t.Errorf("local consensus = %s, want %s", local, core)
	}

	global, err := Consensus(reads, 100, Global, testScores)
	if err != nil {
		t.Fatal(err)
	}
	if len(global) <= len(core) {
		t.Errorf("global consensus length = %d, want > %d", len(global), len(core))
	}
	if !bytes.Contains(global, core) {
		t.Errorf("global consensus %s does not span the core motif", global)
	}
}

// a sequence contained in the seed folds into it under semi-global mode
// without disturbing the consensus
func Test_Consensus_semiGlobalContained(t *testing.T) {
	seed := []byte("AAAATTTTCCCC")
	got, err := Consensus([][]byte{seed, []byte("TTTT")}, 100, SemiGlobal, testScores)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(got, seed) {
		t.Errorf("Consensus() = %s, want %s", got, seed)
	}
}

// repeated extraction over the same inputs is byte-identical
func Test_Consensus_deterministic(t *testing.T) {
	first, err := Consensus(dnaReads, 20, Global, testScores)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		next, err := Consensus(dnaReads, 20, Global, testScores)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, next) {
			t.Fatalf("run %d: consensus %s differs from first run %s", i, next, first)
		}
	}
}

// two reads route through a detour node carrying an extra symbol, so the
// detour's two edges sum to the same weight as the direct majority edge;
// the earlier-added direct edge must keep the tie
func Test_consensus_detourTie(t *testing.T) {
	g := newGraph()
	g.seed([]byte("ACG"))

	g.fold(traceback{
		{kind: opMatch, node: 0, symbol: 'A'},
		{kind: opInsert, symbol: 'T'},
		{kind: opMatch, node: 1, symbol: 'C'},
		{kind: opMatch, node: 2, symbol: 'G'},
	})
	// the detour node exists now, so the second read matches it instead
	g.fold(traceback{
		{kind: opMatch, node: 0, symbol: 'A'},
		{kind: opMatch, node: 3, symbol: 'T'},
		{kind: opMatch, node: 1, symbol: 'C'},
		{kind: opMatch, node: 2, symbol: 'G'},
	})
	for i := 0; i < 3; i++ {
		g.fold(traceback{
			{kind: opMatch, node: 0, symbol: 'A'},
			{kind: opMatch, node: 1, symbol: 'C'},
			{kind: opMatch, node: 2, symbol: 'G'},
		})
	}

	// direct edge 0->1 has weight 4, the detour edges 0->3 and 3->1 weight 2 each
	if got := g.consensus(10); !bytes.Equal(got, []byte("ACG")) {
		t.Errorf("consensus() = %s, want ACG", got)
	}
}

// when two end nodes tie for the heaviest finishing score, the
// earlier-added node keeps the consensus end
func Test_consensus_endAnchorTie(t *testing.T) {
	g := newGraph()
	g.seed([]byte("A"))
	g.fold(traceback{{kind: opInsert, symbol: 'C'}})

	if got := g.consensus(10); !bytes.Equal(got, []byte("A")) {
		t.Errorf("consensus() = %s, want A", got)
	}
}

func Test_Consensus_errors(t *testing.T) {
	tests := []struct {
		name   string
		seqs   [][]byte
		maxLen int
		mode   Mode
		scores Scores
		want   error
	}{
		{"no sequences", nil, 20, Global, testScores, ErrInvalidInput},
		{"empty sequence", [][]byte{[]byte("ACGT"), {}}, 20, Global, testScores, ErrInvalidInput},
		{"unknown mode", dnaReads, 20, Mode(7), testScores, ErrInvalidInput},
		{"zero max length", dnaReads, 0, Global, testScores, ErrInvalidInput},
		{"negative max length", dnaReads, -5, Global, testScores, ErrInvalidInput},
		{
			"score overflow",
			dnaReads, 20, Global,
			Scores{Match: math.MaxInt / 2, Mismatch: -4, GapOpen: -3, GapExtend: -1},
			ErrScoreOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Consensus(tt.seqs, tt.maxLen, tt.mode, tt.scores)
			if !errors.Is(err, tt.want) {
				t.Errorf("Consensus() error = %v, want %v", err, tt.want)
			}
			if out != nil {
				t.Errorf("Consensus() returned output %s alongside an error", out)
			}
		})
	}
}

func Test_Consensus_tableLimit(t *testing.T) {
	_, err := Consensus(dnaReads, 20, Global, testScores, WithMaxTableCells(8))
	if !errors.Is(err, ErrTableTooLarge) {
		t.Errorf("Consensus() error = %v, want %v", err, ErrTableTooLarge)
	}
}
