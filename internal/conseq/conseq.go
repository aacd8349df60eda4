// Package conseq glues the command line surface to the poa engine: it
// parses flags, reads the reads from multi-FASTA files, runs the consensus
// computation and writes the result back out as FASTA
package conseq

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pjedge/conseq/config"
	"github.com/pjedge/conseq/internal/poa"
	"github.com/spf13/cobra"
)

// logger is for logging to Stderr (without an annoying timestamp)
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

// Flags contains parsed cobra flags like "in" and "out" that are used by
// the consensus commands
type Flags struct {
	// the path to the input multi-FASTA file of reads
	in string

	// the path to write the consensus to, empty for stdout
	out string
}

// inputParser contains methods for guessing at unset flags
type inputParser struct{}

// parseCmdFlags gathers the in path and out path from a cobra cmd object
func parseCmdFlags(cmd *cobra.Command, args []string) (*Flags, error) {
	p := inputParser{}
	fs := &Flags{}

	fs.in, _ = cmd.Flags().GetString("in")
	if fs.in == "" && len(args) > 0 {
		fs.in = args[0]
	}
	if fs.in == "" {
		in, err := p.guessInput()
		if err != nil {
			return nil, err
		}
		fs.in = in
	}

	fs.out, _ = cmd.Flags().GetString("out")

	return fs, nil
}

// guessInput returns the first fasta file in the current directory. Is
// used if the user hasn't specified an input file
func (p *inputParser) guessInput() (in string, err error) {
	dir, _ := filepath.Abs(".")
	files, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(file.Name()))
		if ext == ".fa" || ext == ".fasta" {
			return file.Name(), nil
		}
	}

	return "", fmt.Errorf("failed: no input argument set and no fasta file found in %s", dir)
}

// guessOutput gets an output path from an input path (if no output path
// is specified)
func (p *inputParser) guessOutput(in string) (out string) {
	ext := filepath.Ext(in)
	return in[0:len(in)-len(ext)] + ".consensus.fasta"
}

// RunConsensus is the Run function of the consensus command: one
// multi-FASTA of reads in, one consensus record out
func RunConsensus(cmd *cobra.Command, args []string) {
	c := config.New()

	fs, err := parseCmdFlags(cmd, args)
	if err != nil {
		logger.Fatal(err)
	}

	if err := ConsensusFile(fs.in, fs.out, c); err != nil {
		logger.Fatal(err)
	}
}

// ConsensusFile reads the reads in the multi-FASTA file at in, computes
// their consensus with the settings in c, and writes a FASTA record to
// out, or to stdout when out is empty
func ConsensusFile(in, out string, c *config.Config) error {
	mode, err := poa.ParseMode(c.Mode)
	if err != nil {
		return err
	}

	records, err := readFasta(in)
	if err != nil {
		return err
	}

	seqs := make([][]byte, len(records))
	for i, r := range records {
		seqs[i] = r.Seq
	}

	logger.Info("computing consensus",
		"in", in, "reads", len(seqs), "mode", mode.String())

	cns, err := poa.Consensus(seqs, c.MaxLength, mode, poa.Scores{
		Match:     c.Match,
		Mismatch:  c.Mismatch,
		GapOpen:   c.GapOpen,
		GapExtend: c.GapExtend,
	}, poa.WithMaxTableCells(c.MaxDPCells))
	if err != nil {
		return fmt.Errorf("failed to compute a consensus from %s: %w", in, err)
	}

	record := Record{
		ID:  fmt.Sprintf("%s consensus of %d sequences", baseName(in), len(seqs)),
		Seq: cns,
	}

	if out == "" {
		return writeFasta(os.Stdout, record)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %v", err)
	}
	defer f.Close()

	if err := writeFasta(f, record); err != nil {
		return err
	}

	logger.Info("wrote consensus", "out", out, "length", len(cns))
	return nil
}

// baseName is the file name without directory or extension, used to name
// the output record
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
