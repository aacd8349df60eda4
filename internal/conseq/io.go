package conseq

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Record is a single FASTA record: a header id and its sequence
type Record struct {
	ID  string
	Seq []byte
}

// whitespace inside or between sequence lines is dropped; symbols are kept
// as-is otherwise, so both nucleotide and amino-acid alphabets survive
var whitespace = regexp.MustCompile(`\s`)

// readFasta parses the multi-FASTA file at path to records
func readFasta(path string) (records []Record, err error) {
	if !filepath.IsAbs(path) {
		if path, err = filepath.Abs(path); err != nil {
			return nil, fmt.Errorf("failed to create path to input file: %v", err)
		}
	}

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %v", err)
	}

	lines := strings.Split(string(dat), "\n")

	var headerIndices []int
	var ids []string
	for i, line := range lines {
		if strings.HasPrefix(line, ">") {
			headerIndices = append(headerIndices, i)
			ids = append(ids, strings.TrimSpace(line[1:]))
		}
	}

	// accumulate the sequences from between the headers
	for i, headerIndex := range headerIndices {
		nextLine := len(lines)
		if i < len(headerIndices)-1 {
			nextLine = headerIndices[i+1]
		}
		seqJoined := strings.Join(lines[headerIndex+1:nextLine], "")
		seq := strings.ToUpper(whitespace.ReplaceAllString(seqJoined, ""))

		if seq == "" {
			return nil, fmt.Errorf("failed to parse %s: record %q has no sequence", path, ids[i])
		}
		records = append(records, Record{ID: ids[i], Seq: []byte(seq)})
	}

	// opened and parsed file but found nothing
	if len(records) < 1 {
		return nil, fmt.Errorf("failed to parse any records from %s", path)
	}

	return records, nil
}

// writeFasta writes a single record, wrapping the sequence at 80 columns
func writeFasta(w io.Writer, r Record) error {
	if _, err := fmt.Fprintf(w, ">%s\n", r.ID); err != nil {
		return err
	}
	for start := 0; start < len(r.Seq); start += 80 {
		end := start + 80
		if end > len(r.Seq) {
			end = len(r.Seq)
		}
		if _, err := fmt.Fprintf(w, "%s\n", r.Seq[start:end]); err != nil {
			return err
		}
	}
	return nil
}
