package conseq

import (
	"github.com/pjedge/conseq/config"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// RunBatch is the Run function of the batch command: every argument is a
// multi-FASTA file whose reads are folded into one consensus each
func RunBatch(cmd *cobra.Command, args []string) {
	c := config.New()

	if len(args) == 0 {
		logger.Fatal("no input files passed to batch")
	}

	if err := Batch(args, c); err != nil {
		logger.Fatal(err)
	}
}

// Batch computes one consensus per input file. A single consensus
// computation is sequential, since each folded sequence needs the fully
// updated graph of the one before it, but separate files share no state
// and run concurrently on up to c.Workers goroutines
func Batch(paths []string, c *config.Config) error {
	p := inputParser{}

	var eg errgroup.Group
	eg.SetLimit(c.Workers)

	for _, in := range paths {
		in := in
		eg.Go(func() error {
			return ConsensusFile(in, p.guessOutput(in), c)
		})
	}

	return eg.Wait()
}
