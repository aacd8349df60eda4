package cmd

import (
	"github.com/pjedge/conseq/internal/conseq"
	"github.com/spf13/cobra"
)

// consensusCmd represents the consensus command
var consensusCmd = &cobra.Command{
	Use:   "consensus [input.fasta]",
	Short: "Compute the consensus of the reads in a multi-FASTA file",
	Long: `Compute a single consensus sequence from the reads in a multi-FASTA file

Each read is aligned against the partial order alignment graph built from the
reads before it and folded in; once every read is folded, the consensus is
extracted as the heaviest path through the graph. Reads may be DNA or
amino-acid sequences`,
	Run: conseq.RunConsensus,
}

// set flags
func init() {
	RootCmd.AddCommand(consensusCmd)

	consensusCmd.Flags().StringP("in", "i", "", "input multi-FASTA file with reads <FASTA>")
	consensusCmd.Flags().StringP("out", "o", "", "output file for the consensus record (default stdout)")
}
