package cmd

import (
	"github.com/pjedge/conseq/internal/conseq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <input.fasta> [more.fasta ...]",
	Short: "Compute one consensus per multi-FASTA file, in parallel",
	Long: `Compute a consensus sequence for each of the passed multi-FASTA files

Files are independent of one another and are processed concurrently; each
consensus is written next to its input as <name>.consensus.fasta`,
	Args: cobra.MinimumNArgs(1),
	Run:  conseq.RunBatch,
}

// set flags
func init() {
	RootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("workers", "w", 4, "number of files processed concurrently")

	viper.BindPFlag("workers", batchCmd.Flags().Lookup("workers"))
}
