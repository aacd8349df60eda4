// Package cmd is for command line interactions with the conseq application
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "conseq",
	Short: `Compute a consensus sequence from noisy reads via partial order alignment.
Reads are folded one at a time into an alignment graph; the consensus is the
heaviest path through the final graph`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initSettings)

	// scoring and mode flags are shared by every subcommand
	RootCmd.PersistentFlags().String("settings", "", "path to a YAML settings file")
	RootCmd.PersistentFlags().StringP("mode", "m", "global", "alignment mode: local, global or semi-global")
	RootCmd.PersistentFlags().Int("match", 5, "score for a matching symbol")
	RootCmd.PersistentFlags().Int("mismatch", -4, "score for a mismatching symbol")
	RootCmd.PersistentFlags().Int("gap-open", -3, "score for opening a gap")
	RootCmd.PersistentFlags().Int("gap-extend", -1, "score for each extended gap position")
	RootCmd.PersistentFlags().IntP("max-length", "l", 16384, "maximum consensus length; longer output is truncated")

	viper.BindPFlag("settings", RootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("mode", RootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("match", RootCmd.PersistentFlags().Lookup("match"))
	viper.BindPFlag("mismatch", RootCmd.PersistentFlags().Lookup("mismatch"))
	viper.BindPFlag("gap-open", RootCmd.PersistentFlags().Lookup("gap-open"))
	viper.BindPFlag("gap-extend", RootCmd.PersistentFlags().Lookup("gap-extend"))
	viper.BindPFlag("max-length", RootCmd.PersistentFlags().Lookup("max-length"))
}

// initSettings reads the optional settings file into viper before any
// command runs
func initSettings() {
	settings := viper.GetString("settings")
	if settings == "" {
		return
	}

	viper.SetConfigFile(settings)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("failed to read settings file %s: %v", settings, err)
	}
}
