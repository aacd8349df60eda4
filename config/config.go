// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config is the root-level settings struct and is a mix of settings
// available in a settings file and those bound from the command line
type Config struct {
	// score for a pair of equal symbols
	Match int `mapstructure:"match"`

	// score for a pair of differing symbols
	Mismatch int `mapstructure:"mismatch"`

	// score for opening a gap
	GapOpen int `mapstructure:"gap-open"`

	// score for each extended gap position
	GapExtend int `mapstructure:"gap-extend"`

	// alignment mode: local, global or semi-global
	Mode string `mapstructure:"mode"`

	// upper bound on the consensus length; longer output is truncated
	MaxLength int `mapstructure:"max-length"`

	// upper bound on alignment table cells before an alignment is refused
	MaxDPCells int `mapstructure:"max-dp-cells"`

	// number of files processed concurrently by the batch command
	Workers int `mapstructure:"workers"`
}

// SetDefaults seeds viper with the compiled-in settings. Bound command
// line flags and a settings file both override them
func SetDefaults() {
	viper.SetDefault("match", 5)
	viper.SetDefault("mismatch", -4)
	viper.SetDefault("gap-open", -3)
	viper.SetDefault("gap-extend", -1)
	viper.SetDefault("mode", "global")
	viper.SetDefault("max-length", 16384)
	viper.SetDefault("max-dp-cells", 1<<28)
	viper.SetDefault("workers", 4)
}

// New returns a new Config struct populated by Viper settings (either from
// a settings file) and/or command line arguments
func New() *Config {
	SetDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}

	return &c
}
