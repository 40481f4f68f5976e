// Package config assembles the edmv configuration.
//
// Options is built once at startup from (config file, environment, command
// line) and passed into the engine; the core packages never read ambient
// state directly. Precedence is flag > EDMV_* environment variable > config
// file > default, wired through viper.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	configBaseName = "edmv"
	envPrefix      = "EDMV"

	// Viper keys, shared with the CLI flag names.
	KeyVerbose        = "verbose"
	KeySort           = "sort"
	KeyAbsolute       = "absolute"
	KeyDirectory      = "directory"
	KeyWithHidden     = "with-hidden"
	KeyExcludePattern = "exclude-pattern"
	KeyCopy           = "copy"
	KeyDryRun         = "dry-run"
	KeyOops           = "oops"
	KeyQuiet          = "quiet"
	KeyEditor         = "editor"
)

// Options carries the full configuration surface consumed by a run.
type Options struct {
	// Verbose enables step-by-step output of planned and executed operations.
	Verbose bool

	// Sort orders the whole catalog in natural order.
	Sort bool

	// Absolute renders catalog entries as absolute paths.
	Absolute bool

	// Directory takes directories themselves instead of their contents.
	Directory bool

	// WithHidden includes hidden (dot-prefixed) entries.
	WithHidden bool

	// ExcludePattern filters out entries whose text matches this regexp.
	ExcludePattern string

	// Copy copies entries to their targets instead of moving them.
	Copy bool

	// DryRun renders the plan without touching the filesystem.
	DryRun bool

	// Oops aborts immediately on any validation failure instead of prompting.
	Oops bool

	// Quiet suppresses all non-essential output. Exit codes are unaffected.
	Quiet bool

	// Editor overrides the VISUAL/EDITOR resolution when non-empty.
	Editor string

	// BaseDir is the directory relative targets resolve against.
	BaseDir string

	// Interactive reports whether prompts may be shown. The CLI sets it from
	// TTY detection; quiet and oops runs never prompt regardless.
	Interactive bool

	// Paths are the positional path or wildcard arguments.
	Paths []string
}

// Init installs defaults and reads the optional config file. A missing config
// file is not an error.
func Init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home + "/.config/" + configBaseName)
	}
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	viper.SetDefault(KeyVerbose, false)
	viper.SetDefault(KeySort, false)
	viper.SetDefault(KeyAbsolute, false)
	viper.SetDefault(KeyDirectory, false)
	viper.SetDefault(KeyWithHidden, false)
	viper.SetDefault(KeyExcludePattern, "")
	viper.SetDefault(KeyCopy, false)
	viper.SetDefault(KeyDryRun, false)
	viper.SetDefault(KeyOops, false)
	viper.SetDefault(KeyQuiet, false)
	viper.SetDefault(KeyEditor, "")

	// A missing or unreadable config file falls back to defaults; the flag
	// and environment layers still apply.
	_ = viper.ReadInConfig()
}

// FromViper builds Options from the current viper state.
func FromViper() *Options {
	return &Options{
		Verbose:        viper.GetBool(KeyVerbose),
		Sort:           viper.GetBool(KeySort),
		Absolute:       viper.GetBool(KeyAbsolute),
		Directory:      viper.GetBool(KeyDirectory),
		WithHidden:     viper.GetBool(KeyWithHidden),
		ExcludePattern: viper.GetString(KeyExcludePattern),
		Copy:           viper.GetBool(KeyCopy),
		DryRun:         viper.GetBool(KeyDryRun),
		Oops:           viper.GetBool(KeyOops),
		Quiet:          viper.GetBool(KeyQuiet),
		Editor:         viper.GetString(KeyEditor),
	}
}
