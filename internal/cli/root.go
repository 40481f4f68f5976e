// Package cli wires the edmv command line: flag surface, configuration
// binding, console output, and interactive prompts.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/edmv-dev/edmv/internal/catalog"
	"github.com/edmv-dev/edmv/internal/clock"
	"github.com/edmv-dev/edmv/internal/config"
	"github.com/edmv-dev/edmv/internal/editor"
	"github.com/edmv-dev/edmv/internal/engine"
	"github.com/edmv-dev/edmv/internal/fsops"
)

// rootCmd is the edmv command. The tool is a single verb: everything hangs
// off the root.
var rootCmd = &cobra.Command{
	Use:     "edmv [flags] paths...",
	Version: "dev",
	Short:   "Bulk rename, move, copy and delete using your text editor",
	Long: `edmv opens a listing of the given paths in your text editor. Change a line
to rename or move that entry, prefix it with // to delete it, then save and
quit: edmv reconciles the edited listing against the original and applies
the changes.

Lines pair with entries by position, so the number of non-blank lines must
stay the same. Leaving the listing untouched cancels the run.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// SetVersion overrides the build version shown by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	config.Init()

	f := rootCmd.Flags()
	f.BoolP(config.KeyVerbose, "v", viper.GetBool(config.KeyVerbose), "Verbose output")
	f.BoolP(config.KeySort, "s", viper.GetBool(config.KeySort), "Sort in natural order")
	f.BoolP(config.KeyAbsolute, "a", viper.GetBool(config.KeyAbsolute), "Treat as absolute paths")
	f.BoolP(config.KeyDirectory, "d", viper.GetBool(config.KeyDirectory), "Directories themselves, not their contents")
	f.BoolP(config.KeyWithHidden, "w", viper.GetBool(config.KeyWithHidden), "Include hidden files")
	f.StringP(config.KeyExcludePattern, "x", viper.GetString(config.KeyExcludePattern), "Exclude regular expression pattern")
	f.BoolP(config.KeyCopy, "c", viper.GetBool(config.KeyCopy), "Copy without moving")
	f.BoolP(config.KeyDryRun, "u", viper.GetBool(config.KeyDryRun), "Dry-run")
	f.BoolP(config.KeyOops, "o", viper.GetBool(config.KeyOops), "Abort on any collision instead of prompting")
	f.BoolP(config.KeyQuiet, "q", viper.GetBool(config.KeyQuiet), "No output to stdout/stderr even on error")
	f.String(config.KeyEditor, viper.GetString(config.KeyEditor), "Editor command (overrides VISUAL/EDITOR)")

	for _, key := range []string{
		config.KeyVerbose, config.KeySort, config.KeyAbsolute, config.KeyDirectory,
		config.KeyWithHidden, config.KeyExcludePattern, config.KeyCopy,
		config.KeyDryRun, config.KeyOops, config.KeyQuiet, config.KeyEditor,
	} {
		bindFlagToConfig(f.Lookup(key), key)
	}
}

// bindFlagToConfig wires a cobra flag to a viper key so config/env values
// feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func runRoot(cmd *cobra.Command, args []string) error {
	opts := config.FromViper()
	opts.Paths = args
	opts.Interactive = isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())

	cat, err := catalog.Build(opts.Paths, opts)
	if err != nil {
		return err
	}

	eng := engine.New(
		fsops.NewRealFS(),
		editor.NewExecLauncher(opts.Editor),
		NewConsolePrompter(),
		&clock.RealClock{},
	)

	res, err := eng.Run(cmd.Context(), &engine.RunRequest{Catalog: cat, Options: opts})
	if err != nil {
		if !opts.Quiet && len(res.Applied) > 0 {
			PrintWarning(fmt.Sprintf("%s completed before the failure and were not undone",
				PrintCount(len(res.Applied), "operation", "operations")))
			renderOps(res.Applied)
		}
		return err
	}

	if opts.Quiet {
		return nil
	}

	if res.Aborted {
		PrintInfo("Aborted; nothing was changed")
		return nil
	}

	if res.DryRun {
		PrintSection("Dry Run")
		seq := res.Sequence
		if len(seq) == 0 {
			PrintInfo("Nothing to do")
			return nil
		}
		if opts.Verbose {
			renderTable(os.Stdout, seq)
		} else {
			renderOps(seq)
		}
		return nil
	}

	if len(res.Applied) == 0 {
		PrintInfo("Nothing to do")
		return nil
	}
	if opts.Verbose {
		renderOps(res.Applied)
	}
	PrintSuccess(fmt.Sprintf("Processed %s in %s",
		PrintCount(len(res.Applied), "operation", "operations"),
		res.Duration.Round(time.Millisecond)))
	return nil
}

// Execute runs the root command and returns the process exit code. Error
// output respects --quiet; exit codes never do.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if !viper.GetBool(config.KeyQuiet) {
			PrintError(err.Error())
		}
		return 1
	}
	return 0
}
