package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/siyuan-infoblox/rs-imports-group/pkg/config"
	rigerrors "github.com/siyuan-infoblox/rs-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/rs-imports-group/pkg/formatter"
	"github.com/siyuan-infoblox/rs-imports-group/pkg/logging"
	"github.com/siyuan-infoblox/rs-imports-group/pkg/utils"
	"github.com/siyuan-infoblox/rs-imports-group/pkg/version"
)

const (
	UseDescription   = "rig [flags] [PATH...] [-- RUSTFMT_ARGS...]"
	ShortDescription = "Rust imports grouper - A tool to group and merge Rust use declarations"
	LongDescription  = `rig is a command-line tool that groups and merges Rust use declarations.

Every contiguous run of top-level use declarations is rewritten into groups:
1. std, core and alloc (plus any configured std crates)
2. One group per external crate
3. Crate relative paths (crate, self, super)

Declarations sharing a group and a path prefix are merged into nested lists.
Groups of the same origin stay adjacent, other groups are separated by a blank line.
The result is passed through rustfmt unless --skip-rustfmt is set.

PATH can be either a single Rust file or a directory. When a directory is specified,
all Rust source files in the directory and subdirectories are processed recursively,
skipping target, vendor and hidden directories. Without PATH, source is read from
stdin and written to stdout.

Arguments after -- are passed to rustfmt.`
)

type options struct {
	inPlace     bool
	check       bool
	diff        bool
	skipRustfmt bool
	rustfmtPath string
	edition     string
	stdCrates   []string
	jobs        int
	configPath  string
	verbose     bool
	showVersion bool
	versionStr  string
}

func newRootCmd(versionStr string) *cobra.Command {
	o := &options{versionStr: versionStr}
	rootCmd := &cobra.Command{
		Use:          UseDescription,
		Short:        ShortDescription,
		Long:         LongDescription,
		Args:         cobra.ArbitraryArgs,
		RunE:         o.run,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&o.inPlace, "in-place", false, "Modify the files in place instead of printing to stdout")
	flags.BoolVar(&o.check, "check", false, "Report files whose use declarations would change and exit with an error")
	flags.BoolVar(&o.diff, "diff", false, "Print a unified diff of the changes instead of the formatted source")
	flags.BoolVar(&o.skipRustfmt, "skip-rustfmt", false, "Don't pass the result through rustfmt")
	flags.StringVar(&o.rustfmtPath, "rustfmt", rustfmtDefault(), "Path of the rustfmt binary")
	flags.StringVar(&o.edition, "edition", "", "Rust edition passed to rustfmt (defaults to the edition in Cargo.toml)")
	flags.StringSliceVar(&o.stdCrates, "std-crates", []string{}, "Comma-separated list of extra crates grouped with std (e.g., proc_macro,test)")
	flags.IntVarP(&o.jobs, "jobs", "j", 0, "Number of files processed in parallel (defaults to the number of CPUs)")
	flags.StringVar(&o.configPath, "config", "", "Config file (defaults to the nearest .rig.toml, rig.toml, .rig.yaml, .rig.yml, rig.yaml or rig.yml)")
	flags.BoolVar(&o.verbose, "verbose", false, "Enable debug logging on stderr")
	flags.BoolVarP(&o.showVersion, "version", "v", false, "Show version information")

	rootCmd.MarkFlagsMutuallyExclusive("check", "diff", "in-place")
	return rootCmd
}

func rustfmtDefault() string {
	return config.Default().Rustfmt.Path
}

// loadConfig reads the explicit config file, or the one found next to the first path
func (o *options) loadConfig(paths []string) (*config.Config, string, error) {
	if o.configPath != "" {
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return nil, "", err
		}
		return cfg, o.configPath, nil
	}

	var dir string
	if len(paths) > 0 {
		dir = paths[0]
		if isDir, err := utils.IsDirectory(dir); err != nil || !isDir {
			dir = filepath.Dir(dir)
		}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", rigerrors.ErrMsgFailedToGetWorkingDir, err)
		}
		dir = wd
	}
	return config.LoadFrom(dir)
}

// applyFlags overrides config file values with the flags set on the command line
func (o *options) applyFlags(cmd *cobra.Command, cfg *config.Config, rustfmtArgs []string) error {
	flags := cmd.Flags()
	if flags.Changed("skip-rustfmt") {
		cfg.SkipRustfmt = o.skipRustfmt
	}
	if flags.Changed("rustfmt") {
		cfg.Rustfmt.Path = o.rustfmtPath
	}
	if flags.Changed("edition") {
		cfg.Rustfmt.Edition = o.edition
	}
	if flags.Changed("std-crates") {
		cfg.StdCrates = append(cfg.StdCrates, o.stdCrates...)
	}
	if flags.Changed("jobs") {
		cfg.Jobs = o.jobs
	}
	cfg.Rustfmt.Args = append(cfg.Rustfmt.Args, rustfmtArgs...)
	return cfg.Validate()
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	// Handle version flag
	if o.showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get(o.versionStr))
		return nil
	}

	paths := args
	var rustfmtArgs []string
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		paths, rustfmtArgs = args[:dash], args[dash:]
	}
	if o.inPlace && len(paths) == 0 {
		return errors.New(rigerrors.ErrMsgInPlaceRequiresPath)
	}

	logger, err := logging.New(o.verbose)
	if err != nil {
		return fmt.Errorf("%s: %w", rigerrors.ErrMsgFailedToInitLogger, err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, cfgPath, err := o.loadConfig(paths)
	if err != nil {
		return fmt.Errorf("%s: %w", rigerrors.ErrMsgFailedToLoadConfig, err)
	}
	if cfgPath != "" {
		logger.Debug("using config file", zap.String("path", cfgPath))
	}
	if err := o.applyFlags(cmd, cfg, rustfmtArgs); err != nil {
		return fmt.Errorf("%s: %w", rigerrors.ErrMsgFailedToLoadConfig, err)
	}

	g := formatter.New(formatter.FormatterConfig{
		InPlace:     o.inPlace,
		Check:       o.check,
		Diff:        o.diff,
		SkipRustfmt: cfg.SkipRustfmt,
		RustfmtPath: cfg.Rustfmt.Path,
		RustfmtArgs: cfg.Rustfmt.Args,
		Edition:     cfg.Rustfmt.Edition,
		StdCrates:   cfg.StdCrates,
		Exclude:     cfg.Exclude,
		Jobs:        cfg.Jobs,
		Logger:      logger,
		Out:         cmd.OutOrStdout(),
	})

	ctx := cmd.Context()
	if len(paths) == 0 {
		return g.ProcessStdin(ctx, cmd.InOrStdin())
	}

	var errs []error
	for _, path := range paths {
		if err := g.ProcessPath(ctx, path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func Execute(versionStr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd(versionStr).ExecuteContext(ctx)
}
