// regen regenerates dispatch switch cases and renumbers sequential integer
// literals in checked-in source files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phobologic/regen/internal/config"
	"github.com/phobologic/regen/internal/model"
	"github.com/phobologic/regen/internal/regen"
	"github.com/phobologic/regen/internal/toon"
	"github.com/phobologic/regen/internal/watch"
)

var version = "dev"

// errStale is returned by check when any document needs regenerating.
var errStale = errors.New("generated code is stale; run regen")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	root       string
	verbose    bool
	dryRun     bool

	logger *zap.Logger
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	var showVersion bool

	cmd := &cobra.Command{
		Use:   "regen",
		Short: "Regenerate switch cases and renumber literals in source files",
		Long: `regen rewrites generated regions of checked-in source files.

Case jobs rebuild the bodies of marker-introduced switch blocks from the
entity list declared in a source file. Paragraph jobs renumber trailing
"<int>;" literals in a region, 100 per blank-line separated paragraph.
Counter jobs renumber call(<int>) literals 0, 1, 2, ... across a file.

Jobs are read from .regen.yaml in the workspace root; built-in defaults
are used when the file does not exist. Run without a subcommand to run
every job.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = newLogger(stderr, opts.verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, _ = fmt.Fprintf(stdout, "regen %s\n", version)
				return nil
			}
			return runJobs(cmd, opts, (*regen.Runner).All)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default <root>/"+config.DefaultFile+")")
	pf.StringVarP(&opts.root, "root", "C", ".", "workspace root")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log every document, including unchanged ones")
	pf.BoolVar(&opts.dryRun, "dry-run", false, "compute changes without writing")
	cmd.Flags().BoolVarP(&showVersion, "version", "V", false, "show version and exit")

	cmd.AddCommand(
		newJobCommand(opts, "all", "Run every job", (*regen.Runner).All),
		newJobCommand(opts, "cases", "Regenerate switch case blocks", (*regen.Runner).Cases),
		newJobCommand(opts, "paragraphs", "Renumber paragraph regions", (*regen.Runner).Paragraphs),
		newJobCommand(opts, "counters", "Renumber call counters", (*regen.Runner).Counters),
		newCheckCommand(opts),
		newWatchCommand(opts),
		newInitCommand(opts),
	)
	return cmd
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

// jobFunc is one of the Runner entry points.
type jobFunc func(*regen.Runner, context.Context) (*model.Report, error)

func newJobCommand(opts *options, use, short string, job jobFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobs(cmd, opts, job)
		},
	}
}

func runJobs(cmd *cobra.Command, opts *options, job jobFunc) error {
	r, _, err := newRunner(opts)
	if err != nil {
		return err
	}
	rep, err := job(r, cmd.Context())
	printReport(cmd.OutOrStdout(), rep)
	return err
}

func newCheckCommand(opts *options) *cobra.Command {
	var showDiff bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report documents whose generated code is out of date",
		Long: `check runs every job without writing and exits non-zero when any
document would change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := newRunner(opts)
			if err != nil {
				return err
			}
			r.DryRun = true
			r.Diff = showDiff

			rep, err := r.All(cmd.Context())
			out := cmd.OutOrStdout()
			printReport(out, rep)
			if err != nil {
				return err
			}
			if showDiff {
				for _, res := range rep.Results {
					if res.Diff != "" {
						_, _ = fmt.Fprint(out, res.Diff)
					}
				}
			}
			if rep.Stale() {
				return errStale
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff for each stale document")
	return cmd
}

func newWatchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run every job, then again whenever an input document changes",
		Long: `watch runs every job once and then watches every document the jobs
read, plus the config file. Globs are expanded at startup. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd.OutOrStdout(), opts)
		},
	}
}

func runWatch(ctx context.Context, stdout io.Writer, opts *options) error {
	r, cfgPath, err := newRunner(opts)
	if err != nil {
		return err
	}
	rep, err := r.All(ctx)
	printReport(stdout, rep)
	if err != nil {
		opts.logger.Error("initial run failed", zap.Error(err))
	}

	paths, err := r.Inputs()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgPath); err == nil {
		paths = append(paths, cfgPath)
	}

	w, err := watch.New(paths, func(ctx context.Context, changed []string) error {
		// Reload so edits to the config apply without a restart.
		next, _, err := newRunner(opts)
		if err != nil {
			return err
		}
		rep, err := next.All(ctx)
		printReport(stdout, rep)
		return err
	}, watch.Options{Logger: opts.logger})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-w.Done()
	w.Stop()
	return nil
}

// newRunner resolves the workspace root and loads the config. It also
// returns the config path that was consulted.
func newRunner(opts *options) (*regen.Runner, string, error) {
	root, err := filepath.Abs(opts.root)
	if err != nil {
		return nil, "", fmt.Errorf("resolving root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, "", fmt.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return nil, "", fmt.Errorf("%s: not a directory", root)
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(root, config.DefaultFile)
	}
	cfg, found, err := config.Load(cfgPath)
	if err != nil {
		return nil, "", err
	}
	if !found && opts.configPath != "" {
		return nil, "", fmt.Errorf("config %s: %w", opts.configPath, os.ErrNotExist)
	}
	opts.logger.Debug("loaded config",
		zap.String("path", cfgPath),
		zap.Bool("found", found))

	return &regen.Runner{
		Root:   root,
		Config: cfg,
		Logger: opts.logger,
		DryRun: opts.dryRun,
	}, cfgPath, nil
}

func printReport(w io.Writer, rep *model.Report) {
	if rep == nil || len(rep.Results) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, toon.Encode(rep))
}
