package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"schema-generator/internal/config"
	"schema-generator/internal/diagnostic"
	"schema-generator/internal/plan"
	"schema-generator/internal/watch"
)

type options struct {
	configFile    string
	input         string
	registrations string
	output        string
	module        string
	force         bool
	watch         bool
	dump          bool
	logLevel      string
	noColor       bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "schema-generator",
		Short: "Generate a bean/enum schema from Go declarations",
		Long: `schema-generator compiles Go structs, interfaces and constant-backed
enums into the schema document read by the runtime configuration loader.

Input is either a directory, scanned recursively, or a Go file listing
schema.Register[T]() calls. Unchanged declarations keep their previous
text; the document is only replaced when every type maps.

Examples:
  schema-generator --input ./gamedata --output ./schema/cfg.schema
  schema-generator --registrations ./gamedata/registry.go --watch`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file path (default "+config.DefaultFile+" when present)")
	flags.StringVarP(&opts.input, "input", "i", "", "directory to scan; wins over --registrations")
	flags.StringVarP(&opts.registrations, "registrations", "r", "", "Go file with Register calls")
	flags.StringVarP(&opts.output, "output", "o", "", "schema document to write (default "+config.DefaultOutput+")")
	flags.StringVarP(&opts.module, "module", "m", "", "module name of the document (default "+config.DefaultModule+")")
	flags.BoolVarP(&opts.force, "force", "f", false, "regenerate every entry, ignoring the previous document")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "regenerate whenever Go sources change")
	flags.BoolVar(&opts.dump, "dump", false, "print the extracted declarations instead of writing")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (default from "+EnvLogLevel+", else info)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		// Diagnostics were already reported in full.
		var diagErr *diagnostic.Error
		if !errors.As(err, &diagErr) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}

		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts options) error {
	if opts.noColor {
		color.NoColor = true
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.logLevel)

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}

	applyFlags(cmd, opts, cfg)

	runCfg := plan.FromConfig(cfg)
	runCfg.Force = opts.force

	compiler := plan.NewCompiler(runCfg, logger)

	if opts.dump {
		if err := dumpSettings(cmd.OutOrStdout(), cfg); err != nil {
			return err
		}

		res, err := compiler.Compile()
		if res != nil {
			dumpDeclarations(cmd.OutOrStdout(), res.Declarations)
		}

		return report(cmd, err)
	}

	_, err = compiler.Run()
	if err := report(cmd, err); err != nil {
		// Watch mode outlives failing runs, not a broken setup.
		var diagErr *diagnostic.Error
		if !opts.watch || !errors.As(err, &diagErr) {
			return err
		}
	}

	if !opts.watch {
		return nil
	}

	return watchSources(cmd, cfg, compiler, logger)
}

// applyFlags overrides config values with the flags given on the command line.
func applyFlags(cmd *cobra.Command, opts options, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("input") {
		cfg.Input = opts.input
	}

	if flags.Changed("registrations") {
		cfg.Registrations = opts.registrations
	}

	if flags.Changed("output") {
		cfg.Output = opts.output
	}

	if flags.Changed("module") {
		cfg.Module = opts.module
	}
}

// report prints the diagnostics report of a failed run. Every error is
// returned unchanged.
func report(cmd *cobra.Command, err error) error {
	var diagErr *diagnostic.Error
	if errors.As(err, &diagErr) {
		diagnostic.Report(cmd.ErrOrStderr(), diagErr.Diagnostics)
	}

	return err
}

func watchSources(cmd *cobra.Command, cfg *config.Config, compiler *plan.Compiler, logger zerolog.Logger) error {
	root := cfg.Input
	if root == "" {
		root = filepath.Dir(cfg.Registrations)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &watch.Watcher{
		Root:     root,
		Exclude:  cfg.ExcludeDirs,
		Debounce: cfg.WatchDebounce,
		Logger:   logger,
		Run: func() error {
			_, err := compiler.Run()
			return report(cmd, err)
		},
	}

	return w.Watch(ctx)
}
