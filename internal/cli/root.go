// Package cli implements the xfn command line.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/xfn/internal/catalog"
	"github.com/roach88/xfn/internal/config"
	"github.com/roach88/xfn/internal/fn"
	"github.com/roach88/xfn/internal/numeric"
)

// Version is the engine version recorded with every stored run.
var Version = "0.1.0"

// RootOptions holds global flags and the resolved configuration.
type RootOptions struct {
	ConfigFile string
	Verbose    bool
	Format     string // "json" | "text"
	DB         string

	// Config and Logger are set by the root command before any subcommand
	// runs. Subcommands built on their own fall back to flag values.
	Config *config.Config
	Logger *slog.Logger
}

// settings returns the loaded configuration, or one derived from the flag
// fields when the root command did not run.
func (o *RootOptions) settings() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	format := o.Format
	if format == "" {
		format = config.DefaultFormat
	}
	return &config.Config{
		Format:      format,
		Verbose:     o.Verbose,
		LogLevel:    config.DefaultLogLevel,
		Database:    o.DB,
		SuitesDir:   config.DefaultSuitesDir,
		Parallelism: config.DefaultParallelism,
	}
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewRootCommand creates the xfn root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "xfn",
		Short: "xfn - XPath value semantics engine",
		Long: `xfn evaluates XPath 2.0 / SPARQL 1.1 operators over booleans, integers,
floats, doubles, dateTimes and dayTimeDurations with exact overflow and
error semantics, and runs conformance suites against them.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigFile, cmd.Root().PersistentFlags())
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			opts.Config = cfg
			opts.Format = cfg.Format
			opts.Verbose = cfg.Verbose
			opts.DB = cfg.Database
			opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			}))
			if cfg.File != "" {
				opts.Logger.Debug("using config file", "path", cfg.File)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: ./xfn.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.DefaultFormat, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "SQLite database for conformance runs")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewFunctionsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))

	return cmd
}

// newRegistry loads the catalog and binds it to the default numeric engine.
func newRegistry() (*fn.Registry, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	return fn.New(cat, numeric.Default())
}
