package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/circuitprobe/internal/app"
	"github.com/specialistvlad/circuitprobe/internal/harness"
	"github.com/specialistvlad/circuitprobe/internal/hcl"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: 2, Message: err.Error()}
}

// options are the persistent flags shared by every command.
type options struct {
	logLevel     string
	logFormat    string
	output       string
	catalogPaths []string

	outW io.Writer
	errW io.Writer
}

// app builds the application from the persistent flags. Logs go to errW so
// that structured output on outW stays parseable.
func (o *options) app() (*app.App, error) {
	switch o.output {
	case formatText, formatJSON, formatYAML:
	default:
		return nil, &ExitError{Code: 2, Message: fmt.Sprintf("invalid output %q: must be 'text', 'json' or 'yaml'", o.output)}
	}
	cfg, err := app.NewConfig(app.Config{
		CatalogPaths: o.catalogPaths,
		LogFormat:    o.logFormat,
		LogLevel:     o.logLevel,
	})
	if err != nil {
		return nil, usageError(err)
	}
	return app.NewApp(o.errW, cfg, hcl.NewLoader()), nil
}

// open builds the application and attaches to board of the document at path.
func (o *options) open(ctx context.Context, path, board string) (context.Context, *harness.Subcircuit, error) {
	a, err := o.app()
	if err != nil {
		return ctx, nil, err
	}
	ctx = a.Context(ctx)
	sub, err := harness.Open(ctx, a, path, board)
	if err != nil {
		return ctx, nil, err
	}
	return ctx, sub, nil
}

// NewCommand returns the root command with every subcommand attached.
func NewCommand(outW, errW io.Writer) *cobra.Command {
	o := &options{outW: outW, errW: errW}
	root := &cobra.Command{
		Use:   "circuitprobe",
		Short: "Inspect, probe and simulate digital-logic circuit documents",
		Long: `circuitprobe opens circuit documents written in HCL, resolves boards
and components by their human-facing names and drives them through a
simulator, the same way grading tests do.

Examples:
  circuitprobe boards adder.hcl
  circuitprobe count adder.hcl "adder 2" Gates --recursive
  circuitprobe eval adder.hcl "full adder" --set a=1 --set b=1 --get sum
  circuitprobe restrict adder.hcl "full adder" --whitelist Gates`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&o.logLevel, "log-level", "warn", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	flags.StringVar(&o.logFormat, "log-format", "text", "Log format: 'text', 'json' or 'pretty'.")
	flags.StringVarP(&o.output, "output", "o", formatText, "Output format: 'text', 'json' or 'yaml'.")
	flags.StringSliceVar(&o.catalogPaths, "catalog", nil, "Extra component manifests: files, directories or glob patterns.")

	root.AddCommand(
		newBoardsCommand(o),
		newCatalogCommand(o),
		newCountCommand(o),
		newLookupCommand(o),
		newRestrictCommand(o),
		newEvalCommand(o),
	)
	return root
}

// Run executes the command line args and returns the error to exit with.
func Run(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewCommand(outW, errW)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// exactArgs is cobra.ExactArgs reported as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
