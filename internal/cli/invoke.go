package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/chainsim/internal/dispatch"
	"github.com/roach88/chainsim/internal/ir"
	"github.com/roach88/chainsim/internal/journal"
	"github.com/roach88/chainsim/internal/registry"
)

// InvokeOptions holds flags for the invoke command.
type InvokeOptions struct {
	*RootOptions
	Args     string // positional arguments as a JSON array
	ReadOnly bool   // use the read-only entry point
	Strict   bool   // reject mutations on the read-only entry point
	Journal  string // optional SQLite journal path
}

// NewInvokeCommand creates the invoke command.
func NewInvokeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvokeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "invoke <contract> <operation>",
		Short: "Make one contract call against a fresh simulator",
		Long: `Make one contract call against a fresh simulator and print the result.

Arguments are positional and given as a JSON array. Integers must be whole
numbers; string lists are JSON arrays of strings.

Exit codes:
  0 - The call succeeded
  1 - The call returned success=false
  2 - Command error (malformed --args, journal not writable, etc.)

Examples:
  chainsim invoke facility-registration register-facility \
    --args '["Shelter A","Downtown",100,"555-0100"]'
  chainsim invoke facility-registration get-facility --args '[1]' --readonly
  chainsim invoke capacity-tracking get-available-capacity --args '[1]' --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return invokeCall(cmd.Context(), opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Args, "args", "[]", "positional arguments as a JSON array")
	cmd.Flags().BoolVar(&opts.ReadOnly, "readonly", false, "use the read-only entry point")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject mutating operations on the read-only entry point")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "append the call to this SQLite journal")

	return cmd
}

func invokeCall(ctx context.Context, opts *InvokeOptions, contract, operation string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	args, err := parseArgs(opts.Args)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --args", err)
	}

	dopts := []dispatch.Option{
		dispatch.WithLogger(newLogger(opts.RootOptions, cmd.ErrOrStderr())),
		dispatch.WithStrictReadOnly(opts.Strict),
	}
	if opts.Journal != "" {
		jr, err := journal.Open(opts.Journal)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer jr.Close()
		dopts = append(dopts, dispatch.WithRecorder(jr))
	}

	d, err := dispatch.New(registry.New(), dopts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create dispatcher", err)
	}

	var result ir.Result
	if opts.ReadOnly {
		result = d.CallReadOnly(ctx, contract, operation, args)
	} else {
		result = d.Call(ctx, contract, operation, args)
	}

	if err := formatter.Success(result); err != nil {
		return err
	}
	if !result.Success {
		return NewExitError(ExitFailure, fmt.Sprintf("%s.%s failed: %s", contract, operation, result))
	}
	return nil
}

// parseArgs decodes a JSON array of positional arguments.
func parseArgs(raw string) (ir.IRArray, error) {
	v, err := ir.UnmarshalIRValue([]byte(raw))
	if err != nil {
		return nil, err
	}
	arr, ok := v.(ir.IRArray)
	if !ok {
		return nil, fmt.Errorf("expected a JSON array, got %s", ir.TypeName(v))
	}
	return arr, nil
}
