package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/chainsim/internal/harness"
	"github.com/roach88/chainsim/internal/ir"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Action string // optional - filter to "<contract>.<operation>"
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Scenario string     `json:"scenario"`
	Session  string     `json:"session"`
	Calls    []ir.Call  `json:"calls"`
	Stats    TraceStats `json:"stats"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	TotalCalls int  `json:"total_calls"`
	Failures   int  `json:"failures"`
	Resets     int  `json:"resets"`
	Pass       bool `json:"pass"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <scenario-file>",
		Short: "Run a scenario and print its call journal",
		Long: `Run a scenario and print every journaled call in seq order.

The journal is read back from SQLite after the run, so the output shows
exactly what was recorded: arguments, read-only flag and the result.

Examples:
  chainsim trace ./scenarios/capacity_example.yaml
  chainsim trace ./scenarios/capacity_example.yaml --action capacity-tracking.update-occupancy
  chainsim trace ./scenarios/capacity_example.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Action, "action", "", "filter to one <contract>.<operation>")

	return cmd
}

func runTrace(ctx context.Context, opts *TraceOptions, scenarioFile string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	scenario, err := harness.LoadScenario(scenarioFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	result, err := harness.RunWithOptions(ctx, scenario, harness.Options{
		Logger: newLogger(opts.RootOptions, cmd.ErrOrStderr()),
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	trace := TraceResult{
		Scenario: scenario.Name,
		Session:  harness.NewTraceSnapshot(scenario, result).Session,
		Calls:    filterCalls(result.Calls, opts.Action),
		Stats: TraceStats{
			TotalCalls: len(result.Calls),
			Failures:   result.Failures,
			Resets:     countResets(result.Trace),
			Pass:       result.Pass,
		},
	}

	if opts.Format == "json" {
		return outputTraceJSON(cmd, trace)
	}
	return outputTraceText(cmd, trace)
}

// filterCalls keeps calls to action, or all calls if action is empty.
func filterCalls(calls []ir.Call, action string) []ir.Call {
	if action == "" {
		return calls
	}
	filtered := []ir.Call{}
	for _, c := range calls {
		if c.Action() == action {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func countResets(trace []harness.TraceEvent) int {
	n := 0
	for _, event := range trace {
		if event.Type == harness.EventReset {
			n++
		}
	}
	return n
}

func outputTraceJSON(cmd *cobra.Command, trace TraceResult) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(CLIResponse{Status: "ok", Data: trace})
}

func outputTraceText(cmd *cobra.Command, trace TraceResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Scenario: %s\n", trace.Scenario)
	fmt.Fprintf(w, "Session: %s\n", trace.Session)
	fmt.Fprintln(w)

	if len(trace.Calls) == 0 {
		fmt.Fprintln(w, "No calls recorded.")
	}
	for _, c := range trace.Calls {
		args, err := ir.MarshalCanonical(c.Args)
		if err != nil {
			return fmt.Errorf("render args for seq %d: %w", c.Seq, err)
		}
		mode := "rw"
		if c.ReadOnly {
			mode = "ro"
		}
		fmt.Fprintf(w, "[%d] %s %s %s -> %s\n", c.Seq, mode, c.Action(), args, c.Result)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Stats: %d calls, %d failures, %d resets\n",
		trace.Stats.TotalCalls, trace.Stats.Failures, trace.Stats.Resets)
	if !trace.Stats.Pass {
		fmt.Fprintln(w, "Note: scenario expectations did not all hold (see chainsim test)")
	}
	return nil
}
