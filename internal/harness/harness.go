package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/chainsim/internal/dispatch"
	"github.com/roach88/chainsim/internal/ir"
	"github.com/roach88/chainsim/internal/journal"
	"github.com/roach88/chainsim/internal/registry"
)

// Harness executes one scenario against one fresh simulator.
type Harness struct {
	dispatcher *dispatch.Dispatcher
	journal    *journal.Store
	logger     *slog.Logger
}

// Options configures a scenario run.
type Options struct {
	// Logger receives dispatcher and harness logs. Defaults to discarding.
	Logger *slog.Logger

	// StrictReadOnly rejects mutating calls sent with readonly: true.
	StrictReadOnly bool

	// Metrics, if set, counts every dispatched step.
	Metrics *dispatch.Metrics
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh simulator and a fresh in-memory journal.
// The session token is fixed so traces are reproducible.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithOptions(context.Background(), scenario, Options{})
}

// RunWithOptions is Run with an explicit context and options.
//
// Execution flow:
// 1. Create fresh in-memory journal and simulator
// 2. Execute steps, validating expect clauses
// 3. Evaluate assertions
// 4. Read the journal back into the result
func RunWithOptions(ctx context.Context, scenario *Scenario, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	jr, err := journal.Open(journal.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory journal: %w", err)
	}
	defer jr.Close()

	d, err := dispatch.New(registry.New(),
		dispatch.WithRecorder(jr),
		dispatch.WithSessionGenerator(dispatch.FixedSession(scenario.Session)),
		dispatch.WithLogger(logger),
		dispatch.WithStrictReadOnly(opts.StrictReadOnly),
		dispatch.WithMetrics(opts.Metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	h := &Harness{
		dispatcher: d,
		journal:    jr,
		logger:     logger,
	}

	result := NewResult()
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	actx := &AssertionContext{
		Ctx:       ctx,
		Journal:   jr,
		Session:   d.Session(),
		Simulator: d.Simulator(),
		Logger:    logger,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	calls, err := jr.ReadCalls(ctx, d.Session())
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	result.Calls = calls

	failures, err := jr.CountFailures(ctx, d.Session())
	if err != nil {
		return nil, fmt.Errorf("failed to count failures: %w", err)
	}
	result.Failures = failures

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"session", d.Session(),
		"steps", len(scenario.Steps),
		"pass", result.Pass,
	)

	return result, nil
}

// executeSteps runs every step in order.
// Expect mismatches are recorded on result; they do not stop the run.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		if step.Reset {
			h.dispatcher.Reset()
			result.AddResetTrace(h.dispatcher.Seq())
			h.logger.Debug("reset step completed", "step", i)
			continue
		}

		contract, operation, err := splitAction(step.Call)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		args, err := convertArgs(step.Args)
		if err != nil {
			return fmt.Errorf("step %d: failed to convert args: %w", i, err)
		}

		var res ir.Result
		if step.ReadOnly {
			res = h.dispatcher.CallReadOnly(ctx, contract, operation, args)
		} else {
			res = h.dispatcher.Call(ctx, contract, operation, args)
		}
		result.AddCallTrace(h.dispatcher.Seq(), step.Call, step.ReadOnly, args, res)

		if step.Expect != nil {
			if msg := checkExpect(res, step.Expect); msg != "" {
				result.AddError(fmt.Sprintf("step %d (%s): %s", i, step.Call, msg))
			}
		}

		h.logger.Debug("call step completed",
			"step", i,
			"action", step.Call,
			"read_only", step.ReadOnly,
			"success", res.Success,
		)
	}
	return nil
}

// checkExpect compares a result against an expect clause.
// Returns an empty string on match.
func checkExpect(actual ir.Result, e *Expect) string {
	if e.Success != nil && actual.Success != *e.Success {
		return fmt.Sprintf("expected success=%t, got %s", *e.Success, actual)
	}
	if e.HasValue {
		want, err := ir.FromAny(e.Value)
		if err != nil {
			return fmt.Sprintf("invalid expected value: %v", err)
		}
		if !actual.Success {
			return fmt.Sprintf("expected value %s, got %s", render(want), actual)
		}
		if !ir.Contains(actual.Value, want) {
			return fmt.Sprintf("expected value %s, got %s", render(want), actual)
		}
	}
	if e.HasError {
		want, err := ir.FromAny(e.Error)
		if err != nil {
			return fmt.Sprintf("invalid expected error: %v", err)
		}
		if actual.Success {
			return fmt.Sprintf("expected error %s, got %s", render(want), actual)
		}
		if !ir.Equal(actual.Error, want) {
			return fmt.Sprintf("expected error %s, got %s", render(want), actual)
		}
	}
	return ""
}

// render formats v as canonical JSON for messages.
func render(v ir.IRValue) string {
	b, err := ir.MarshalCanonical(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
