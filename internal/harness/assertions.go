package harness

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/chainsim/internal/dispatch"
	"github.com/roach88/chainsim/internal/ir"
	"github.com/roach88/chainsim/internal/journal"
	"github.com/roach88/chainsim/internal/registry"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			switch event.Type {
			case EventCall:
				fmt.Fprintf(&buf, "  [%d] %s %s -> %s\n", event.Seq, event.Action, render(event.Args), event.Result)
			case EventReset:
				fmt.Fprintf(&buf, "  [%d] reset\n", event.Seq)
			}
		}
	}

	return buf.String()
}

// AssertionContext provides what assertions need beyond the trace.
type AssertionContext struct {
	Ctx context.Context

	// Journal answers trace_count. If nil, the trace is counted instead.
	Journal *journal.Store
	Session string

	// Simulator is probed by final_value.
	Simulator *registry.Simulator
	Logger    *slog.Logger

	probe *dispatch.Dispatcher
}

// prober returns a strict read-only dispatcher over the simulator that
// journals nothing, creating it on first use.
func (a *AssertionContext) prober() (*dispatch.Dispatcher, error) {
	if a.probe != nil {
		return a.probe, nil
	}
	opts := []dispatch.Option{dispatch.WithStrictReadOnly(true)}
	if a.Logger != nil {
		opts = append(opts, dispatch.WithLogger(a.Logger))
	}
	d, err := dispatch.New(a.Simulator, opts...)
	if err != nil {
		return nil, err
	}
	a.probe = d
	return d, nil
}

// assertTraceContains checks if the trace contains a call matching
// the specified action whose args start with the expected args.
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	want, err := convertArgs(assertion.Args)
	if err != nil {
		return fmt.Errorf("trace_contains: %w", err)
	}

	for _, event := range trace {
		if event.Type == EventCall && event.Action == assertion.Action && argsHavePrefix(event.Args, want) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("action %s with args %s", assertion.Action, render(want)),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// argsHavePrefix reports whether the first len(prefix) args equal prefix.
func argsHavePrefix(args, prefix ir.IRArray) bool {
	if len(prefix) > len(args) {
		return false
	}
	for i, v := range prefix {
		if !ir.Contains(args[i], v) {
			return false
		}
	}
	return true
}

// assertTraceOrder checks if actions appear in the specified order.
// Actions don't need to be consecutive (intervening actions are allowed).
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	// First position of each expected action, 1-indexed.
	positions := make(map[string]int)
	for i, event := range trace {
		if event.Type != EventCall {
			continue
		}
		for _, expected := range assertion.Actions {
			if event.Action == expected && positions[expected] == 0 {
				positions[expected] = i + 1
			}
		}
	}

	for _, action := range assertion.Actions {
		if positions[action] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all actions present: %v", assertion.Actions),
				Actual:   fmt.Sprintf("missing action: %s", action),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(assertion.Actions); i++ {
		prev := assertion.Actions[i-1]
		curr := assertion.Actions[i]

		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("actions in order: %v", assertion.Actions),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks if the action was called exactly the specified
// number of times. The journal is the source of truth when available.
func assertTraceCount(trace []TraceEvent, assertion Assertion, actx *AssertionContext) error {
	count := 0
	if actx != nil && actx.Journal != nil {
		contract, operation, err := splitAction(assertion.Action)
		if err != nil {
			return fmt.Errorf("trace_count: %w", err)
		}
		count, err = actx.Journal.CountCalls(actx.Ctx, actx.Session, contract, operation)
		if err != nil {
			return fmt.Errorf("trace_count: %w", err)
		}
	} else {
		for _, event := range trace {
			if event.Type == EventCall && event.Action == assertion.Action {
				count++
			}
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Action),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}

	return nil
}

// assertFinalValue makes a read-only call against the final state and checks
// the result.
func assertFinalValue(actx *AssertionContext, assertion Assertion) error {
	contract, operation, err := splitAction(assertion.Action)
	if err != nil {
		return fmt.Errorf("final_value: %w", err)
	}
	args, err := convertArgs(assertion.Args)
	if err != nil {
		return fmt.Errorf("final_value: %w", err)
	}
	probe, err := actx.prober()
	if err != nil {
		return fmt.Errorf("final_value: %w", err)
	}

	res := probe.CallReadOnly(actx.Ctx, contract, operation, args)
	if msg := checkExpect(res, assertion.Expect); msg != "" {
		return &AssertionError{
			Type:     AssertFinalValue,
			Expected: fmt.Sprintf("%s %s to match", assertion.Action, render(args)),
			Actual:   msg,
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides journal and simulator access; trace-only
// assertions work without it.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion, actx)
		case AssertFinalValue:
			if actx == nil || actx.Simulator == nil {
				err = fmt.Errorf("assertion[%d]: final_value requires a simulator", i)
			} else {
				err = assertFinalValue(actx, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
