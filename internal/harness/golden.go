package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/chainsim/internal/dispatch"
	"github.com/roach88/chainsim/internal/ir"
)

// GoldenDir is where RunWithGolden and AssertGolden keep golden files,
// relative to the test's package directory.
const GoldenDir = "testdata/golden"

// TraceSnapshot captures the complete trace for a scenario execution.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Session      string       `json:"session"`
	Trace        []TraceEvent `json:"trace"`
}

// NewTraceSnapshot builds the snapshot of a scenario run.
func NewTraceSnapshot(scenario *Scenario, result *Result) TraceSnapshot {
	return TraceSnapshot{
		ScenarioName: scenario.Name,
		Session:      dispatch.FixedSession(scenario.Session).Generate(),
		Trace:        result.Trace,
	}
}

// object converts the snapshot to an IRObject for canonical serialization.
func (s TraceSnapshot) object() ir.IRObject {
	trace := make(ir.IRArray, len(s.Trace))
	for i, event := range s.Trace {
		obj := ir.IRObject{
			"type": ir.IRString(event.Type),
			"seq":  ir.IRInt(event.Seq),
		}
		if event.Type == EventCall {
			args := event.Args
			if args == nil {
				args = ir.IRArray{}
			}
			obj["action"] = ir.IRString(event.Action)
			obj["read_only"] = ir.IRBool(event.ReadOnly)
			obj["args"] = args
			if event.Result != nil {
				obj["result"] = event.Result.Object()
			}
		}
		trace[i] = obj
	}

	return ir.IRObject{
		"scenario_name": ir.IRString(s.ScenarioName),
		"session":       ir.IRString(s.Session),
		"trace":         trace,
	}
}

// MarshalCanonical renders the snapshot as canonical JSON, the golden file format.
func (s TraceSnapshot) MarshalCanonical() ([]byte, error) {
	return ir.MarshalCanonical(s.object())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	traceJSON, err := NewTraceSnapshot(scenario, result).MarshalCanonical()
	if err != nil {
		return err
	}

	newGoldie(t).Assert(t, scenario.Name, traceJSON)
	return nil
}

// AssertGolden compares an already computed result's trace against a golden
// file without re-running the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	traceJSON, err := NewTraceSnapshot(scenario, result).MarshalCanonical()
	if err != nil {
		return err
	}

	newGoldie(t).Assert(t, scenario.Name, traceJSON)
	return nil
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
}
