package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/chainsim/internal/dispatch"
	"github.com/roach88/chainsim/internal/ir"
)

func boolPtr(b bool) *bool { return &b }

func shelterArgs() []any {
	return []any{"Shelter A", "Downtown", 100, "555-0100"}
}

func TestRun_SpecExample(t *testing.T) {
	scenario := &Scenario{
		Name:        "example",
		Description: "register, occupy, read capacity",
		Session:     "test-session-example",
		Steps: []Step{
			{Call: "facility-registration.register-facility", Args: shelterArgs(), Expect: &Expect{Success: boolPtr(true), Value: 1, HasValue: true}},
			{Call: "capacity-tracking.update-occupancy", Args: []any{1, 40}, Expect: &Expect{Value: true, HasValue: true}},
			{Call: "capacity-tracking.get-available-capacity", Args: []any{1}, ReadOnly: true, Expect: &Expect{Value: 60, HasValue: true}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Trace, 3)
	for i, event := range result.Trace {
		assert.Equal(t, EventCall, event.Type)
		assert.Equal(t, int64(i+1), event.Seq)
		require.NotNil(t, event.Result)
		assert.True(t, event.Result.Success)
	}
	assert.True(t, result.Trace[2].ReadOnly)

	require.Len(t, result.Calls, 3)
	for _, call := range result.Calls {
		assert.Equal(t, "test-session-example", call.Session)
	}
	assert.True(t, ir.Equal(ir.IRInt(60), result.Calls[2].Result.Value))
}

func TestRun_ExpectMismatchFailsButContinues(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "wrong expectations",
		Steps: []Step{
			{Call: "facility-registration.register-facility", Args: shelterArgs(), Expect: &Expect{Value: 2, HasValue: true}},
			{Call: "facility-registration.get-facility", Args: []any{1}, ReadOnly: true, Expect: &Expect{Value: nil, HasValue: true}},
			{Call: "facility-registration.update-facility-status", Args: []any{9, false}, Expect: &Expect{Success: boolPtr(true)}},
			{Call: "facility-registration.get-facility-count", ReadOnly: true, Expect: &Expect{Value: 1, HasValue: true}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "step 0 (facility-registration.register-facility): expected value 2")
	assert.Contains(t, result.Errors[1], "expected value null")
	assert.Contains(t, result.Errors[2], "expected success=true")
	assert.Len(t, result.Trace, 4)
	assert.Equal(t, 1, result.Failures)
}

func TestRun_DefaultSession(t *testing.T) {
	scenario := &Scenario{
		Name:        "default_session",
		Description: "no session given",
		Steps:       []Step{{Call: "facility-registration.get-facility-count", ReadOnly: true}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.Len(t, result.Calls, 1)
	assert.Equal(t, "test-session-default", result.Calls[0].Session)
}

func TestRun_ResetStep(t *testing.T) {
	scenario := &Scenario{
		Name:        "reset",
		Description: "reset restarts counters",
		Steps: []Step{
			{Call: "staff-certification.register-staff", Args: []any{"Ana", "nurse", []any{"CPR"}}},
			{Reset: true},
			{Call: "staff-certification.register-staff", Args: []any{"Ben", "driver", []any{}}, Expect: &Expect{Value: 1, HasValue: true}},
			{Call: "staff-certification.get-staff-member", Args: []any{1}, ReadOnly: true, Expect: &Expect{Value: map[string]any{"name": "Ben"}, HasValue: true}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Trace, 4)
	assert.Equal(t, EventReset, result.Trace[1].Type)
	assert.Equal(t, int64(1), result.Trace[1].Seq)
	assert.Equal(t, int64(2), result.Trace[2].Seq)

	// Resets are not journaled.
	assert.Len(t, result.Calls, 3)
}

func TestRunWithOptions_StrictReadOnly(t *testing.T) {
	scenario := &Scenario{
		Name:        "strict",
		Description: "mutation on the read-only path",
		Steps: []Step{
			{Call: "facility-registration.register-facility", Args: shelterArgs(), ReadOnly: true,
				Expect: &Expect{Error: dispatch.MsgNotReadOnly, HasError: true}},
		},
	}

	result, err := RunWithOptions(context.Background(), scenario, Options{StrictReadOnly: true})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	lenient, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, lenient.Pass)
}

func TestRun_SampleScenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_IsDeterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/staff_assignment.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := NewTraceSnapshot(scenario, first).MarshalCanonical()
	require.NoError(t, err)
	b, err := NewTraceSnapshot(scenario, second).MarshalCanonical()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestCheckExpect(t *testing.T) {
	tests := []struct {
		name   string
		actual ir.Result
		expect Expect
		match  bool
	}{
		{"success only", ir.Ok(ir.IRInt(1)), Expect{Success: boolPtr(true)}, true},
		{"success mismatch", ir.Fail(ir.IRInt(1)), Expect{Success: boolPtr(true)}, false},
		{"value subset", ir.Ok(ir.IRObject{"a": ir.IRInt(1), "b": ir.IRInt(2)}), Expect{Value: map[string]any{"a": 1}, HasValue: true}, true},
		{"null value", ir.Ok(nil), Expect{Value: nil, HasValue: true}, true},
		{"null vs record", ir.Ok(ir.IRObject{"a": ir.IRInt(1)}), Expect{Value: nil, HasValue: true}, false},
		{"value on failure", ir.Fail(ir.IRInt(1)), Expect{Value: 1, HasValue: true}, false},
		{"error code", ir.Fail(ir.IRInt(1)), Expect{Error: 1, HasError: true}, true},
		{"error message", ir.Fail(ir.IRString("Unknown method")), Expect{Error: "Unknown method", HasError: true}, true},
		{"error on success", ir.Ok(ir.IRInt(1)), Expect{Error: 1, HasError: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := checkExpect(tt.actual, &tt.expect)
			if tt.match {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}
