package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenariosDir = "../harness/testdata/scenarios"

func runTraceCommand(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTraceCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTraceMissingScenarioArg(t *testing.T) {
	_, err := runTraceCommand(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTraceScenarioNotFound(t *testing.T) {
	_, err := runTraceCommand(t, "text", "/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load scenario")
}

func TestTraceText(t *testing.T) {
	out, err := runTraceCommand(t, "text", scenariosDir+"/capacity_example.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "Scenario: capacity_example\n")
	assert.Contains(t, out, "Session: capacity-example\n")
	assert.Contains(t, out, "[1] rw facility-registration.register-facility [\"Shelter A\",\"Downtown\",100,\"555-0100\"] -> {\"success\":true,\"value\":1}\n")
	assert.Contains(t, out, "[2] rw capacity-tracking.update-occupancy [1,40] -> {\"success\":true,\"value\":true}\n")
	assert.Contains(t, out, "[3] ro capacity-tracking.get-available-capacity [1] -> {\"success\":true,\"value\":60}\n")
	assert.Contains(t, out, "Stats: 3 calls, 0 failures, 0 resets")
	assert.NotContains(t, out, "Note:")
}

func TestTraceActionFilter(t *testing.T) {
	out, err := runTraceCommand(t, "text", scenariosDir+"/capacity_example.yaml",
		"--action", "capacity-tracking.update-occupancy")
	require.NoError(t, err)

	assert.Contains(t, out, "capacity-tracking.update-occupancy")
	assert.NotContains(t, out, "facility-registration.register-facility")
	// Stats cover the whole run, not the filtered view.
	assert.Contains(t, out, "Stats: 3 calls")
}

func TestTraceActionFilterNoMatch(t *testing.T) {
	out, err := runTraceCommand(t, "text", scenariosDir+"/capacity_example.yaml",
		"--action", "staff-certification.register-staff")
	require.NoError(t, err)
	assert.Contains(t, out, "No calls recorded.")
}

func TestTraceJSONWithReset(t *testing.T) {
	out, err := runTraceCommand(t, "json", scenariosDir+"/reset_counters.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   TraceResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "reset_counters", resp.Data.Scenario)
	assert.Equal(t, "reset-counters", resp.Data.Session)

	stats := resp.Data.Stats
	assert.Equal(t, 4, stats.TotalCalls)
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, 1, stats.Resets)
	assert.True(t, stats.Pass)

	require.Len(t, resp.Data.Calls, 4)
	seqs := make([]int64, len(resp.Data.Calls))
	for i, c := range resp.Data.Calls {
		seqs[i] = c.Seq
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, seqs)
	assert.True(t, resp.Data.Calls[1].ReadOnly)
	assert.False(t, resp.Data.Calls[3].Result.Success)
}
