package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: test_scenario
description: "Test scenario for validation"
session: fixed
steps:
  - call: facility-registration.register-facility
    args: ["Shelter A", "Downtown", 100, "555-0100"]
    expect: { success: true, value: 1 }
  - reset: true
assertions:
  - type: trace_contains
    action: facility-registration.register-facility
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "fixed", scenario.Session)
	require.Len(t, scenario.Steps, 2)
	assert.Equal(t, "facility-registration.register-facility", scenario.Steps[0].Call)
	assert.Equal(t, []any{"Shelter A", "Downtown", 100, "555-0100"}, scenario.Steps[0].Args)
	assert.True(t, scenario.Steps[1].Reset)
	assert.Len(t, scenario.Assertions, 1)

	expect := scenario.Steps[0].Expect
	require.NotNil(t, expect)
	require.NotNil(t, expect.Success)
	assert.True(t, *expect.Success)
	assert.True(t, expect.HasValue)
	assert.Equal(t, 1, expect.Value)
	assert.False(t, expect.HasError)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_ExpectNullDiffersFromAbsent(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: nulls
description: "null vs absent"
steps:
  - call: facility-registration.get-facility
    args: [1]
    expect: { value: null }
  - call: facility-registration.get-facility
    args: [1]
    expect: { success: true }
`))
	require.NoError(t, err)

	withNull := scenario.Steps[0].Expect
	assert.True(t, withNull.HasValue)
	assert.Nil(t, withNull.Value)
	assert.Nil(t, withNull.Success)

	withoutValue := scenario.Steps[1].Expect
	assert.False(t, withoutValue.HasValue)
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		contains string
	}{
		{
			name: "missing name",
			yaml: `
description: "d"
steps:
  - reset: true
`,
			contains: "name is required",
		},
		{
			name: "missing description",
			yaml: `
name: n
steps:
  - reset: true
`,
			contains: "description is required",
		},
		{
			name: "no steps",
			yaml: `
name: n
description: "d"
steps: []
`,
			contains: "steps list is required",
		},
		{
			name: "unknown top-level field",
			yaml: `
name: n
description: "d"
step:
  - reset: true
`,
			contains: "failed to parse YAML",
		},
		{
			name: "unknown expect field",
			yaml: `
name: n
description: "d"
steps:
  - call: a.b
    expect: { sucess: true }
`,
			contains: "field sucess not found",
		},
		{
			name: "call without operation",
			yaml: `
name: n
description: "d"
steps:
  - call: facility-registration
`,
			contains: "must be <contract>.<operation>",
		},
		{
			name: "empty step",
			yaml: `
name: n
description: "d"
steps:
  - readonly: true
`,
			contains: "call or reset is required",
		},
		{
			name: "reset with call",
			yaml: `
name: n
description: "d"
steps:
  - reset: true
    call: a.b
`,
			contains: "reset step takes no other fields",
		},
		{
			name: "fractional arg",
			yaml: `
name: n
description: "d"
steps:
  - call: a.b
    args: [1.5]
`,
			contains: "floats are forbidden",
		},
		{
			name: "empty expect",
			yaml: `
name: n
description: "d"
steps:
  - call: a.b
    expect: {}
`,
			contains: "at least one of success, value or error",
		},
		{
			name: "value and error",
			yaml: `
name: n
description: "d"
steps:
  - call: a.b
    expect: { value: 1, error: 1 }
`,
			contains: "mutually exclusive",
		},
		{
			name: "value with success false",
			yaml: `
name: n
description: "d"
steps:
  - call: a.b
    expect: { success: false, value: 1 }
`,
			contains: "value given with success: false",
		},
		{
			name: "unknown assertion",
			yaml: `
name: n
description: "d"
steps:
  - reset: true
assertions:
  - type: final_state
`,
			contains: `unknown assertion type "final_state"`,
		},
		{
			name: "trace_order without actions",
			yaml: `
name: n
description: "d"
steps:
  - reset: true
assertions:
  - type: trace_order
`,
			contains: "actions list is required",
		},
		{
			name: "negative count",
			yaml: `
name: n
description: "d"
steps:
  - reset: true
assertions:
  - type: trace_count
    action: a.b
    count: -1
`,
			contains: "count must be non-negative",
		},
		{
			name: "final_value without expect",
			yaml: `
name: n
description: "d"
steps:
  - reset: true
assertions:
  - type: final_value
    action: a.b
`,
			contains: "expect is required for final_value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadScenario_SampleScenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, err := LoadScenario(path)
			require.NoError(t, err)
		})
	}
}
