package harness

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/chainsim/internal/ir"
)

// Scenario is a scripted sequence of contract calls with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Session is the fixed session token journal rows are tagged with.
	// If empty, defaults to "test-session-default" so golden traces are stable.
	Session string `yaml:"session,omitempty"`

	// Steps run in order against one fresh simulator.
	Steps []Step `yaml:"steps"`

	// Assertions validate the trace and the final simulator state.
	// Supported types: trace_contains, trace_order, trace_count, final_value
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is either a contract call or a reset.
type Step struct {
	// Call is "<contract>.<operation>".
	Call string `yaml:"call,omitempty"`

	// Args are the positional arguments. Omitted means none.
	Args []any `yaml:"args,omitempty"`

	// ReadOnly sends the call through the read-only entry point.
	ReadOnly bool `yaml:"readonly,omitempty"`

	// Expect validates the result. If nil, any result is accepted.
	Expect *Expect `yaml:"expect,omitempty"`

	// Reset discards all simulator state.
	Reset bool `yaml:"reset,omitempty"`
}

// Expect checks a call result. Only the keys present in the YAML are
// checked, so `value: null` differs from leaving value out.
type Expect struct {
	Success *bool

	Value    any
	HasValue bool

	Error    any
	HasError bool
}

// UnmarshalYAML records which keys were present.
func (e *Expect) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expect must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "success":
			var b bool
			if err := val.Decode(&b); err != nil {
				return fmt.Errorf("line %d: expect.success: %w", val.Line, err)
			}
			e.Success = &b
		case "value":
			if err := val.Decode(&e.Value); err != nil {
				return fmt.Errorf("line %d: expect.value: %w", val.Line, err)
			}
			e.HasValue = true
		case "error":
			if err := val.Decode(&e.Error); err != nil {
				return fmt.Errorf("line %d: expect.error: %w", val.Line, err)
			}
			e.HasError = true
		default:
			return fmt.Errorf("line %d: field %s not found in type harness.Expect", key.Line, key.Value)
		}
	}
	return nil
}

// Assertion validates the trace or final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": a call to Action appears whose args start with Args
	// - "trace_order": the first calls to Actions appear in that order
	// - "trace_count": Action was journaled exactly Count times
	// - "final_value": a read-only call to Action with Args returns Expect
	Type string `yaml:"type"`

	// Action is "<contract>.<operation>" (trace_contains, trace_count, final_value).
	Action string `yaml:"action,omitempty"`

	// Args are matched as a prefix (trace_contains) or passed to the call
	// (final_value).
	Args []any `yaml:"args,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count,omitempty"`

	// Actions is the expected action order (trace_order).
	Actions []string `yaml:"actions,omitempty"`

	// Expect is the expected result (final_value).
	Expect *Expect `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalValue    = "final_value"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// splitAction splits "<contract>.<operation>".
func splitAction(action string) (contract, operation string, err error) {
	contract, operation, found := strings.Cut(action, ".")
	if !found || contract == "" || operation == "" {
		return "", "", fmt.Errorf("action %q must be <contract>.<operation>", action)
	}
	return contract, operation, nil
}

// convertArgs converts YAML-decoded positional args to an IRArray.
func convertArgs(args []any) (ir.IRArray, error) {
	out := make(ir.IRArray, len(args))
	for i, a := range args {
		v, err := ir.FromAny(a)
		if err != nil {
			return nil, fmt.Errorf("args[%d]: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step *Step) error {
	if step.Reset {
		if step.Call != "" || len(step.Args) > 0 || step.ReadOnly || step.Expect != nil {
			return fmt.Errorf("steps[%d]: reset step takes no other fields", index)
		}
		return nil
	}
	if step.Call == "" {
		return fmt.Errorf("steps[%d]: call or reset is required", index)
	}
	if _, _, err := splitAction(step.Call); err != nil {
		return fmt.Errorf("steps[%d]: %w", index, err)
	}
	if _, err := convertArgs(step.Args); err != nil {
		return fmt.Errorf("steps[%d]: %w", index, err)
	}
	if step.Expect != nil {
		if err := validateExpect(step.Expect); err != nil {
			return fmt.Errorf("steps[%d].expect: %w", index, err)
		}
	}
	return nil
}

func validateExpect(e *Expect) error {
	if e.Success == nil && !e.HasValue && !e.HasError {
		return fmt.Errorf("at least one of success, value or error is required")
	}
	if e.HasValue && e.HasError {
		return fmt.Errorf("value and error are mutually exclusive")
	}
	if e.Success != nil {
		if *e.Success && e.HasError {
			return fmt.Errorf("error given with success: true")
		}
		if !*e.Success && e.HasValue {
			return fmt.Errorf("value given with success: false")
		}
	}
	if e.HasValue {
		if _, err := ir.FromAny(e.Value); err != nil {
			return fmt.Errorf("value: %w", err)
		}
	}
	if e.HasError {
		if _, err := ir.FromAny(e.Error); err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_contains", index)
		}
		if _, err := convertArgs(a.Args); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertTraceOrder:
		if len(a.Actions) == 0 {
			return fmt.Errorf("assertions[%d]: actions list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_count", index)
		}
		if _, _, err := splitAction(a.Action); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalValue:
		if _, _, err := splitAction(a.Action); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
		if _, err := convertArgs(a.Args); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
		if a.Expect == nil {
			return fmt.Errorf("assertions[%d]: expect is required for final_value", index)
		}
		if err := validateExpect(a.Expect); err != nil {
			return fmt.Errorf("assertions[%d].expect: %w", index, err)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
