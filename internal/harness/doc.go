// Package harness runs scripted contract-call scenarios against a fresh
// simulator and checks the outcomes.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: capacity_example
//	description: "What this scenario validates"
//	session: capacity-example
//	steps:
//	  - call: facility-registration.register-facility
//	    args: ["Shelter A", "Downtown", 100, "555-0100"]
//	    expect: { success: true, value: 1 }
//	  - call: capacity-tracking.get-available-capacity
//	    readonly: true
//	    args: [1]
//	    expect: { error: 1 }
//	  - reset: true
//	assertions:
//	  - type: trace_count
//	    action: facility-registration.register-facility
//	    count: 1
//	  - type: final_value
//	    action: facility-registration.get-facility-count
//	    expect: { value: 0 }
//
// In an expect clause only the keys that are present are checked. `value: null`
// expects an absent record; object values match as subsets.
//
// # Assertion Types
//
//   - trace_contains: a call to action appears whose args start with args
//   - trace_order: actions appear in the specified order
//   - trace_count: the journal holds exactly count calls to action
//   - final_value: a read-only call against the final state returns expect
//
// # Deterministic Testing
//
// Each run uses a fixed session token, the dispatcher's logical seq clock and
// an in-memory SQLite journal, so traces are identical across runs and can be
// compared against golden files with RunWithGolden.
package harness
