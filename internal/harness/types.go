package harness

import "github.com/roach88/chainsim/internal/ir"

// Trace event types.
const (
	EventCall  = "call"
	EventReset = "reset"
)

// TraceEvent is one executed step.
type TraceEvent struct {
	Type     string     `json:"type"` // "call" or "reset"
	Seq      int64      `json:"seq"`
	Action   string     `json:"action,omitempty"`
	ReadOnly bool       `json:"read_only,omitempty"`
	Args     ir.IRArray `json:"args,omitempty"`
	Result   *ir.Result `json:"result,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses and assertions match.
	Pass bool `json:"pass"`

	// Trace contains every executed step in order.
	Trace []TraceEvent `json:"trace"`

	// Calls are the journal rows read back after the run.
	Calls []ir.Call `json:"calls"`

	// Failures is the number of journaled calls that returned success=false.
	Failures int `json:"failures"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Calls:  []ir.Call{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddCallTrace adds a dispatched call to the trace.
func (r *Result) AddCallTrace(seq int64, action string, readOnly bool, args ir.IRArray, result ir.Result) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:     EventCall,
		Seq:      seq,
		Action:   action,
		ReadOnly: readOnly,
		Args:     args,
		Result:   &result,
	})
}

// AddResetTrace adds a reset to the trace. seq is the clock value at the
// time of the reset; resets do not advance it.
func (r *Result) AddResetTrace(seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type: EventReset,
		Seq:  seq,
	})
}
