package ir

import (
	"encoding/json"
	"fmt"
)

// Result is the outcome of one dispatched contract call.
//
// Exactly one of Value (Success=true) or Error (Success=false) is meaningful.
// A successful lookup that finds nothing carries Value=IRNull, which is NOT a
// failure.
type Result struct {
	Success bool
	Value   IRValue
	Error   IRValue
}

// Ok creates a successful result. A nil value is stored as IRNull.
func Ok(v IRValue) Result {
	if v == nil {
		v = IRNull{}
	}
	return Result{Success: true, Value: v}
}

// Fail creates a failed result carrying an error code or message.
func Fail(e IRValue) Result {
	if e == nil {
		e = IRNull{}
	}
	return Result{Success: false, Error: e}
}

// object returns the wire shape of r.
func (r Result) object() IRObject {
	if r.Success {
		v := r.Value
		if v == nil {
			v = IRNull{}
		}
		return IRObject{"success": IRBool(true), "value": v}
	}
	e := r.Error
	if e == nil {
		e = IRNull{}
	}
	return IRObject{"success": IRBool(false), "error": e}
}

// Object returns the result as an IRObject ({"success","value"} or {"success","error"}).
func (r Result) Object() IRObject {
	return r.object()
}

// String renders the result as canonical JSON for logs and text output.
func (r Result) String() string {
	b, err := MarshalCanonical(r)
	if err != nil {
		return fmt.Sprintf("<invalid result: %v>", err)
	}
	return string(b)
}

// MarshalJSON implements json.Marshaler using canonical JSON.
func (r Result) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(r)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	successRaw, ok := raw["success"]
	if !ok {
		return fmt.Errorf("result: missing success field")
	}
	var success bool
	if err := json.Unmarshal(successRaw, &success); err != nil {
		return fmt.Errorf("result: success: %w", err)
	}

	field := "error"
	if success {
		field = "value"
	}
	val := IRValue(IRNull{})
	if payload, exists := raw[field]; exists {
		v, err := UnmarshalIRValue(payload)
		if err != nil {
			return fmt.Errorf("result: %s: %w", field, err)
		}
		val = v
	}

	if success {
		*r = Ok(val)
	} else {
		*r = Fail(val)
	}
	return nil
}

// Call is one entry in the call journal: a dispatched invocation together
// with its result.
type Call struct {
	// Seq is the dispatcher's logical clock value for this call.
	Seq int64 `json:"seq"`

	// Session groups calls made through one dispatcher.
	Session string `json:"session"`

	Contract  string `json:"contract"`
	Operation string `json:"operation"`

	// ReadOnly is true when the call came through the read-only entry point.
	ReadOnly bool `json:"read_only"`

	Args   IRArray `json:"args"`
	Result Result  `json:"result"`
}

// Action returns the "contract.operation" form used in traces.
func (c Call) Action() string {
	return c.Contract + "." + c.Operation
}
