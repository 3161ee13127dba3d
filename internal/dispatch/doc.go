// Package dispatch is the dynamic call boundary of the simulator.
//
// A Dispatcher accepts (contract, operation, positional args) and routes the
// call by exact string match to a typed handler that drives a
// registry.Simulator. Every call returns exactly one ir.Result:
//
//   - routing failure: unknown contract or operation, as a string error
//   - argument fault: arity or type mismatch against the catalog signature
//   - domain failure: the numeric contract code (1 for not-found)
//   - success: the value, which is null for lookups that find nothing
//
// Panics raised inside a handler are recovered and returned as failures; the
// dispatcher never propagates a fault to its caller.
//
// # Read-only Path
//
// CallReadOnly hands read handlers only a registry.Reader. A mutating
// operation reached through CallReadOnly runs anyway by default to match the
// contract environment being simulated; WithStrictReadOnly(true) makes it a
// routing failure instead.
//
// # Observability
//
// Each call is stamped with a logical seq and the dispatcher's session token,
// written to the optional Recorder (the SQLite journal), counted in
// Prometheus metrics and logged at debug level through log/slog.
package dispatch
