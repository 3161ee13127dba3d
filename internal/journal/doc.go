// Package journal records every dispatched contract call in SQLite.
//
// The journal is an append-only log of calls: contract, operation,
// positional args, read-only flag and the Result, each stamped with the
// dispatcher's logical seq and session token. The harness counts and orders
// calls through it; the CLI trace command prints it.
//
// # Ordering
//
// All ordering uses seq (logical clock), NEVER timestamps. Queries include
// ORDER BY seq ASC, id ASC so reads are deterministic.
//
// # Database Configuration
//
// The normal path is ":memory:" - nothing outlives the process. A file path
// works too and gets the same pragmas:
//
//   - WAL mode (ignored for in-memory databases)
//   - synchronous=NORMAL
//   - busy_timeout=5000
//
// Args and results are stored as RFC 8785 canonical JSON (ir.MarshalCanonical).
package journal
