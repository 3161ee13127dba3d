// Package ir provides the value types that cross the simulator's dynamic call
// boundary.
//
// This package contains type definitions and serialization only. All other
// internal packages may import ir; ir imports nothing internal.
//
// Key design constraints:
//   - NO float types anywhere - contract integers are int64
//   - IRNull is a real value: lookups that find nothing succeed with null
//   - Canonical JSON (RFC 8785) is the only encoding used for journal rows
//     and golden traces
//   - Logical sequence numbers only, never wall-clock timestamps
package ir
