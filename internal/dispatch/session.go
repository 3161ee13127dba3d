package dispatch

import (
	"github.com/google/uuid"
)

// SessionGenerator produces the session token a dispatcher tags calls with.
type SessionGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session tokens.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedSession always returns the same token.
// Used by the harness so golden traces are byte-identical across runs.
type FixedSession string

// Generate returns the fixed token, or "test-session-default" if empty.
func (s FixedSession) Generate() string {
	if s == "" {
		return "test-session-default"
	}
	return string(s)
}
