package journal

import (
	"testing"

	"github.com/roach88/chainsim/internal/ir"
)

// createTestStore creates a new in-memory journal for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testCall creates a call record with no args.
func testCall(seq int64, session, contract, operation string, result ir.Result) ir.Call {
	return ir.Call{
		Seq:       seq,
		Session:   session,
		Contract:  contract,
		Operation: operation,
		Args:      ir.IRArray{},
		Result:    result,
	}
}
