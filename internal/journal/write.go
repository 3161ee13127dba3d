package journal

import (
	"context"
	"fmt"

	"github.com/roach88/chainsim/internal/ir"
)

// WriteCall appends one call record.
//
// Args and Result are serialized to canonical JSON. Duplicate (session, seq)
// pairs are not rejected; the dispatcher's clock guarantees uniqueness.
func (s *Store) WriteCall(ctx context.Context, call ir.Call) error {
	argsJSON, err := marshalArgs(call.Args)
	if err != nil {
		return fmt.Errorf("write call: %w", err)
	}

	resultJSON, err := ir.MarshalCanonical(call.Result)
	if err != nil {
		return fmt.Errorf("write call: marshal result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO calls
		(seq, session, contract, operation, read_only, args, success, result, journal_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		call.Seq,
		call.Session,
		call.Contract,
		call.Operation,
		boolToInt(call.ReadOnly),
		argsJSON,
		boolToInt(call.Result.Success),
		string(resultJSON),
		ir.JournalVersion,
	)
	if err != nil {
		return fmt.Errorf("write call: %w", err)
	}
	return nil
}

func marshalArgs(args ir.IRArray) (string, error) {
	if args == nil {
		args = ir.IRArray{}
	}
	b, err := ir.MarshalCanonical(args)
	if err != nil {
		return "", fmt.Errorf("marshal args: %w", err)
	}
	return string(b), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
