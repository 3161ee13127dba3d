package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/chainsim/internal/ir"
)

// ReadCalls returns all calls recorded for a session in seq order.
// Returns an empty slice (not nil) if none exist.
func (s *Store) ReadCalls(ctx context.Context, session string) ([]ir.Call, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, session, contract, operation, read_only, args, result
		FROM calls
		WHERE session = ?
		ORDER BY seq ASC, id ASC
	`, session)
	if err != nil {
		return nil, fmt.Errorf("query calls: %w", err)
	}
	defer rows.Close()

	calls := []ir.Call{}
	for rows.Next() {
		call, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calls: %w", err)
	}
	return calls, nil
}

// CountCalls returns how many times contract.operation was called in a session.
func (s *Store) CountCalls(ctx context.Context, session, contract, operation string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM calls
		WHERE session = ? AND contract = ? AND operation = ?
	`, session, contract, operation).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count calls: %w", err)
	}
	return count, nil
}

// Sessions returns every session in the journal, in order of first write.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session FROM calls
		GROUP BY session
		ORDER BY MIN(id) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []string{}
	for rows.Next() {
		var session string
		if err := rows.Scan(&session); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// CountFailures returns how many calls in a session returned a failure result.
func (s *Store) CountFailures(ctx context.Context, session string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM calls WHERE session = ? AND success = 0
	`, session).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count failures: %w", err)
	}
	return count, nil
}

func scanCall(rows *sql.Rows) (ir.Call, error) {
	var (
		call       ir.Call
		readOnly   int
		argsJSON   string
		resultJSON string
	)
	if err := rows.Scan(&call.Seq, &call.Session, &call.Contract, &call.Operation, &readOnly, &argsJSON, &resultJSON); err != nil {
		return ir.Call{}, fmt.Errorf("scan call: %w", err)
	}
	call.ReadOnly = readOnly == 1

	if err := json.Unmarshal([]byte(argsJSON), &call.Args); err != nil {
		return ir.Call{}, fmt.Errorf("scan call seq=%d: args: %w", call.Seq, err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &call.Result); err != nil {
		return ir.Call{}, fmt.Errorf("scan call seq=%d: result: %w", call.Seq, err)
	}
	return call, nil
}
