package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateSession creates a new tailoring session record and returns its ID
func (db *DB) CreateSession(ctx context.Context, company, roleTitle string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO tailoring_sessions (company, role_title, status)
		 VALUES ($1, $2, 'running')
		 RETURNING id`,
		company, roleTitle,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// CompleteSession marks a tailoring session as finished with the given status
func (db *DB) CompleteSession(ctx context.Context, sessionID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE tailoring_sessions SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}

// GetSession retrieves a tailoring session by ID. Returns nil when no such
// session exists.
func (db *DB) GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	var session Session
	err := db.pool.QueryRow(ctx,
		`SELECT id, company, role_title, status, created_at, completed_at
		 FROM tailoring_sessions WHERE id = $1`,
		sessionID,
	).Scan(&session.ID, &session.Company, &session.RoleTitle, &session.Status, &session.CreatedAt, &session.CompletedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// SessionFilters holds optional filters for listing sessions
type SessionFilters struct {
	Company string
	Status  string
	Limit   int
}

// ListSessions retrieves sessions with optional filters, newest first
func (db *DB) ListSessions(ctx context.Context, filters SessionFilters) ([]Session, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, company, role_title, status, created_at, completed_at
		FROM tailoring_sessions WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Company != "" {
		query += fmt.Sprintf(" AND company ILIKE $%d", argNum)
		args = append(args, "%"+filters.Company+"%")
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var session Session
		if err := rows.Scan(&session.ID, &session.Company, &session.RoleTitle, &session.Status, &session.CreatedAt, &session.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}
