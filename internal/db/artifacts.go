package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-tailor/internal/types"
)

// SaveArtifact stores a JSON artifact for a session, replacing any
// previous artifact at the same step.
func (db *DB) SaveArtifact(ctx context.Context, sessionID uuid.UUID, step string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO artifacts (session_id, step, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, step) DO UPDATE SET content = $3, created_at = NOW()`,
		sessionID, step, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", step, err)
	}
	return nil
}

// SaveTextArtifact stores a text artifact (rendered HTML) for a session
func (db *DB) SaveTextArtifact(ctx context.Context, sessionID uuid.UUID, step, text string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO artifacts (session_id, step, text_content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, step) DO UPDATE SET text_content = $3, created_at = NOW()`,
		sessionID, step, text,
	)
	if err != nil {
		return fmt.Errorf("failed to save text artifact %s: %w", step, err)
	}
	return nil
}

// SaveBinaryArtifact stores a binary artifact (printed PDF) for a session
func (db *DB) SaveBinaryArtifact(ctx context.Context, sessionID uuid.UUID, step string, data []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO artifacts (session_id, step, binary_content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, step) DO UPDATE SET binary_content = $3, created_at = NOW()`,
		sessionID, step, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save binary artifact %s: %w", step, err)
	}
	return nil
}

// GetArtifact retrieves a JSON artifact by session ID and step. Returns
// nil when the step has no artifact.
func (db *DB) GetArtifact(ctx context.Context, sessionID uuid.UUID, step string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM artifacts WHERE session_id = $1 AND step = $2`,
		sessionID, step,
	).Scan(&content)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", step, err)
	}
	return content, nil
}

// GetTextArtifact retrieves a text artifact by session ID and step
func (db *DB) GetTextArtifact(ctx context.Context, sessionID uuid.UUID, step string) (string, error) {
	var text string
	err := db.pool.QueryRow(ctx,
		`SELECT text_content FROM artifacts WHERE session_id = $1 AND step = $2`,
		sessionID, step,
	).Scan(&text)
	if err != nil {
		if noRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get text artifact %s: %w", step, err)
	}
	return text, nil
}

// GetTailoredResume loads the stored tailored resume for a session.
// Returns nil when the session never produced one.
func (db *DB) GetTailoredResume(ctx context.Context, sessionID uuid.UUID) (*types.ResumeDocument, error) {
	content, err := db.GetArtifact(ctx, sessionID, StepTailoredResume)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tailored resume: %w", err)
	}
	return &doc, nil
}

// GetCoverLetter loads the stored cover letter for a session
func (db *DB) GetCoverLetter(ctx context.Context, sessionID uuid.UUID) (*types.CoverLetterDocument, error) {
	content, err := db.GetArtifact(ctx, sessionID, StepCoverLetter)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var doc types.CoverLetterDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cover letter: %w", err)
	}
	return &doc, nil
}

// GetFitReport loads the stored fit report for a session
func (db *DB) GetFitReport(ctx context.Context, sessionID uuid.UUID) (*FitReport, error) {
	content, err := db.GetArtifact(ctx, sessionID, StepFitReport)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var report FitReport
	if err := json.Unmarshal(content, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fit report: %w", err)
	}
	return &report, nil
}
