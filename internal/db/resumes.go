package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/climb/internal/types"
)

const resumeColumns = `id, user_id, title, content, created_at, updated_at`

func scanResume(row pgx.Row) (*Resume, error) {
	var r Resume
	var content []byte
	if err := row.Scan(&r.ID, &r.UserID, &r.Title, &content, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &r.Content); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resume content: %w", err)
		}
	}
	return &r, nil
}

// CreateResume stores a resume document for userID.
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, title string, content *types.ResumeContent) (*Resume, error) {
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume content: %w", err)
	}

	row := db.pool.QueryRow(ctx, `
		INSERT INTO resumes (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING `+resumeColumns,
		userID, title, contentJSON,
	)
	resume, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return resume, nil
}

// GetResume retrieves one of userID's resumes. Returns nil, nil if not found.
func (db *DB) GetResume(ctx context.Context, userID, id uuid.UUID) (*Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	resume, err := scanResume(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return resume, nil
}

// ListResumes returns userID's resumes, most recently updated first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *resume)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resumes: %w", err)
	}
	return resumes, nil
}

// CountResumes returns how many resumes userID has stored.
func (db *DB) CountResumes(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resumes WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count resumes: %w", err)
	}
	return n, nil
}
