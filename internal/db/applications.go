package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/climb/internal/types"
)

const applicationColumns = `id, user_id, company, role_title, job_url, status, notes, applied_date, created_at, updated_at`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(
		&a.ID, &a.UserID, &a.Company, &a.RoleTitle, &a.JobURL,
		&a.Status, &a.Notes, &a.AppliedDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts a new application for userID. An empty status
// defaults to applied.
func (db *DB) CreateApplication(ctx context.Context, userID uuid.UUID, input *ApplicationCreateInput) (*Application, error) {
	status := input.Status
	if status == "" {
		status = types.StageApplied
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("failed to create application: unknown stage %q", status)
	}

	row := db.pool.QueryRow(ctx, `
		INSERT INTO applications (user_id, company, role_title, job_url, status, notes, applied_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+applicationColumns,
		userID, input.Company, input.RoleTitle, input.JobURL, string(status), input.Notes, input.AppliedDate,
	)
	app, err := scanApplication(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// GetApplication retrieves one of userID's applications. Returns nil, nil if not found.
func (db *DB) GetApplication(ctx context.Context, userID, id uuid.UUID) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ListApplications returns all of userID's applications, newest first.
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}
	return apps, nil
}

// UpdateApplicationStatus moves an application to a new stage.
func (db *DB) UpdateApplicationStatus(ctx context.Context, userID, id uuid.UUID, status types.Stage) (*Application, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("failed to update application: unknown stage %q", status)
	}
	row := db.pool.QueryRow(ctx, `
		UPDATE applications SET status = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+applicationColumns,
		id, userID, string(status),
	)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return app, nil
}

// DeleteApplication removes one of userID's applications.
func (db *DB) DeleteApplication(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM applications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	return nil
}
