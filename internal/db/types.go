package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/climb/internal/types"
)

// User represents an account row
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Application represents one tracked job application
type Application struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Company     string     `json:"company"`
	RoleTitle   string     `json:"role_title"`
	JobURL      string     `json:"job_url,omitempty"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	AppliedDate *time.Time `json:"applied_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ApplicationCreateInput is used when creating a new application
type ApplicationCreateInput struct {
	Company     string
	RoleTitle   string
	JobURL      string
	Status      types.Stage
	Notes       string
	AppliedDate *time.Time
}

// Resume represents a stored resume document
type Resume struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	Title     string              `json:"title"`
	Content   types.ResumeContent `json:"content"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Record converts the row into the validated shape the forecast calculators consume.
// Rows with a status outside the known stages are rejected.
func (a *Application) Record() (types.ApplicationRecord, error) {
	stage, err := types.ParseStage(a.Status)
	if err != nil {
		return types.ApplicationRecord{}, err
	}
	created := a.CreatedAt
	rec := types.ApplicationRecord{
		Status:      stage,
		AppliedDate: a.AppliedDate,
	}
	if !created.IsZero() {
		rec.CreatedDate = &created
	}
	if err := types.Validator().Struct(rec); err != nil {
		return types.ApplicationRecord{}, err
	}
	return rec, nil
}

// ToRecords converts rows to records, dropping rows that fail validation.
// It returns how many rows were dropped so callers can log it.
func ToRecords(apps []Application) ([]types.ApplicationRecord, int) {
	records := make([]types.ApplicationRecord, 0, len(apps))
	skipped := 0
	for i := range apps {
		rec, err := apps[i].Record()
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped
}
