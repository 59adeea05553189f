package db

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/climb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRecord(t *testing.T) {
	applied := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	app := Application{
		ID:          uuid.New(),
		Status:      "Interview",
		AppliedDate: &applied,
		CreatedAt:   created,
	}

	rec, err := app.Record()

	require.NoError(t, err)
	assert.Equal(t, types.StageInterview, rec.Status)
	require.NotNil(t, rec.CreatedDate)
	assert.Equal(t, created, *rec.CreatedDate)
	eff, ok := rec.EffectiveDate()
	assert.True(t, ok)
	assert.Equal(t, applied, eff)
}

func TestApplicationRecord_UnknownStatus(t *testing.T) {
	app := Application{Status: "ghosted"}
	_, err := app.Record()
	assert.Error(t, err)
}

func TestToRecords_SkipsInvalidRows(t *testing.T) {
	now := time.Now().UTC()
	apps := []Application{
		{Status: "applied", CreatedAt: now},
		{Status: "bogus", CreatedAt: now},
		{Status: "offer"},
	}

	records, skipped := ToRecords(apps)

	assert.Equal(t, 1, skipped)
	require.Len(t, records, 2)
	assert.Equal(t, types.StageApplied, records[0].Status)
	assert.Equal(t, types.StageOffer, records[1].Status)
	assert.Nil(t, records[1].CreatedDate)
}

func TestToRecords_Empty(t *testing.T) {
	records, skipped := ToRecords(nil)
	assert.Empty(t, records)
	assert.NotNil(t, records)
	assert.Zero(t, skipped)
}

func TestUserPasswordHashNotSerialized(t *testing.T) {
	u := User{Email: "a@example.com", PasswordHash: "secret"}
	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
}
