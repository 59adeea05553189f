package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		raw     string
		want    Stage
		wantErr bool
	}{
		{"applied", StageApplied, false},
		{"  Interview ", StageInterview, false},
		{"OFFER", StageOffer, false},
		{"withdrawn", StageWithdrawn, false},
		{"ghosted", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseStage(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown application stage")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStage_IsValid(t *testing.T) {
	for _, s := range AllStages {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Stage("archived").IsValid())
}

func TestApplicationRecord_EffectiveDate(t *testing.T) {
	applied := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	zero := time.Time{}

	tests := []struct {
		name   string
		record ApplicationRecord
		want   time.Time
		ok     bool
	}{
		{"applied wins", ApplicationRecord{AppliedDate: &applied, CreatedDate: &created}, applied, true},
		{"created fallback", ApplicationRecord{CreatedDate: &created}, created, true},
		{"zero applied falls back", ApplicationRecord{AppliedDate: &zero, CreatedDate: &created}, created, true},
		{"undated", ApplicationRecord{}, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.record.EffectiveDate()
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestApplicationRecord_Validation(t *testing.T) {
	assert.NoError(t, Validator().Struct(ApplicationRecord{Status: StageScreening}))
	assert.Error(t, Validator().Struct(ApplicationRecord{}))
	assert.Error(t, Validator().Struct(ApplicationRecord{Status: "Screening"}))
}

func TestStageCounts_Total(t *testing.T) {
	counts := StageCounts{StageApplied: 3, StageOffer: 1, StageRejected: 0}
	assert.Equal(t, 4, counts.Total())
	assert.Equal(t, 0, StageCounts{}.Total())
}
