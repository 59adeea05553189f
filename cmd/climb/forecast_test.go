package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastCommand_Text(t *testing.T) {
	stdout, stderr, err := execute(t, "forecast", "--in", "testdata/history.json", "--now", "2026-03-18", "--weeks", "4", "--target", "3")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Applications:   10 over 2 week(s)")
	assert.Contains(t, stdout, "Per week:       5.0")
	assert.Contains(t, stdout, "Response rate:  40%")
	assert.Contains(t, stdout, "Interview rate: 20%")
	assert.Contains(t, stdout, "Offer rate:     10%")
	assert.Contains(t, stdout, "Applications: 20.0")
	assert.Contains(t, stdout, "Offers:       2")
	assert.Contains(t, stdout, "To reach 3 offer(s) in 4 week(s): 7.5 applications/week")
	assert.Contains(t, stderr, `entry 10: unknown application stage: "ghosted"`)
}

func TestForecastCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, "forecast", "-i", "testdata/history.json", "--now", "2026-03-18", "-w", "4", "--lift", "100", "--json")
	require.NoError(t, err)

	var report forecastReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 10, report.Metrics.TotalApplications)
	assert.Equal(t, 2, report.Metrics.ObservedWeeks)
	assert.InDelta(t, 0.1, report.Metrics.OfferRate, 1e-9)
	assert.Equal(t, 1, report.Skipped)
	assert.Nil(t, report.Goal)

	// lift doubles conversion, not volume
	assert.InDelta(t, 20.0, report.Projection.TotalApplications, 1e-9)
	assert.Equal(t, 16, report.Projection.ExpectedResponses)
	assert.Equal(t, 4, report.Projection.ExpectedOffers)
}

func TestForecastCommand_UnreachableTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"status":"rejected","applied_date":"2026-03-16"}]`), 0o600))

	stdout, _, err := execute(t, "forecast", "--in", path, "--now", "2026-03-18", "--target", "1")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Target of 1 offer(s) is not reachable")
}

func TestForecastCommand_EmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))

	stdout, _, err := execute(t, "forecast", "--in", path, "--json")
	require.NoError(t, err)

	var report forecastReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Zero(t, report.Metrics)
	assert.Zero(t, report.Projection)
}

func TestForecastCommand_Errors(t *testing.T) {
	notArray := filepath.Join(t.TempDir(), "object.json")
	require.NoError(t, os.WriteFile(notArray, []byte(`{"status":"applied"}`), 0o600))

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing in flag", []string{"forecast"}, `required flag(s) "in" not set`},
		{"missing file", []string{"forecast", "--in", "testdata/nope.json"}, "failed to read"},
		{"not an array", []string{"forecast", "--in", notArray}, "expected a JSON array"},
		{"weeks out of range", []string{"forecast", "--in", "testdata/history.json", "--weeks", "600"}, "weeks must be between 0 and 520"},
		{"negative target", []string{"forecast", "--in", "testdata/history.json", "--target", "-1"}, "target must be non-negative"},
		{"NaN lift", []string{"forecast", "--in", "testdata/history.json", "--lift", "NaN", "--json"}, "lift must be a finite number"},
		{"infinite lift", []string{"forecast", "--in", "testdata/history.json", "--lift", "+Inf"}, "lift must be a finite number"},
		{"bad now", []string{"forecast", "--in", "testdata/history.json", "--now", "yesterday"}, "invalid --now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadHistory_SkipsBadDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"status":"applied","applied_date":"03/16/2026"},
		{"status":"offer","created_date":"2026-03-16T09:30:00-05:00"}
	]`), 0o600))

	records, skipped, err := loadHistory(path)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].AppliedDate)
	require.NotNil(t, records[0].CreatedDate)
	assert.Equal(t, 14, records[0].CreatedDate.UTC().Hour())
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0], "applied_date")
}
