package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectBoard(t *testing.T) {
	tests := []struct {
		url  string
		want Board
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", BoardGreenhouse},
		{"https://job-boards.greenhouse.io/acme/jobs/123", BoardGreenhouse},
		{"https://jobs.lever.co/acme/abc-def", BoardLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/123", BoardWorkday},
		{"https://jobs.ashbyhq.com/acme/123", BoardAshby},
		{"https://careers.acme.example/jobs/1", BoardUnknown},
		{"https://notgreenhouse.io.evil.example/", BoardUnknown},
		{"://bad", BoardUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectBoard(tt.url))
		})
	}
}

func TestExtractJobTextFrom_BoardSelectorsAndNoise(t *testing.T) {
	html := `<html><body>
		<div class="job__description body">
			<p>Own the Go billing services.</p>
			<div class="eeo-statement">We are an equal opportunity employer.</div>
		</div>
		<div class="job-description">Generic block that should lose to the board selector.</div>
	</body></html>`

	text, err := ExtractJobTextFrom(html, "https://boards.greenhouse.io/acme/jobs/1")
	require.NoError(t, err)
	assert.Equal(t, "Own the Go billing services.", text)

	generic, err := ExtractJobTextFrom(html, "https://careers.acme.example/jobs/1")
	require.NoError(t, err)
	assert.Equal(t, "Generic block that should lose to the board selector.", generic)
}
