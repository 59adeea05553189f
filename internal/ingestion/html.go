// Package ingestion turns pasted job postings into clean plain text.
package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// noiseSelector matches page chrome that never belongs to a posting.
const noiseSelector = "nav, footer, header, script, style, noscript, form, iframe, .ad, .ads, .advertisement, .sidebar, .cookie-banner, .popup"

// JobPostingSelectors returns selectors for the description block on common job boards,
// most specific first.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		"#job-description",
		".job-content",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
	}
}

// ExtractJobText parses a job posting page and returns the description text.
// It falls back to the whole body when no known description block is present.
func ExtractJobText(html string) (string, error) {
	return extract(html, JobPostingSelectors(), nil)
}

// ExtractJobTextFrom is ExtractJobText for a page fetched from pageURL. Postings
// hosted on a known job board are read with that board's selectors first.
func ExtractJobTextFrom(html, pageURL string) (string, error) {
	board := DetectBoard(pageURL)
	return extract(html, append(boardSelectors(board), JobPostingSelectors()...), boardNoise(board))
}

func extract(html string, selectors, noise []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()
	if len(noise) > 0 {
		doc.Find(strings.Join(noise, ", ")).Remove()
	}

	content := doc.Find("body")
	for _, selector := range selectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	// block elements end a line; otherwise adjacent list items run together
	content.Find("p, li, br, h1, h2, h3, h4, h5, h6, div, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return CleanText(content.Text()), nil
}

// CleanText normalizes line endings, collapses runs of spaces, trims every line
// and keeps at most one blank line between paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}
