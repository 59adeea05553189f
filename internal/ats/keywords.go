package ats

import (
	"strings"

	"github.com/jonathan/climb/internal/types"
)

// NormalizeKeyword lowercases and trims a keyword for matching.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.Join(strings.Fields(keyword), " "))
}

// TargetKeywords merges a job's keywords and requirements into one list,
// dropping blanks and duplicates. The first spelling of each term is kept.
func TargetKeywords(job *types.JobRequirements) []string {
	if job == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{job.Keywords, job.Requirements} {
		for _, kw := range list {
			norm := NormalizeKeyword(kw)
			if norm == "" || seen[norm] {
				continue
			}
			seen[norm] = true
			out = append(out, strings.TrimSpace(kw))
		}
	}
	return out
}

// MatchKeywords splits keywords into those that appear in text and those that do not.
// Matching is a case-insensitive substring test with whitespace collapsed.
// Both returned slices are non-nil.
func MatchKeywords(text string, keywords []string) (found, missing []string) {
	found = make([]string, 0, len(keywords))
	missing = make([]string, 0)
	haystack := NormalizeKeyword(text)
	for _, kw := range keywords {
		if strings.Contains(haystack, NormalizeKeyword(kw)) {
			found = append(found, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return found, missing
}
