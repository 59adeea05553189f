package ats

import (
	"testing"

	"github.com/jonathan/climb/internal/types"
	"github.com/stretchr/testify/assert"
)

func fullResume() *types.ResumeContent {
	return &types.ResumeContent{
		Summary: "Backend engineer focused on distributed systems",
		Experience: []types.ExperienceEntry{
			{Company: "Acme", Title: "Senior Engineer", Description: "Built Go microservices on Kubernetes"},
			{Company: "Globex", Title: "Engineer", Description: "Migrated billing to PostgreSQL"},
		},
		Education: []types.EducationEntry{{School: "State University", Degree: "BSc", Field: "Computer Science"}},
		Skills:    []string{"Go", "Kubernetes", "PostgreSQL"},
	}
}

func TestScore_FullResumeFullOverlap(t *testing.T) {
	job := &types.JobRequirements{
		Keywords:     []string{"go", "KUBERNETES"},
		Requirements: []string{"PostgreSQL", "distributed systems"},
	}

	result := Score(fullResume(), job)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, []string{"go", "KUBERNETES", "PostgreSQL", "distributed systems"}, result.FoundKeywords)
	assert.Empty(t, result.MissingKeywords)
	assert.Equal(t, types.SectionScores{Summary: 100, Experience: 100, Education: 100, Skills: 100, Keywords: 100}, result.Sections)
	assert.Empty(t, result.Suggestions)
}

func TestScore_EmptyResume(t *testing.T) {
	job := &types.JobRequirements{Keywords: []string{"Go", "Terraform"}}

	result := Score(&types.ResumeContent{}, job)

	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.FoundKeywords)
	assert.Equal(t, []string{"Go", "Terraform"}, result.MissingKeywords)
	assert.Contains(t, result.Suggestions, "Add a professional summary at the top of the resume")
	assert.Contains(t, result.Suggestions, `Mention "Terraform" if it reflects your experience`)
}

func TestScore_NilInputs(t *testing.T) {
	result := Score(nil, nil)

	assert.Equal(t, 0, result.Score)
	assert.NotNil(t, result.FoundKeywords)
	assert.NotNil(t, result.MissingKeywords)
}

func TestScore_NoKeywordsRescalesSections(t *testing.T) {
	result := Score(fullResume(), nil)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 0, result.Sections.Keywords)

	resume := fullResume()
	resume.Summary = ""
	result = Score(resume, &types.JobRequirements{})
	// 55 of 70 section points
	assert.Equal(t, 79, result.Score)
}

func TestScore_PartialOverlap(t *testing.T) {
	job := &types.JobRequirements{Keywords: []string{"Go", "Rust", "Kafka", "Kubernetes"}}

	result := Score(fullResume(), job)

	assert.Equal(t, 50, result.Sections.Keywords)
	assert.Equal(t, 85, result.Score) // 70 + 0.5*30
	assert.ElementsMatch(t, []string{"Rust", "Kafka"}, result.MissingKeywords)
}

func TestScore_ExperienceCredit(t *testing.T) {
	tests := []struct {
		name       string
		experience []types.ExperienceEntry
		want       int
	}{
		{"none", nil, 0},
		{"no descriptions", []types.ExperienceEntry{{Company: "A"}, {Company: "B", Description: "  "}}, 0},
		{"one described", []types.ExperienceEntry{{Company: "A", Description: "Did things"}}, 50},
		{"two described", []types.ExperienceEntry{{Description: "x"}, {Description: "y"}}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(&types.ResumeContent{Experience: tt.experience}, nil)
			assert.Equal(t, tt.want, result.Sections.Experience)
		})
	}
}

func TestScore_SuggestionsCapMissingKeywords(t *testing.T) {
	job := &types.JobRequirements{Keywords: []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7"}}

	result := Score(fullResume(), job)

	keywordSuggestions := 0
	for _, s := range result.Suggestions {
		if len(s) > 8 && s[:8] == "Mention " {
			keywordSuggestions++
		}
	}
	assert.Equal(t, maxKeywordSuggestions, keywordSuggestions)
	assert.Len(t, result.MissingKeywords, 7)
}

func TestScore_Deterministic(t *testing.T) {
	job := &types.JobRequirements{Keywords: []string{"Go", "Rust"}}
	assert.Equal(t, Score(fullResume(), job), Score(fullResume(), job))
}
