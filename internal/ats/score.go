// Package ats scores a resume the way a simple applicant tracking system would:
// section presence checks plus case-insensitive keyword overlap with a job.
package ats

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/climb/internal/types"
)

// Section weights. They sum to 100; keywordWeight is dropped and the rest
// rescaled when the job supplies no keywords.
const (
	summaryWeight    = 15.0
	experienceWeight = 25.0
	educationWeight  = 15.0
	skillsWeight     = 15.0
	keywordWeight    = 30.0
)

// minExperienceEntries is how many described roles earn full experience credit.
const minExperienceEntries = 2

// maxKeywordSuggestions caps how many missing keywords are echoed back as suggestions.
const maxKeywordSuggestions = 5

// Score rates resume against job and reports which target terms were found.
// Deterministic and pure; a nil job scores sections only.
func Score(resume *types.ResumeContent, job *types.JobRequirements) types.ATSResult {
	if resume == nil {
		resume = &types.ResumeContent{}
	}

	sections := types.SectionScores{
		Summary:    presence(strings.TrimSpace(resume.Summary) != ""),
		Experience: experienceScore(resume.Experience),
		Education:  presence(hasEducation(resume.Education)),
		Skills:     presence(hasSkills(resume.Skills)),
	}

	targets := TargetKeywords(job)
	found, missing := MatchKeywords(resume.Text(), targets)

	weighted := float64(sections.Summary)*summaryWeight +
		float64(sections.Experience)*experienceWeight +
		float64(sections.Education)*educationWeight +
		float64(sections.Skills)*skillsWeight
	totalWeight := summaryWeight + experienceWeight + educationWeight + skillsWeight

	if len(targets) > 0 {
		sections.Keywords = int(math.Round(float64(len(found)) / float64(len(targets)) * 100))
		weighted += float64(sections.Keywords) * keywordWeight
		totalWeight += keywordWeight
	}

	score := int(math.Round(weighted / totalWeight))
	score = min(100, max(0, score))

	return types.ATSResult{
		Score:           score,
		FoundKeywords:   found,
		MissingKeywords: missing,
		Sections:        sections,
		Suggestions:     suggestions(sections, missing),
	}
}

func presence(ok bool) int {
	if ok {
		return 100
	}
	return 0
}

// experienceScore gives full credit for two or more described roles, half for one.
func experienceScore(entries []types.ExperienceEntry) int {
	described := 0
	for _, e := range entries {
		if strings.TrimSpace(e.Description) != "" {
			described++
		}
	}
	switch {
	case described >= minExperienceEntries:
		return 100
	case described == 1:
		return 50
	default:
		return 0
	}
}

func hasEducation(entries []types.EducationEntry) bool {
	for _, e := range entries {
		if strings.TrimSpace(e.School) != "" || strings.TrimSpace(e.Degree) != "" {
			return true
		}
	}
	return false
}

func hasSkills(skills []string) bool {
	for _, s := range skills {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

func suggestions(sections types.SectionScores, missing []string) []string {
	var out []string
	if sections.Summary == 0 {
		out = append(out, "Add a professional summary at the top of the resume")
	}
	switch sections.Experience {
	case 0:
		out = append(out, "Add at least two roles with descriptions of what you did")
	case 50:
		out = append(out, "Describe at least one more role")
	}
	if sections.Education == 0 {
		out = append(out, "Add an education entry")
	}
	if sections.Skills == 0 {
		out = append(out, "List your core skills")
	}
	for i, kw := range missing {
		if i == maxKeywordSuggestions {
			break
		}
		out = append(out, fmt.Sprintf("Mention %q if it reflects your experience", kw))
	}
	return out
}
