package types

import "strings"

// ResumeContent is the structured body of a resume as edited by the user.
type ResumeContent struct {
	Summary    string            `json:"summary,omitempty"`
	Experience []ExperienceEntry `json:"experience,omitempty"`
	Education  []EducationEntry  `json:"education,omitempty"`
	Skills     []string          `json:"skills,omitempty"`
}

// ExperienceEntry is one employment entry on a resume.
type ExperienceEntry struct {
	Company     string `json:"company,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one education entry on a resume.
type EducationEntry struct {
	School string `json:"school,omitempty"`
	Degree string `json:"degree,omitempty"`
	Field  string `json:"field,omitempty"`
}

// Text flattens the resume into a single string for keyword matching.
func (r *ResumeContent) Text() string {
	var sb strings.Builder
	sb.WriteString(r.Summary)
	for _, e := range r.Experience {
		sb.WriteString(" ")
		sb.WriteString(e.Company)
		sb.WriteString(" ")
		sb.WriteString(e.Title)
		sb.WriteString(" ")
		sb.WriteString(e.Description)
	}
	for _, e := range r.Education {
		sb.WriteString(" ")
		sb.WriteString(e.School)
		sb.WriteString(" ")
		sb.WriteString(e.Degree)
		sb.WriteString(" ")
		sb.WriteString(e.Field)
	}
	for _, s := range r.Skills {
		sb.WriteString(" ")
		sb.WriteString(s)
	}
	return sb.String()
}

// JobRequirements are the target terms a resume is scored against.
type JobRequirements struct {
	Keywords     []string `json:"keywords,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

// SectionScores are the per-section sub-scores (each 0-100).
type SectionScores struct {
	Summary    int `json:"summary"`
	Experience int `json:"experience"`
	Education  int `json:"education"`
	Skills     int `json:"skills"`
	Keywords   int `json:"keywords"`
}

// ATSResult is the output of the ATS heuristic.
type ATSResult struct {
	Score           int           `json:"score"`
	FoundKeywords   []string      `json:"found_keywords"`
	MissingKeywords []string      `json:"missing_keywords"`
	Sections        SectionScores `json:"sections"`
	Suggestions     []string      `json:"suggestions,omitempty"`
}
