// Package types provides type definitions for structured data used throughout the climb service.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Stage is one label in the fixed application lifecycle.
type Stage string

// Stage constants
const (
	StageApplied   Stage = "applied"
	StageScreening Stage = "screening"
	StageInterview Stage = "interview"
	StageOffer     Stage = "offer"
	StageRejected  Stage = "rejected"
	StageWithdrawn Stage = "withdrawn"
)

// AllStages lists every stage in pipeline order.
var AllStages = []Stage{
	StageApplied,
	StageScreening,
	StageInterview,
	StageOffer,
	StageRejected,
	StageWithdrawn,
}

// ParseStage converts a raw status string into a Stage.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseStage(raw string) (Stage, error) {
	s := Stage(strings.ToLower(strings.TrimSpace(raw)))
	for _, stage := range AllStages {
		if s == stage {
			return stage, nil
		}
	}
	return "", fmt.Errorf("unknown application stage: %q", raw)
}

// IsValid reports whether s is one of the known stages.
func (s Stage) IsValid() bool {
	_, err := ParseStage(string(s))
	return err == nil
}

// ApplicationRecord is a read-only snapshot of one tracked application.
// Only the fields the forecast calculators consume are carried.
type ApplicationRecord struct {
	Status      Stage      `json:"status" validate:"required,oneof=applied screening interview offer rejected withdrawn"`
	AppliedDate *time.Time `json:"applied_date,omitempty"`
	CreatedDate *time.Time `json:"created_date,omitempty"`
}

// EffectiveDate returns the date the application entered the pipeline:
// the applied date if set, otherwise the created date.
func (r ApplicationRecord) EffectiveDate() (time.Time, bool) {
	if r.AppliedDate != nil && !r.AppliedDate.IsZero() {
		return *r.AppliedDate, true
	}
	if r.CreatedDate != nil && !r.CreatedDate.IsZero() {
		return *r.CreatedDate, true
	}
	return time.Time{}, false
}

// StageCounts holds the number of applications currently in each stage.
type StageCounts map[Stage]int

// Total returns the sum across all stages.
func (c StageCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
