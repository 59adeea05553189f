// Package forecast derives pipeline rates from an application history and projects
// expected interviews and offers forward. Every function here is pure: no I/O,
// no hidden state, and no error returns, so callers can render whatever comes back.
package forecast

import (
	"math"
	"time"

	"github.com/jonathan/climb/internal/types"
)

// MinApplicationsPerWeek is the floor applied to a non-empty history's weekly average.
const MinApplicationsPerWeek = 0.1

const secondsPerWeek = 7 * 24 * 60 * 60

// Stage sets used by the rate definitions. A record counts toward a rate when its
// current stage is the target stage or a later one on the success path.
var (
	respondedStages   = map[types.Stage]bool{types.StageScreening: true, types.StageInterview: true, types.StageOffer: true}
	interviewedStages = map[types.Stage]bool{types.StageInterview: true, types.StageOffer: true}
	offeredStages     = map[types.Stage]bool{types.StageOffer: true}
)

// DeriveMetrics computes weekly volume and stage conversion rates from records.
// Undated records count toward the rate denominators but not the observed span.
func DeriveMetrics(records []types.ApplicationRecord, now time.Time) types.ForecastMetrics {
	total := len(records)
	if total == 0 {
		return types.ForecastMetrics{}
	}

	var responded, interviewed, offered int
	var earliest time.Time
	for _, r := range records {
		if respondedStages[r.Status] {
			responded++
		}
		if interviewedStages[r.Status] {
			interviewed++
		}
		if offeredStages[r.Status] {
			offered++
		}
		if d, ok := r.EffectiveDate(); ok && (earliest.IsZero() || d.Before(earliest)) {
			earliest = d
		}
	}

	weeks := 1
	if !earliest.IsZero() {
		weeks = isoWeeksSpanned(earliest, now)
	}

	avg := float64(total) / float64(weeks)
	if avg < MinApplicationsPerWeek {
		avg = MinApplicationsPerWeek
	}

	return types.ForecastMetrics{
		AvgApplicationsPerWeek: avg,
		ResponseRate:           ratio(responded, total),
		InterviewRate:          ratio(interviewed, total),
		OfferRate:              ratio(offered, total),
		TotalApplications:      total,
		ObservedWeeks:          weeks,
	}
}

// CountStages returns how many records sit in each stage. Every known stage is
// present in the result, zero-valued when absent from records.
func CountStages(records []types.ApplicationRecord) types.StageCounts {
	counts := make(types.StageCounts, len(types.AllStages))
	for _, s := range types.AllStages {
		counts[s] = 0
	}
	for _, r := range records {
		if r.Status.IsValid() {
			counts[r.Status]++
		}
	}
	return counts
}

// isoWeeksSpanned counts the distinct ISO weeks from the week containing from to the
// week containing to, inclusive. Never less than 1.
func isoWeeksSpanned(from, to time.Time) int {
	start := isoWeekStart(from)
	end := isoWeekStart(to)
	if !end.After(start) {
		return 1
	}
	// whole seconds; time.Duration saturates past ~292 years
	return int((end.Unix()-start.Unix())/secondsPerWeek) + 1
}

// isoWeekStart returns midnight UTC of the Monday that starts t's ISO week.
func isoWeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
}

func ratio(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return clampUnit(float64(n) / float64(total))
}

// clampUnit bounds v to [0, 1], coercing NaN to 0.
func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
