// Package progress computes weekly assignment progress and journaling streaks.
// Everything here is pure: callers fetch the rows and pass timestamps in, which
// keeps the dashboard math testable without a database.
package progress

import (
	"math"
	"sort"
	"time"
)

// DefaultWeeklyGoal is the fallback target when an assignment has no goal set.
const DefaultWeeklyGoal = 3

// Weekly is the per-assignment completion ratio for the current week.
type Weekly struct {
	Completed  int `json:"completed"`
	Target     int `json:"target"`
	Percentage int `json:"percentage"`
}

// WeekStart returns local midnight of the most recent Monday on or before now.
// The week window is Monday-start everywhere; [WeekStart, WeekStart+7d).
func WeekStart(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// time.Weekday has Sunday=0; shift so Monday=0.
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

// ComputeWeeklyProgress counts entries inside the current week window against
// the goal. A non-positive goal falls back to DefaultWeeklyGoal so the ratio
// never divides by zero. Percentage is clamped to [0, 100].
func ComputeWeeklyProgress(goal int, entries []time.Time, now time.Time) Weekly {
	if goal <= 0 {
		goal = DefaultWeeklyGoal
	}

	start := WeekStart(now)
	end := start.AddDate(0, 0, 7)

	completed := 0
	for _, t := range entries {
		if !t.Before(start) && t.Before(end) {
			completed++
		}
	}

	pct := int(math.Round(100 * float64(completed) / float64(goal)))
	if pct > 100 {
		pct = 100
	}

	return Weekly{Completed: completed, Target: goal, Percentage: pct}
}

// ComputeStreak returns the number of consecutive calendar days ending today
// with at least one entry. A day without an entry breaks the run, and that
// includes today: until today's entry is made the streak reads 0.
func ComputeStreak(entries []time.Time, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	seen := make(map[time.Time]struct{}, len(entries))
	for _, t := range entries {
		local := t.In(now.Location())
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, now.Location())
		seen[day] = struct{}{}
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		if !d.After(today) {
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 0
	for _, d := range days {
		expected := today.AddDate(0, 0, -streak)
		if !d.Equal(expected) {
			break
		}
		streak++
	}
	return streak
}
