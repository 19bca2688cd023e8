// Package schedule maps a project and a day range onto the fixed per-weekday
// time entry templates.
package schedule

import (
	"time"

	"github.com/bryan-cox/clockfill/internal/model"
	"github.com/bryan-cox/clockfill/internal/timefmt"
)

// LeaveSet holds the project IDs tracked as whole-day leave.
type LeaveSet map[string]struct{}

// NewLeaveSet builds a LeaveSet from project IDs.
func NewLeaveSet(ids ...string) LeaveSet {
	set := make(LeaveSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether id is a leave project.
func (s LeaveSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Day templates. The break boundaries are business policy and must not drift.
var (
	leaveDay = []model.Interval{
		model.Span(9, 0, 17, 0),
	}
	tuesday = []model.Interval{
		model.Span(9, 0, 10, 30),
		model.Span(11, 0, 13, 0),
		model.Span(13, 30, 17, 0),
	}
	friday = []model.Interval{
		model.Span(9, 0, 11, 30),
		model.Span(13, 0, 18, 0),
	}
	regularDay = []model.Interval{
		model.Span(9, 0, 13, 0),
		model.Span(13, 30, 17, 0),
	}
)

// IsWeekend reports whether wd is Saturday or Sunday.
func IsWeekend(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}

// Template returns a copy of the intervals for a weekday. Weekends have no
// intervals; leave days get a single 09:00-17:00 block on any weekday.
func Template(wd time.Weekday, leave bool) []model.Interval {
	var tmpl []model.Interval
	switch {
	case IsWeekend(wd):
		return nil
	case leave:
		tmpl = leaveDay
	case wd == time.Tuesday:
		tmpl = tuesday
	case wd == time.Friday:
		tmpl = friday
	default:
		tmpl = regularDay
	}
	out := make([]model.Interval, len(tmpl))
	copy(out, tmpl)
	return out
}

// Generate returns one DaySchedule per day in [startDay, endDay] of month in
// year, in ascending order. An empty range yields no days; a day that does not
// exist in the month fails with model.ErrInvalidDate before anything is built.
func Generate(projectID string, leave LeaveSet, year int, month time.Month, startDay, endDay int) ([]model.DaySchedule, error) {
	if startDay > endDay {
		return nil, nil
	}

	isLeave := leave.Contains(projectID)
	days := make([]model.DaySchedule, 0, endDay-startDay+1)
	for d := startDay; d <= endDay; d++ {
		date, err := timefmt.Date(year, month, d, time.UTC)
		if err != nil {
			return nil, err
		}
		wd := date.Weekday()
		day := model.DaySchedule{
			Day:     d,
			Date:    date,
			Weekday: wd,
		}
		if IsWeekend(wd) {
			day.Skipped = true
		} else {
			day.Leave = isLeave
			day.Intervals = Template(wd, isLeave)
		}
		days = append(days, day)
	}
	return days, nil
}

// CountIntervals returns the total number of intervals across days.
func CountIntervals(days []model.DaySchedule) int {
	n := 0
	for _, d := range days {
		n += len(d.Intervals)
	}
	return n
}

// Worked returns the total scheduled duration across days.
func Worked(days []model.DaySchedule) time.Duration {
	var total time.Duration
	for _, d := range days {
		for _, iv := range d.Intervals {
			total += iv.Duration()
		}
	}
	return total
}
