// Package fill turns a project and day range into time entries and submits
// them one by one.
package fill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bryan-cox/clockfill/internal/catalog"
	"github.com/bryan-cox/clockfill/internal/model"
	"github.com/bryan-cox/clockfill/internal/schedule"
	"github.com/bryan-cox/clockfill/internal/timefmt"
)

// Submitter creates one time entry on the remote service.
type Submitter interface {
	CreateTimeEntry(ctx context.Context, workspaceID string, entry model.TimeEntry) error
}

// Reporter is told about every outcome as it happens.
type Reporter interface {
	DaySkipped(day model.DaySchedule)
	EntryCreated(day model.DaySchedule, iv model.Interval, entry model.TimeEntry)
	EntryFailed(day model.DaySchedule, iv model.Interval, entry model.TimeEntry, err error)
	LeaveRecorded(day model.DaySchedule)
}

// RunContext carries everything a run needs. Nothing is read from globals.
type RunContext struct {
	Catalog     *catalog.Catalog
	Formatter   timefmt.Formatter
	Submitter   Submitter
	WorkspaceID string
	Reporter    Reporter
	Logger      *slog.Logger
}

// Request is the user's selection.
type Request struct {
	Project     model.ProjectEntry
	Month       time.Month
	StartDay    int
	EndDay      int
	Description string
}

// Failure records one time entry the service did not accept.
type Failure struct {
	Day      int
	Interval model.Interval
	Entry    model.TimeEntry
	Err      error
}

// Summary counts the outcomes of a run.
type Summary struct {
	Days      int
	Skipped   int
	Attempted int
	Created   int
	Failures  []Failure
}

// Err returns nil when every attempted entry was created.
func (s Summary) Err() error {
	if len(s.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(s.Failures))
	for _, f := range s.Failures {
		errs = append(errs, fmt.Errorf("day %d %s: %w", f.Day, f.Interval, f.Err))
	}
	return fmt.Errorf("%w: %d of %d failed: %w", model.ErrPartialFailure, len(s.Failures), s.Attempted, errors.Join(errs...))
}

// Plan returns the day schedules for a request without submitting anything.
func Plan(rc *RunContext, req Request) ([]model.DaySchedule, error) {
	return schedule.Generate(req.Project.ID, rc.Catalog.LeaveSet(), rc.Formatter.Year, req.Month, req.StartDay, req.EndDay)
}

// Entries builds the time entries for one day, in interval order.
func Entries(f timefmt.Formatter, month time.Month, day model.DaySchedule, projectID, description string) ([]model.TimeEntry, error) {
	entries := make([]model.TimeEntry, 0, len(day.Intervals))
	for _, iv := range day.Intervals {
		start, err := f.Clock(month, day.Day, iv.Start)
		if err != nil {
			return nil, err
		}
		end, err := f.Clock(month, day.Day, iv.End)
		if err != nil {
			return nil, err
		}
		entries = append(entries, model.TimeEntry{
			Start:       start,
			End:         end,
			Description: description,
			ProjectID:   projectID,
			Billable:    false,
		})
	}
	return entries, nil
}

// Run submits every entry of the request in chronological order, one call
// at a time. A rejected entry is reported and the run carries on; only an
// impossible date stops it, and that is detected before anything is sent.
func Run(ctx context.Context, rc *RunContext, req Request) (Summary, error) {
	logger := rc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reporter := rc.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	days, err := Plan(rc, req)
	if err != nil {
		return Summary{}, err
	}

	perDay := make([][]model.TimeEntry, len(days))
	for i, day := range days {
		perDay[i], err = Entries(rc.Formatter, req.Month, day, req.Project.ID, req.Description)
		if err != nil {
			return Summary{}, err
		}
	}

	var sum Summary
	for i, day := range days {
		if day.Skipped {
			sum.Skipped++
			reporter.DaySkipped(day)
			continue
		}
		sum.Days++
		for j, entry := range perDay[i] {
			iv := day.Intervals[j]
			sum.Attempted++
			logger.Debug("submitting time entry", "day", day.Day, "interval", iv.String(), "start", entry.Start, "end", entry.End)
			if err := rc.Submitter.CreateTimeEntry(ctx, rc.WorkspaceID, entry); err != nil {
				sum.Failures = append(sum.Failures, Failure{Day: day.Day, Interval: iv, Entry: entry, Err: err})
				reporter.EntryFailed(day, iv, entry, err)
				continue
			}
			sum.Created++
			reporter.EntryCreated(day, iv, entry)
		}
		if day.Leave {
			reporter.LeaveRecorded(day)
		}
	}

	logger.Info("fill finished",
		"project", req.Project.ID,
		"days", sum.Days,
		"skipped", sum.Skipped,
		"created", sum.Created,
		"failed", len(sum.Failures))
	return sum, nil
}

type nopReporter struct{}

func (nopReporter) DaySkipped(model.DaySchedule)                                          {}
func (nopReporter) EntryCreated(model.DaySchedule, model.Interval, model.TimeEntry)       {}
func (nopReporter) EntryFailed(model.DaySchedule, model.Interval, model.TimeEntry, error) {}
func (nopReporter) LeaveRecorded(model.DaySchedule)                                       {}
