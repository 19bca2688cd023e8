// Package report renders fill progress, plans and search results as text.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bryan-cox/clockfill/internal/clockify"
	"github.com/bryan-cox/clockfill/internal/model"
	"github.com/bryan-cox/clockfill/internal/output"
	"github.com/bryan-cox/clockfill/internal/schedule"
	"github.com/bryan-cox/clockfill/internal/timefmt"
)

// Separator closes each workspace block in search output.
var Separator = strings.Repeat("-", 50)

// TextReporter prints fill progress line by line as entries are submitted.
type TextReporter struct {
	p *output.Printer
}

// NewTextReporter returns a TextReporter writing through p.
func NewTextReporter(p *output.Printer) *TextReporter {
	return &TextReporter{p: p}
}

// DaySkipped reports a weekend day.
func (r *TextReporter) DaySkipped(day model.DaySchedule) {
	r.p.Dim("Skipping entry for day %d (Saturday/Sunday)", day.Day)
}

// EntryCreated reports an accepted entry.
func (r *TextReporter) EntryCreated(day model.DaySchedule, iv model.Interval, _ model.TimeEntry) {
	r.p.Success("Time entry created successfully (day %d, %s)", day.Day, iv)
}

// EntryFailed reports a rejected entry along with the service's answer.
func (r *TextReporter) EntryFailed(day model.DaySchedule, iv model.Interval, _ model.TimeEntry, err error) {
	var statusErr *clockify.StatusError
	if errors.As(err, &statusErr) {
		r.p.Failure("Error creating time entry. Status code: %d (day %d, %s)", statusErr.StatusCode, day.Day, iv)
		if body := strings.TrimSpace(statusErr.Body); body != "" {
			r.p.Println(body)
		}
		return
	}
	r.p.Failure("Error creating time entry (day %d, %s): %v", day.Day, iv, err)
}

// LeaveRecorded reports a completed leave day.
func (r *TextReporter) LeaveRecorded(day model.DaySchedule) {
	r.p.Println(fmt.Sprintf("Leave entry created for day %d (9:00 - 17:00)", day.Day))
}

// PrintProjects prints the numbered project list shown before prompting.
func PrintProjects(out io.Writer, projects []model.ProjectEntry) {
	fmt.Fprintln(out, "Projects:")
	for i, p := range projects {
		fmt.Fprintf(out, "%d. %s\n", i+1, p.Name)
	}
	fmt.Fprintln(out)
}

// PrintIssues prints the numbered JIRA issue list shown before prompting.
func PrintIssues(out io.Writer, issues []model.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(out, "No unresolved Jira issues assigned.")
		return
	}
	fmt.Fprintln(out, "Jira Issues Assigned:")
	for i, issue := range issues {
		fmt.Fprintf(out, "%d. %s\n", i+1, issue.Label())
	}
	fmt.Fprintln(out)
}

// PrintSchedule prints every interval a fill would submit with its local
// time and the timestamps sent to the service.
func PrintSchedule(out io.Writer, days []model.DaySchedule, f timefmt.Formatter, month time.Month) error {
	for _, day := range days {
		if day.Skipped {
			fmt.Fprintf(out, "%s  skipped (%s)\n", day.Date.Format("2006-01-02"), day.Weekday)
			continue
		}
		label := day.Weekday.String()
		if day.Leave {
			label += ", leave"
		}
		fmt.Fprintf(out, "%s  %s\n", day.Date.Format("2006-01-02"), label)
		for _, iv := range day.Intervals {
			start, err := f.Clock(month, day.Day, iv.Start)
			if err != nil {
				return err
			}
			end, err := f.Clock(month, day.Day, iv.End)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "    %s  %s -> %s\n", iv, start, end)
		}
	}
	fmt.Fprintf(out, "\nTotal: %d entries, %s\n", schedule.CountIntervals(days), formatHours(schedule.Worked(days)))
	return nil
}

// PrintSearchResults prints one block per workspace.
func PrintSearchResults(out io.Writer, term string, results []clockify.WorkspaceMatches) {
	if len(results) == 0 {
		fmt.Fprintln(out, "No workspaces found.")
		return
	}
	needle := strings.ToLower(strings.TrimSpace(term))
	for _, res := range results {
		fmt.Fprintf(out, "Workspace: %s (ID: %s)\n", res.Workspace.Name, res.Workspace.ID)
		switch {
		case res.Err != nil && res.Scanned == 0:
			fmt.Fprintf(out, "Error fetching projects: %v\n", res.Err)
		case res.Scanned == 0:
			fmt.Fprintln(out, "No projects found in this workspace.")
		default:
			fmt.Fprintln(out, "Matching Projects:")
			if len(res.Matches) == 0 {
				fmt.Fprintf(out, "No projects match the search term '%s'.\n", needle)
			}
			for _, p := range res.Matches {
				fmt.Fprintf(out, " - %s (ID: %s)\n", p.Name, p.ID)
			}
			if res.Err != nil {
				fmt.Fprintf(out, "Listing stopped early: %v\n", res.Err)
			}
		}
		fmt.Fprintln(out, Separator)
	}
}

// MatchLines renders every match as "name<TAB>id", one per line.
func MatchLines(results []clockify.WorkspaceMatches) string {
	var b strings.Builder
	for _, res := range results {
		for _, p := range res.Matches {
			fmt.Fprintf(&b, "%s\t%s\n", p.Name, p.ID)
		}
	}
	return b.String()
}

func formatHours(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
