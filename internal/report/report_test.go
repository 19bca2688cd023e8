package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bryan-cox/clockfill/internal/clockify"
	"github.com/bryan-cox/clockfill/internal/fill"
	"github.com/bryan-cox/clockfill/internal/model"
	"github.com/bryan-cox/clockfill/internal/output"
	"github.com/bryan-cox/clockfill/internal/schedule"
	"github.com/bryan-cox/clockfill/internal/timefmt"
)

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(output.NewPrinter(&buf, false))

	tuesday := model.DaySchedule{Day: 5, Weekday: time.Tuesday}
	iv := model.Span(9, 0, 10, 30)
	r.DaySkipped(model.DaySchedule{Day: 9, Weekday: time.Saturday})
	r.EntryCreated(tuesday, iv, model.TimeEntry{})
	r.EntryFailed(tuesday, iv, model.TimeEntry{}, &clockify.StatusError{StatusCode: 400, Body: `{"message":"overlap"}`})
	r.EntryFailed(tuesday, iv, model.TimeEntry{}, errors.New("connection refused"))
	r.LeaveRecorded(model.DaySchedule{Day: 6})

	got := buf.String()
	for _, want := range []string{
		"Skipping entry for day 9 (Saturday/Sunday)\n",
		"Time entry created successfully (day 5, 09:00-10:30)\n",
		"Error creating time entry. Status code: 400 (day 5, 09:00-10:30)\n",
		`{"message":"overlap"}` + "\n",
		"Error creating time entry (day 5, 09:00-10:30): connection refused\n",
		"Leave entry created for day 6 (9:00 - 17:00)\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\ngot:\n%s", want, got)
		}
	}
}

func TestPrintProjectsAndIssues(t *testing.T) {
	var buf bytes.Buffer
	PrintProjects(&buf, []model.ProjectEntry{{ID: "a", Name: "Acme"}, {ID: "b", Name: "Leave"}})
	if want := "Projects:\n1. Acme\n2. Leave\n\n"; buf.String() != want {
		t.Errorf("PrintProjects = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	PrintIssues(&buf, []model.Issue{{Key: "ABC-1", Summary: "Fix login"}})
	if want := "Jira Issues Assigned:\n1. [ABC-1]: Fix login\n\n"; buf.String() != want {
		t.Errorf("PrintIssues = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	PrintIssues(&buf, nil)
	if want := "No unresolved Jira issues assigned.\n"; buf.String() != want {
		t.Errorf("PrintIssues(nil) = %q, want %q", buf.String(), want)
	}
}

func TestPrintSchedule(t *testing.T) {
	days, err := schedule.Generate("P1", nil, 2024, time.March, 8, 9)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	f := timefmt.Formatter{Year: 2024, Offset: timefmt.DefaultOffset}
	if err := PrintSchedule(&buf, days, f, time.March); err != nil {
		t.Fatalf("PrintSchedule: %v", err)
	}

	want := strings.Join([]string{
		"2024-03-08  Friday",
		"    09:00-11:30  2024-03-08T03:30:00Z -> 2024-03-08T06:00:00Z",
		"    13:00-18:00  2024-03-08T07:30:00Z -> 2024-03-08T12:30:00Z",
		"2024-03-09  skipped (Saturday)",
		"",
		"Total: 2 entries, 7h30m",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("PrintSchedule =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestPrintScheduleLeave(t *testing.T) {
	days, err := schedule.Generate("L1", schedule.NewLeaveSet("L1"), 2024, time.March, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := PrintSchedule(&buf, days, timefmt.Formatter{Year: 2024}, time.March); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "2024-03-04  Monday, leave\n    09:00-17:00  2024-03-04T09:00:00Z -> 2024-03-04T17:00:00Z\n") {
		t.Errorf("unexpected leave schedule:\n%s", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "Total: 1 entries, 8h\n") {
		t.Errorf("unexpected total:\n%s", buf.String())
	}
}

func TestPrintSearchResults(t *testing.T) {
	results := []clockify.WorkspaceMatches{
		{
			Workspace: model.Workspace{ID: "w1", Name: "Main"},
			Scanned:   3,
			Matches:   []model.ProjectEntry{{ID: "p1", Name: "Acme Portal"}},
		},
		{Workspace: model.Workspace{ID: "w2", Name: "Side"}, Scanned: 2},
		{Workspace: model.Workspace{ID: "w3", Name: "Empty"}},
	}
	var buf bytes.Buffer
	PrintSearchResults(&buf, " ACME ", results)

	want := strings.Join([]string{
		"Workspace: Main (ID: w1)",
		"Matching Projects:",
		" - Acme Portal (ID: p1)",
		Separator,
		"Workspace: Side (ID: w2)",
		"Matching Projects:",
		"No projects match the search term 'acme'.",
		Separator,
		"Workspace: Empty (ID: w3)",
		"No projects found in this workspace.",
		Separator,
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("PrintSearchResults =\n%s\nwant\n%s", buf.String(), want)
	}

	buf.Reset()
	PrintSearchResults(&buf, "x", nil)
	if buf.String() != "No workspaces found.\n" {
		t.Errorf("PrintSearchResults(nil) = %q", buf.String())
	}

	if got := MatchLines(results); got != "Acme Portal\tp1\n" {
		t.Errorf("MatchLines = %q", got)
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := output.NewPrinter(&buf, false)
	PrintSummary(p, fill.Summary{Days: 5, Skipped: 2, Attempted: 11, Created: 11})
	if !strings.Contains(buf.String(), "Created 11 of 11 time entries\n") {
		t.Errorf("unexpected summary:\n%s", buf.String())
	}

	buf.Reset()
	PrintSummary(p, fill.Summary{
		Days: 1, Attempted: 2, Created: 0,
		Failures: []fill.Failure{
			{Day: 4, Interval: model.Span(13, 30, 17, 0), Err: errors.New("timeout")},
			{Day: 4, Interval: model.Span(9, 0, 13, 0), Err: &clockify.StatusError{StatusCode: 400}},
		},
	})
	got := buf.String()
	want := "Created 0 of 2 time entries, 2 failed\n  no response:\n    day 4 13:30-17:00\n  status 400:\n    day 4 09:00-13:00\n"
	if !strings.HasSuffix(got, want) {
		t.Errorf("summary =\n%s\nwant suffix\n%s", got, want)
	}
}

func TestCategorizeFailures(t *testing.T) {
	groups := CategorizeFailures([]fill.Failure{
		{Day: 1, Err: &clockify.StatusError{StatusCode: 401}},
		{Day: 2, Err: &clockify.StatusError{StatusCode: 401}},
		{Day: 3, Err: errors.New("eof")},
	})
	if len(groups[401]) != 2 || len(groups[0]) != 1 {
		t.Errorf("groups = %v", groups)
	}
}
