package report

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bryan-cox/clockfill/internal/clockify"
	"github.com/bryan-cox/clockfill/internal/fill"
	"github.com/bryan-cox/clockfill/internal/output"
)

// transportKey groups failures that never got an HTTP answer.
const transportKey = 0

// CategorizeFailures groups failed entries by the HTTP status the service
// answered with. Failures without a status are grouped under 0.
func CategorizeFailures(failures []fill.Failure) map[int][]fill.Failure {
	groups := make(map[int][]fill.Failure)
	for _, f := range failures {
		key := transportKey
		var statusErr *clockify.StatusError
		if errors.As(f.Err, &statusErr) {
			key = statusErr.StatusCode
		}
		groups[key] = append(groups[key], f)
	}
	return groups
}

// PrintSummary prints the end-of-run counts and, when something failed,
// the failed entries grouped by status.
func PrintSummary(p *output.Printer, sum fill.Summary) {
	p.Println()
	p.Println(fmt.Sprintf("Days filled: %d, weekend days skipped: %d", sum.Days, sum.Skipped))
	if len(sum.Failures) == 0 {
		p.Success("Created %d of %d time entries", sum.Created, sum.Attempted)
		return
	}
	p.Failure("Created %d of %d time entries, %d failed", sum.Created, sum.Attempted, len(sum.Failures))

	groups := CategorizeFailures(sum.Failures)
	codes := make([]int, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		if code == transportKey {
			p.Heading("  no response:")
		} else {
			p.Heading("  status %d:", code)
		}
		for _, f := range groups[code] {
			p.Println(fmt.Sprintf("    day %d %s", f.Day, f.Interval))
		}
	}
}
