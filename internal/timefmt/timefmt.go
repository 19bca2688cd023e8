// Package timefmt converts local wall-clock times into the UTC timestamp
// strings accepted by the time-tracking service.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bryan-cox/clockfill/internal/model"
)

// Layout is the timestamp layout sent to the service. A literal "Z" is
// appended after formatting.
const Layout = "2006-01-02T15:04:05"

// DefaultOffset is the fixed local offset subtracted from wall-clock times
// when no offset is configured.
const DefaultOffset = 5*time.Hour + 30*time.Minute

// Formatter turns (month, day, hour, minute) in a fixed year into UTC
// timestamp strings.
//
// When Location is nil the wall-clock time is shifted back by Offset and
// marked with "Z" as is, without consulting any time zone database.
// When Location is set the time is interpreted in that location and
// converted to real UTC.
type Formatter struct {
	Year     int
	Offset   time.Duration
	Location *time.Location
}

// New returns a Formatter for the year of now. The offset string accepts
// "" (DefaultOffset), a signed "+HH:MM"/"-HH:MM", "local" or an IANA zone name.
func New(now time.Time, offset string) (Formatter, error) {
	d, loc, err := ParseOffset(offset)
	if err != nil {
		return Formatter{}, err
	}
	return Formatter{Year: now.Year(), Offset: d, Location: loc}, nil
}

// ParseOffset interprets a configured UTC offset. Exactly one of the
// returned duration and location is meaningful: a nil location means the
// fixed duration applies.
func ParseOffset(s string) (time.Duration, *time.Location, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return DefaultOffset, nil, nil
	case strings.EqualFold(s, "local"):
		return 0, time.Local, nil
	case s[0] == '+' || s[0] == '-' || (s[0] >= '0' && s[0] <= '9'):
		d, err := parseHHMM(s)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: invalid UTC offset %q: %v", model.ErrConfig, s, err)
		}
		return d, nil, nil
	}
	loc, err := time.LoadLocation(s)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: invalid UTC offset %q: %v", model.ErrConfig, s, err)
	}
	return 0, loc, nil
}

func parseHHMM(s string) (time.Duration, error) {
	sign := time.Duration(1)
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("expected [+|-]HH:MM")
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 14 {
		return 0, fmt.Errorf("hours must be 0-14")
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("minutes must be 0-59")
	}
	return sign * (time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), nil
}

// Date builds midnight of year-month-day in loc, rejecting dates that
// time.Date would silently normalise (Feb 30, day 0, month 13).
func Date(year int, month time.Month, day int, loc *time.Location) (time.Time, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d", model.ErrInvalidDate, year, int(month), day)
	}
	return t, nil
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Time returns the UTC instant for the given local wall-clock time.
func (f Formatter) Time(month time.Month, day, hour, minute int) (time.Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: time %02d:%02d out of range", model.ErrInvalidDate, hour, minute)
	}
	if _, err := Date(f.Year, month, day, time.UTC); err != nil {
		return time.Time{}, err
	}
	if f.Location != nil {
		return time.Date(f.Year, month, day, hour, minute, 0, 0, f.Location).UTC(), nil
	}
	wall := time.Date(f.Year, month, day, hour, minute, 0, 0, time.UTC)
	return wall.Add(-f.Offset), nil
}

// Format returns the UTC timestamp string for the given local wall-clock time.
func (f Formatter) Format(month time.Month, day, hour, minute int) (string, error) {
	t, err := f.Time(month, day, hour, minute)
	if err != nil {
		return "", err
	}
	return t.Format(Layout) + "Z", nil
}

// Clock formats a model.Clock on the given day.
func (f Formatter) Clock(month time.Month, day int, c model.Clock) (string, error) {
	return f.Format(month, day, c.Hour, c.Minute)
}
