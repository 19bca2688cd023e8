package timefmt_test

import (
	"errors"
	"testing"
	"time"

	"github.com/bryan-cox/clockfill/internal/model"
	"github.com/bryan-cox/clockfill/internal/timefmt"
)

func TestFormatDefaultOffset(t *testing.T) {
	f := timefmt.Formatter{Year: 2024, Offset: timefmt.DefaultOffset}
	tests := []struct {
		month     time.Month
		day, h, m int
		want      string
	}{
		{time.March, 5, 9, 0, "2024-03-05T03:30:00Z"},
		{time.March, 5, 10, 30, "2024-03-05T05:00:00Z"},
		{time.March, 5, 17, 0, "2024-03-05T11:30:00Z"},
		{time.March, 8, 18, 0, "2024-03-08T12:30:00Z"},
		// Shifting back crosses into the previous day and year.
		{time.January, 1, 2, 0, "2023-12-31T20:30:00Z"},
		{time.February, 29, 0, 0, "2024-02-28T18:30:00Z"},
	}
	for _, tt := range tests {
		got, err := f.Format(tt.month, tt.day, tt.h, tt.m)
		if err != nil {
			t.Fatalf("Format(%v, %d, %d, %d): %v", tt.month, tt.day, tt.h, tt.m, err)
		}
		if got != tt.want {
			t.Errorf("Format(%v, %d, %d, %d) = %q, want %q", tt.month, tt.day, tt.h, tt.m, got, tt.want)
		}
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	f := timefmt.Formatter{Year: 2025, Offset: timefmt.DefaultOffset}
	first, err := f.Format(time.June, 10, 13, 30)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := f.Format(time.June, 10, 13, 30)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("Format not stable: %q then %q", first, again)
		}
	}
}

func TestFormatInvalidDate(t *testing.T) {
	f := timefmt.Formatter{Year: 2023, Offset: timefmt.DefaultOffset}
	cases := []struct {
		month     time.Month
		day, h, m int
	}{
		{time.February, 29, 9, 0},
		{time.February, 30, 9, 0},
		{time.April, 31, 9, 0},
		{time.March, 0, 9, 0},
		{time.Month(13), 1, 9, 0},
		{time.March, 1, 24, 0},
		{time.March, 1, 9, 60},
	}
	for _, c := range cases {
		_, err := f.Format(c.month, c.day, c.h, c.m)
		if !errors.Is(err, model.ErrInvalidDate) {
			t.Errorf("Format(%v, %d, %d, %d) error = %v, want ErrInvalidDate", c.month, c.day, c.h, c.m, err)
		}
	}
}

func TestFormatWithLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+30*60)
	f := timefmt.Formatter{Year: 2024, Location: loc}
	got, err := f.Format(time.March, 5, 9, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "2024-03-05T03:30:00Z" {
		t.Errorf("Format = %q, want %q", got, "2024-03-05T03:30:00Z")
	}

	f = timefmt.Formatter{Year: 2024, Location: time.UTC}
	got, err = f.Format(time.March, 5, 9, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "2024-03-05T09:00:00Z" {
		t.Errorf("Format = %q, want %q", got, "2024-03-05T09:00:00Z")
	}
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in       string
		want     time.Duration
		wantZone bool
	}{
		{"", timefmt.DefaultOffset, false},
		{"+05:30", 5*time.Hour + 30*time.Minute, false},
		{"05:30", 5*time.Hour + 30*time.Minute, false},
		{"-04:00", -4 * time.Hour, false},
		{"+00:00", 0, false},
		{"local", 0, true},
		{"UTC", 0, true},
	}
	for _, tt := range tests {
		d, loc, err := timefmt.ParseOffset(tt.in)
		if err != nil {
			t.Fatalf("ParseOffset(%q): %v", tt.in, err)
		}
		if (loc != nil) != tt.wantZone {
			t.Errorf("ParseOffset(%q) location = %v, wantZone %v", tt.in, loc, tt.wantZone)
		}
		if d != tt.want {
			t.Errorf("ParseOffset(%q) = %v, want %v", tt.in, d, tt.want)
		}
	}

	for _, bad := range []string{"+5", "+25:00", "+05:75", "Not/AZone"} {
		if _, _, err := timefmt.ParseOffset(bad); !errors.Is(err, model.ErrConfig) {
			t.Errorf("ParseOffset(%q) error = %v, want ErrConfig", bad, err)
		}
	}
}

func TestNewUsesCurrentYear(t *testing.T) {
	now := time.Date(2031, 7, 4, 12, 0, 0, 0, time.UTC)
	f, err := timefmt.New(now, "")
	if err != nil {
		t.Fatal(err)
	}
	if f.Year != 2031 {
		t.Errorf("Year = %d, want 2031", f.Year)
	}
	if f.Offset != timefmt.DefaultOffset || f.Location != nil {
		t.Errorf("New with empty offset = %+v, want default fixed offset", f)
	}
}

func TestDaysIn(t *testing.T) {
	if got := timefmt.DaysIn(2024, time.February); got != 29 {
		t.Errorf("DaysIn(2024, Feb) = %d, want 29", got)
	}
	if got := timefmt.DaysIn(2023, time.February); got != 28 {
		t.Errorf("DaysIn(2023, Feb) = %d, want 28", got)
	}
	if got := timefmt.DaysIn(2024, time.December); got != 31 {
		t.Errorf("DaysIn(2024, Dec) = %d, want 31", got)
	}
}
