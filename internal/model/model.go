// Package model defines the core data structures for clockfill.
package model

import (
	"fmt"
	"time"
)

// ProjectEntry identifies a trackable project in the time-tracking service.
type ProjectEntry struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Workspace is a top-level container of projects in the time-tracking service.
type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Clock is a local wall-clock time of day.
type Clock struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// At returns the Clock for hour:minute.
func At(hour, minute int) Clock {
	return Clock{Hour: hour, Minute: minute}
}

// String renders the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns the number of minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Interval is a contiguous start/end pair within one calendar day.
type Interval struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// Span returns the interval's start and end as Clock values.
func Span(startHour, startMinute, endHour, endMinute int) Interval {
	return Interval{Start: At(startHour, startMinute), End: At(endHour, endMinute)}
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration {
	return time.Duration(i.End.Minutes()-i.Start.Minutes()) * time.Minute
}

// String renders the interval as HH:MM-HH:MM.
func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}

// DaySchedule holds the intervals generated for one calendar day.
type DaySchedule struct {
	Day       int          `json:"day"`
	Date      time.Time    `json:"date"`
	Weekday   time.Weekday `json:"weekday"`
	Skipped   bool         `json:"skipped"`
	Leave     bool         `json:"leave"`
	Intervals []Interval   `json:"intervals"`
}

// TimeEntry is the unit submitted to the time-tracking service.
type TimeEntry struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
	ProjectID   string `json:"projectId"`
	Billable    bool   `json:"billable"`
}

// Issue is an open issue assigned to the current user.
type Issue struct {
	Key     string `json:"key"`
	Summary string `json:"summary"`
}

// Label renders the issue the way it is used as a time entry description.
func (i Issue) Label() string {
	return fmt.Sprintf("[%s]: %s", i.Key, i.Summary)
}
