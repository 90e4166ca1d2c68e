// Package clock provides the business-zone "now" shared by the services.
package clock

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

type Clock struct {
	now func() time.Time
	loc *time.Location
}

// New returns a clock in loc. A nil now uses time.Now.
func New(loc *time.Location, now func() time.Time) *Clock {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, loc: loc}
}

// Fixed always reports t; used by tests and the seeder.
func Fixed(t time.Time) *Clock {
	return New(t.Location(), func() time.Time { return t })
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Today is the current date as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.Now().Format(DateLayout)
}

// TimeOfDay is the current time as HH:MM:SS.
func (c *Clock) TimeOfDay() string {
	return c.Now().Format(TimeLayout)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseTimeOfDay accepts HH:MM:SS and HH:MM.
func ParseTimeOfDay(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM:SS", s)
	}
	return t, nil
}

// NormalizeTimeOfDay rewrites HH:MM as HH:MM:SS.
func NormalizeTimeOfDay(s string) (string, error) {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return "", err
	}
	return t.Format(TimeLayout), nil
}

// HoursBetween is the span from entrance to exit in fractional hours.
// An exit earlier than the entrance is read as crossing midnight.
func HoursBetween(entrance, exit string) (float64, error) {
	in, err := ParseTimeOfDay(entrance)
	if err != nil {
		return 0, err
	}
	out, err := ParseTimeOfDay(exit)
	if err != nil {
		return 0, err
	}
	d := out.Sub(in)
	if d < 0 {
		d += 24 * time.Hour
	}
	return d.Hours(), nil
}
