// ABOUTME: Civil calendar date used as the bucketing key for daily aggregates.
// ABOUTME: Dates are comparable values and encode as YYYY-MM-DD.
package analysis

import (
	"fmt"
	"time"
)

// Date is a calendar day without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// utcNoon anchors arithmetic away from DST transitions.
func (d Date) utcNoon() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	y, m, day := d.utcNoon().AddDate(0, 0, n).Date()
	return Date{Year: y, Month: m, Day: day}
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.utcNoon().Weekday()
}

// YearDay returns the day of the year, 1 through 366.
func (d Date) YearDay() int {
	return d.utcNoon().YearDay()
}

// DaysUntil returns the number of days from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.utcNoon().Sub(d.utcNoon()).Hours() / 24)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText encodes the date as YYYY-MM-DD, which also makes Date
// usable as a JSON map key.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses YYYY-MM-DD.
func (d *Date) UnmarshalText(b []byte) error {
	t, err := time.Parse("2006-01-02", string(b))
	if err != nil {
		return fmt.Errorf("parse date %q: %w", b, err)
	}
	*d = DateOf(t, time.UTC)
	return nil
}

// ISOWeekday converts w to ISO numbering, Monday=1 through Sunday=7.
func ISOWeekday(w time.Weekday) int {
	if w == time.Sunday {
		return 7
	}
	return int(w)
}

// startOfWeek returns the most recent date on or before d falling on ws.
func startOfWeek(d Date, ws time.Weekday) Date {
	offset := (int(d.Weekday()) - int(ws) + 7) % 7
	return d.AddDays(-offset)
}
