package validator

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Date is a calendar day anchored at UTC midnight. Leave balance arithmetic
// works in whole days, so Date keeps time-of-day and timezone components out
// of the domain entirely: two callers handing in the same calendar day always
// produce the same Date regardless of their local clock.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar day, re-anchored at UTC midnight.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(dateStr string) (Date, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time.AddDate(0, 0, n))
}

// DaysBetween returns the number of whole days from d to u.
// Negative when u is before d. Both operands are UTC midnights, so the
// division is always exact.
func DaysBetween(d, u Date) int {
	return int(u.Time.Sub(d.Time) / (24 * time.Hour))
}

// WeekStart returns the Sunday starting the calendar week containing d.
func (d Date) WeekStart() Date {
	return d.AddDays(-int(d.Weekday()))
}

// WeekEnd returns the Saturday ending the calendar week containing d.
func (d Date) WeekEnd() Date {
	return d.WeekStart().AddDays(6)
}

// MonthStart returns the first day of the month containing d.
func (d Date) MonthStart() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// MonthEnd returns the last day of the month containing d.
func (d Date) MonthEnd() Date {
	return DateOf(d.MonthStart().Time.AddDate(0, 1, -1))
}

// Before reports whether the date d is before u.
func (d Date) Before(u Date) bool {
	return d.Time.Before(u.Time)
}

// After reports whether the date d is after u.
func (d Date) After(u Date) bool {
	return d.Time.After(u.Time)
}

// Equal reports whether d and u are the same calendar day.
func (d Date) Equal(u Date) bool {
	return d.Time.Equal(u.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %q", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so Date maps onto SQL date columns.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// Scan implements sql.Scanner, normalizing whatever the driver hands back.
func (d *Date) Scan(value interface{}) error {
	if value == nil {
		*d = Date{}
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("failed to scan Date: unsupported type %T", value)
	}
}
