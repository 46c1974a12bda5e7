package graph

import (
	"errors"
	"fmt"
)

// Date errors.
var (
	ErrInvalidMonth = errors.New("month out of range")
	ErrInvalidDay   = errors.New("day out of range")
)

// Date is a calendar date with no time zone or time-of-day component.
// The zero value is not a valid date; construct one with NewDate.
type Date struct {
	Year  int32
	Month uint8 // 1-12
	Day   uint8 // 1 to the month's length
}

// daysIn returns the number of days in the given month, accounting for
// leap years.
func daysIn(year int32, month uint8) uint8 {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// NewDate constructs a validated calendar date. Out-of-range fields are
// rejected, never clamped.
func NewDate(year int32, month, day uint8) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month %d: %w", month, ErrInvalidMonth)
	}
	if day < 1 || day > daysIn(year, month) {
		return Date{}, fmt.Errorf("day %d of month %d in year %d: %w", day, month, year, ErrInvalidDay)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// Valid reports whether the date's fields form a real calendar date.
func (d Date) Valid() bool {
	_, err := NewDate(d.Year, d.Month, d.Day)
	return err == nil
}

// String returns the date in ISO 8601 form (yyyy-mm-dd).
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
