package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/softstreaks/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// FormatDate returns the calendar date of t in loc as YYYY-MM-DD.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(constants.DateFormat)
}

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return FormatDate(time.Now(), loc), nil
}

// ParseDate parses a YYYY-MM-DD string as midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ValidateDate checks if the string is a well-formed calendar date.
func ValidateDate(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// DaysBetween returns the number of whole calendar days from one date to another.
// Both dates are aligned to midnight UTC so DST transitions cannot skew the result.
func DaysBetween(from, to string) (int, error) {
	start, err := ParseDate(from)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", from, err)
	}
	end, err := ParseDate(to)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", to, err)
	}
	return int(math.Round(end.Sub(start).Hours() / 24)), nil
}

// PrettyDate renders a date like "Monday, January 2".
func PrettyDate(t time.Time) string {
	return t.Format("Monday, January 2")
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
