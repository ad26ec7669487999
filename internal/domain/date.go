package domain

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the calendar date format the portal sends and receives.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// ParseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp and keeps only the calendar day.
func ParseDate(s string) (datatypes.Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return datatypes.Date(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)), nil
	}
	return datatypes.Date{}, ErrInvalidDate
}

// FormatDate renders a stored date as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}
