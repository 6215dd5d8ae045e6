package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString represents a time of day in "HH:MM" format.
// Used instead of time.Time for slot boundaries because slots are
// date-independent within a day and Postgres TIME columns scan as strings.
type TimeString string

var (
	// ErrInvalidFormat возвращается при некорректном формате времени
	ErrInvalidFormat = errors.New("invalid time string format, expected HH:MM")
)

const layout = "15:04"

// NewTimeString creates a TimeString from a time.Time (truncates seconds).
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse(layout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return TimeString(s), nil
}

func (ts TimeString) String() string {
	return string(ts)
}

// IsZero returns true for an empty value.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate checks the "HH:MM" format.
func (ts TimeString) Validate() error {
	_, err := time.Parse(layout, string(ts))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(ts))
	}
	return nil
}

// Minutes returns minutes since midnight.
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(layout, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes returns a new TimeString shifted forward by the given number
// of minutes. The result wraps within a single day.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	t, err := time.Parse(layout, string(ts))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, string(ts))
	}
	return TimeString(t.Add(time.Duration(minutes) * time.Minute).Format(layout)), nil
}

// IsBefore reports whether ts is strictly earlier than other.
// Lexicographic comparison is correct for zero-padded HH:MM.
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter reports whether ts is strictly later than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// Value implements driver.Valuer for TIME columns.
func (ts TimeString) Value() (driver.Value, error) {
	if ts == "" {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan implements sql.Scanner. Postgres TIME comes back as "HH:MM:SS";
// seconds are dropped.
func (ts *TimeString) Scan(src interface{}) error {
	if src == nil {
		*ts = ""
		return nil
	}

	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}

	if len(s) >= 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
