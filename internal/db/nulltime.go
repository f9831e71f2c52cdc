package db

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is how timestamps are stored as text in SQLite.
const TimeLayout = "2006-01-02 15:04:05.000"

// DateLayout is the calendar date format used on both stores.
const DateLayout = "2006-01-02"

var textLayouts = []string{
	TimeLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	DateLayout,
}

// NullTime scans timestamps and dates from either store. PostgreSQL hands
// back time.Time, SQLite hands back text.
type NullTime struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner
func (n *NullTime) Scan(v interface{}) error {
	switch t := v.(type) {
	case nil:
		n.Time, n.Valid = time.Time{}, false
		return nil
	case time.Time:
		n.Time, n.Valid = t.UTC(), true
		return nil
	case int64:
		if t == 0 {
			n.Time, n.Valid = time.Time{}, false
			return nil
		}
		n.Time, n.Valid = time.Unix(t, 0).UTC(), true
		return nil
	case []byte:
		return n.parse(string(t))
	case string:
		return n.parse(t)
	default:
		return fmt.Errorf("db: cannot scan %T into NullTime", v)
	}
}

func (n *NullTime) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		n.Time, n.Valid = time.Time{}, false
		return nil
	}
	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			n.Time, n.Valid = t.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("db: unrecognised time %q", s)
}

// Value implements driver.Valuer
func (n NullTime) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Time, nil
}

// Ptr returns the time or nil
func (n NullTime) Ptr() *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

// DatePtr returns the value as YYYY-MM-DD or nil
func (n NullTime) DatePtr() *string {
	if !n.Valid {
		return nil
	}
	s := n.Time.Format(DateLayout)
	return &s
}
