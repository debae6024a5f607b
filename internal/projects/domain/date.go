package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the on-disk and on-the-wire format of project dates.
const DateLayout = "2006-01-02"

// looseDateLayout also reads hand-written dates without zero padding, e.g. 2024-1-5.
const looseDateLayout = "2006-1-2"

// Date is a calendar date without a time of day, always normalised to midnight UTC.
type Date struct {
	time.Time
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD with or without zero padding, and full RFC 3339 timestamps
// from hand-edited documents.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(looseDateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want %s", s, DateLayout)
	}
	return DateOf(t), nil
}

// Later returns the latest of the given dates.
func Later(first Date, rest ...Date) Date {
	out := first
	for _, d := range rest {
		if d.After(out.Time) {
			out = d
		}
	}
	return out
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
