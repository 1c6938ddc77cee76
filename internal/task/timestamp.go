package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// Backends built on java.time.LocalDateTime send ISO-8601 without a zone.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// DisplayLayout is the day-first format used on screen
const DisplayLayout = "02/01/2006 15:04"

// Timestamp is an ISO-8601 instant. Zone-less values are read as UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses RFC 3339 or zone-less ISO-8601 text
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t}, nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("parsing timestamp %q: unsupported format", s)
}

// MarshalJSON writes RFC 3339 with nanoseconds, or null for the zero value
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts a string timestamp or null
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Display formats the timestamp in local time, or "—" when unset
func (ts Timestamp) Display() string {
	if ts.IsZero() {
		return "—"
	}
	return ts.Local().Format(DisplayLayout)
}
