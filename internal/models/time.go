package models

import (
	"fmt"
	"strings"
	"time"
)

// Time unmarshals the timestamps the auth service emits. The backend
// serializes creation times without a zone offset ("2006-01-02T15:04:05"),
// while RFC 3339 is accepted too for forward compatibility.
type Time struct {
	time.Time
}

const localDateTimeLayout = "2006-01-02T15:04:05"

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(localDateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}
