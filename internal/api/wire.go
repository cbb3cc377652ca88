package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The backend is loose about scalar types: numbers and booleans arrive
// either native or quoted depending on the endpoint. These wrappers
// accept both so one decode path serves every response.

type wireInt int64

func (w *wireInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*w = 0
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		*w = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse int %q: %w", s, err)
	}
	*w = wireInt(n)
	return nil
}

type wireBool bool

func (w *wireBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch s {
	case "true", "1":
		*w = true
	case "false", "0", "", "null":
		*w = false
	default:
		return fmt.Errorf("parse bool %q", s)
	}
	return nil
}

// wireDate accepts plain ISO dates as well as full timestamps.
type wireDate time.Time

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func (w *wireDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*w = wireDate(t)
			return nil
		}
	}
	return fmt.Errorf("parse date %q", s)
}

func (w wireDate) Time() time.Time { return time.Time(w) }

// optInt64 converts a wire integer into the model's optional id.
// The backend uses 0 for "no id", never as a real identifier.
func optInt64(w wireInt) *int64 {
	if w == 0 {
		return nil
	}
	v := int64(w)
	return &v
}

// optBool converts the tri-state "validated" field: absent or null means
// the venue has not decided yet.
func optBool(raw json.RawMessage) (*bool, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	switch s {
	case "", "null":
		return nil, nil
	case "true", "1":
		v := true
		return &v, nil
	case "false", "0":
		v := false
		return &v, nil
	default:
		return nil, fmt.Errorf("parse validated %q", s)
	}
}

// timesSeparator joins the time variants of a grouped activity on the
// wire; see splitTimes.
const timesSeparator = "; "

func splitTimes(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, timesSeparator)
	times := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			times = append(times, p)
		}
	}
	return times
}
