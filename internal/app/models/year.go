package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Year holds an admission year exactly as supplied. Source records may carry the
// year as a number, a numeric string, garbage, or nothing at all; a bad year must
// not fail decoding of the whole collection, so validity is checked later.
type Year struct {
	value int
	raw   string
	set   bool
	ok    bool
}

// NewYear returns a valid numeric year.
func NewYear(v int) Year {
	return Year{value: v, raw: strconv.Itoa(v), set: true, ok: true}
}

// ParseYear builds a Year from free text.
func ParseYear(s string) Year {
	s = strings.TrimSpace(s)
	if s == "" {
		return Year{}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return Year{raw: s, set: true}
	}
	return Year{value: v, raw: s, set: true, ok: true}
}

// Int returns the numeric year and whether one was present.
func (y Year) Int() (int, bool) {
	return y.value, y.ok
}

// IsSet reports whether any value was supplied.
func (y Year) IsSet() bool {
	return y.set
}

// String returns the year as supplied.
func (y Year) String() string {
	return y.raw
}

// MarshalJSON writes numeric years as numbers and anything else as a string or null.
func (y Year) MarshalJSON() ([]byte, error) {
	switch {
	case y.ok:
		return []byte(strconv.Itoa(y.value)), nil
	case y.set:
		return json.Marshal(y.raw)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON never fails on a well-formed JSON scalar.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*y = Year{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = ParseYear(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*y = Year{raw: string(data), set: true}
		return nil
	}
	if v, err := n.Int64(); err == nil {
		*y = NewYear(int(v))
		return nil
	}
	*y = Year{raw: n.String(), set: true}
	return nil
}
