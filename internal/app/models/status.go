package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the application status vocabulary maintained by the admin workflow.
type Status string

const (
	StatusNone               Status = ""
	StatusApplied            Status = "Applied"
	StatusUnderReview        Status = "Under Review"
	StatusInterviewScheduled Status = "Interview Scheduled"
	StatusInterviewed        Status = "Interviewed"
	StatusOffered            Status = "Offered"
	StatusAccepted           Status = "Accepted"
	StatusRejected           Status = "Rejected"
	StatusDeclined           Status = "Declined"
)

var knownStatuses = []Status{
	StatusApplied,
	StatusUnderReview,
	StatusInterviewScheduled,
	StatusInterviewed,
	StatusOffered,
	StatusAccepted,
	StatusRejected,
	StatusDeclined,
}

// ParseStatus matches s against the vocabulary ignoring case and surrounding space.
func ParseStatus(s string) (Status, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return StatusNone, nil
	}
	for _, known := range knownStatuses {
		if strings.EqualFold(trimmed, string(known)) {
			return known, nil
		}
	}
	return StatusNone, fmt.Errorf("unknown application status %q", s)
}

// Placed reports whether a record in this status represents a placement.
// A record without a status is a plain placement record.
func (s Status) Placed() bool {
	switch s {
	case StatusNone, StatusOffered, StatusAccepted:
		return true
	}
	return false
}

// Known reports whether s is empty or part of the vocabulary.
func (s Status) Known() bool {
	if s == StatusNone {
		return true
	}
	for _, known := range knownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts any casing of a known status. Anything else is kept
// verbatim, so the record decodes but is never counted as placed.
func (s *Status) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = StatusNone
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		*s = Status(strings.TrimSpace(raw))
		return nil
	}
	*s = parsed
	return nil
}
