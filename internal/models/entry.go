package models

import (
	"fmt"
	"strings"
)

// Direction identifies which side of the exchange an entry lives on.
type Direction int

const (
	// Outbound holds assignments released by an instructor.
	Outbound Direction = iota
	// Inbound holds submissions placed by students.
	Inbound
)

// String returns the directory name used for the direction in the exchange.
func (d Direction) String() string {
	switch d {
	case Outbound:
		return "outbound"
	case Inbound:
		return "inbound"
	default:
		return "unknown"
	}
}

// MarshalText encodes the direction as its directory name.
func (d Direction) MarshalText() ([]byte, error) {
	switch d {
	case Outbound, Inbound:
		return []byte(d.String()), nil
	default:
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
}

// UnmarshalText decodes "outbound" or "inbound".
func (d *Direction) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "outbound":
		*d = Outbound
	case "inbound":
		*d = Inbound
	default:
		return fmt.Errorf("invalid direction %q", string(text))
	}
	return nil
}

// Filter narrows which exchange directories are enumerated.
// An empty field matches any value.
type Filter struct {
	CourseID     string
	AssignmentID string
	StudentID    string
}

// Entry is one parsed exchange directory.
// StudentID and Timestamp are only set for inbound entries.
type Entry struct {
	Direction    Direction `json:"direction" yaml:"direction"`
	CourseID     string    `json:"course_id" yaml:"course_id"`
	StudentID    string    `json:"student_id,omitempty" yaml:"student_id,omitempty"`
	AssignmentID string    `json:"assignment_id" yaml:"assignment_id"`
	Timestamp    string    `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Path         string    `json:"path" yaml:"path"`
}

// Line formats the entry as a single human-readable line.
//
//	outbound: "<course_id> <assignment_id>"
//	inbound:  "<course_id> <student_id> <assignment_id> <timestamp>"
func (e Entry) Line() string {
	if e.Direction == Inbound {
		return fmt.Sprintf("%s %s %s %s", e.CourseID, e.StudentID, e.AssignmentID, e.Timestamp)
	}
	return fmt.Sprintf("%s %s", e.CourseID, e.AssignmentID)
}

// Fields returns the identity fields of the entry keyed by field name.
func (e Entry) Fields() map[string]string {
	fields := map[string]string{
		"course_id":     e.CourseID,
		"assignment_id": e.AssignmentID,
	}
	if e.Direction == Inbound {
		fields["student_id"] = e.StudentID
		fields["timestamp"] = e.Timestamp
	}
	return fields
}
