// Package exchange lists and removes assignment directories in a shared
// exchange directory.
//
// Directory names encode identity:
//
//	<root>/<course_id>/outbound/<assignment_id>
//	<root>/<course_id>/inbound/<student_id>+<assignment_id>+<timestamp>
//
// A run resolves a glob pattern from a Query, enumerates the matching
// directories in sorted order, parses each one and hands it to an Action.
package exchange

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/harrison/exchange/internal/models"
)

// wildcard matches exactly one path segment.
const wildcard = "*"

// Query selects exchange directories. It is passed by value and never
// modified after construction.
type Query struct {
	Root      string           // Exchange root directory
	Direction models.Direction // Inbound or outbound side
	Filter    models.Filter    // Identity filters, empty fields match anything
}

// Pattern builds the glob pattern for the query.
//
//	outbound: <root>/<course_or_*>/outbound/<assignment_or_*>
//	inbound:  <root>/<course_or_*>/inbound/<student_or_*>+<assignment_or_*>+*
func (q Query) Pattern() string {
	course := orWildcard(q.Filter.CourseID)
	assignment := orWildcard(q.Filter.AssignmentID)

	if q.Direction == models.Inbound {
		student := orWildcard(q.Filter.StudentID)
		leaf := fmt.Sprintf("%s+%s+%s", student, assignment, wildcard)
		return filepath.Join(q.Root, course, models.Inbound.String(), leaf)
	}

	return filepath.Join(q.Root, course, models.Outbound.String(), assignment)
}

// Validate rejects filter values that are not a single path segment.
// filepath.Join cleans ".." away, so such a value would move the pattern
// outside Root.
func (q Query) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"course id", q.Filter.CourseID},
		{"assignment id", q.Filter.AssignmentID},
		{"student id", q.Filter.StudentID},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if f.value == "." || f.value == ".." || strings.ContainsAny(f.value, `/`+string(filepath.Separator)) {
			return &InvalidFilterError{Field: f.name, Value: f.value}
		}
	}
	return nil
}

func orWildcard(id string) string {
	if id == "" {
		return wildcard
	}
	return id
}
