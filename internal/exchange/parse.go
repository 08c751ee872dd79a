package exchange

import (
	"path/filepath"
	"regexp"

	"github.com/harrison/exchange/internal/models"
)

const (
	inboundShape  = ".../<course_id>/inbound/<student_id>+<assignment_id>+<timestamp>"
	outboundShape = ".../<course_id>/outbound/<assignment_id>"
)

var (
	inboundRegexp  = regexp.MustCompile(`^(?:.*/)?([^/]+)/inbound/([^/+]*)\+([^/+]*)\+([^/]*)$`)
	outboundRegexp = regexp.MustCompile(`^(?:.*/)?([^/]+)/outbound/([^/]+)$`)
)

// Parse extracts the identity of an exchange directory on the given side.
func Parse(direction models.Direction, path string) (models.Entry, error) {
	if direction == models.Inbound {
		return ParseInbound(path)
	}
	return ParseOutbound(path)
}

// ParseInbound extracts course, student, assignment and timestamp from a
// submission directory path. Paths of any other shape yield a
// *ShapeMismatchError.
func ParseInbound(path string) (models.Entry, error) {
	m := inboundRegexp.FindStringSubmatch(normalize(path))
	if m == nil {
		return models.Entry{}, &ShapeMismatchError{Path: path, Expected: inboundShape}
	}

	return models.Entry{
		Direction:    models.Inbound,
		CourseID:     m[1],
		StudentID:    m[2],
		AssignmentID: m[3],
		Timestamp:    m[4],
		Path:         path,
	}, nil
}

// ParseOutbound extracts course and assignment from a released assignment
// directory path. Paths of any other shape yield a *ShapeMismatchError.
func ParseOutbound(path string) (models.Entry, error) {
	m := outboundRegexp.FindStringSubmatch(normalize(path))
	if m == nil {
		return models.Entry{}, &ShapeMismatchError{Path: path, Expected: outboundShape}
	}

	return models.Entry{
		Direction:    models.Outbound,
		CourseID:     m[1],
		AssignmentID: m[2],
		Path:         path,
	}, nil
}

// normalize cleans the path and converts separators to '/'.
func normalize(path string) string {
	if path == "" {
		return ""
	}
	return filepath.ToSlash(filepath.Clean(path))
}
