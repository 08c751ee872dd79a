package exchange

import (
	"errors"
	"testing"

	"github.com/harrison/exchange/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInbound(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    models.Entry
		wantErr bool
	}{
		{
			name: "absolute path",
			path: "/srv/exchange/phys101/inbound/alice+hw1+20230101T120000",
			want: models.Entry{
				Direction: models.Inbound, CourseID: "phys101", StudentID: "alice",
				AssignmentID: "hw1", Timestamp: "20230101T120000",
				Path: "/srv/exchange/phys101/inbound/alice+hw1+20230101T120000",
			},
		},
		{
			name: "relative path without leading directory",
			path: "phys101/inbound/bob+hw2+2023-01-02 09:00:00 UTC",
			want: models.Entry{
				Direction: models.Inbound, CourseID: "phys101", StudentID: "bob",
				AssignmentID: "hw2", Timestamp: "2023-01-02 09:00:00 UTC",
				Path: "phys101/inbound/bob+hw2+2023-01-02 09:00:00 UTC",
			},
		},
		{
			name: "trailing slash",
			path: "/x/phys101/inbound/alice+hw1+ts/",
			want: models.Entry{
				Direction: models.Inbound, CourseID: "phys101", StudentID: "alice",
				AssignmentID: "hw1", Timestamp: "ts", Path: "/x/phys101/inbound/alice+hw1+ts/",
			},
		},
		{name: "missing delimiters", path: "/x/phys101/inbound/malformed", wantErr: true},
		{name: "single delimiter", path: "/x/phys101/inbound/alice+hw1", wantErr: true},
		{
			name: "empty student",
			path: "/x/phys101/inbound/+hw1+ts",
			want: models.Entry{
				Direction: models.Inbound, CourseID: "phys101", AssignmentID: "hw1",
				Timestamp: "ts", Path: "/x/phys101/inbound/+hw1+ts",
			},
		},
		{
			name: "empty timestamp",
			path: "/x/phys101/inbound/alice+hw1+",
			want: models.Entry{
				Direction: models.Inbound, CourseID: "phys101", StudentID: "alice",
				AssignmentID: "hw1", Path: "/x/phys101/inbound/alice+hw1+",
			},
		},
		{
			name: "plus in timestamp",
			path: "/x/phys101/inbound/alice+hw1+2023-01-01+0100",
			want: models.Entry{
				Direction: models.Inbound, CourseID: "phys101", StudentID: "alice",
				AssignmentID: "hw1", Timestamp: "2023-01-01+0100", Path: "/x/phys101/inbound/alice+hw1+2023-01-01+0100",
			},
		},
		{name: "outbound path", path: "/x/phys101/outbound/hw1", wantErr: true},
		{name: "too deep", path: "/x/phys101/inbound/alice+hw1+ts/extra", wantErr: true},
		{name: "no course segment", path: "inbound/alice+hw1+ts", wantErr: true},
		{name: "empty", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInbound(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrShapeMismatch))

				var shapeErr *ShapeMismatchError
				require.ErrorAs(t, err, &shapeErr)
				assert.Equal(t, tt.path, shapeErr.Path)
				assert.Equal(t, inboundShape, shapeErr.Expected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOutbound(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		course     string
		assignment string
		wantErr    bool
	}{
		{name: "absolute path", path: "/srv/exchange/phys101/outbound/hw1", course: "phys101", assignment: "hw1"},
		{name: "relative path", path: "phys101/outbound/Problem Set 1", course: "phys101", assignment: "Problem Set 1"},
		{name: "plus signs allowed", path: "/x/c/outbound/a+b", course: "c", assignment: "a+b"},
		{name: "too deep", path: "/x/phys101/outbound/hw1/extra", wantErr: true},
		{name: "missing course", path: "outbound/hw1", wantErr: true},
		{name: "inbound path", path: "/x/phys101/inbound/alice+hw1+ts", wantErr: true},
		{name: "not exchange", path: "/home/user/notes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutbound(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrShapeMismatch)
				assert.Contains(t, err.Error(), tt.path)
				assert.Contains(t, err.Error(), outboundShape)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.Outbound, got.Direction)
			assert.Equal(t, tt.course, got.CourseID)
			assert.Equal(t, tt.assignment, got.AssignmentID)
			assert.Empty(t, got.StudentID)
			assert.Empty(t, got.Timestamp)
			assert.Equal(t, tt.path, got.Path)
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	inbound, err := Parse(models.Inbound, "/e/phys101/inbound/alice+hw1+20230101T120000")
	require.NoError(t, err)
	line := inbound.Line()
	for _, field := range []string{"phys101", "alice", "hw1", "20230101T120000"} {
		assert.Contains(t, line, field)
	}
	assert.Equal(t, "phys101 alice hw1 20230101T120000", line)

	outbound, err := Parse(models.Outbound, "/e/phys101/outbound/hw1")
	require.NoError(t, err)
	assert.Equal(t, "phys101 hw1", outbound.Line())
}

func TestShapeMismatchIsNotDeletionFailure(t *testing.T) {
	_, err := ParseOutbound("/nope")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDeletionFailed))
}
