package exchange

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/exchange/internal/models"
	"github.com/stretchr/testify/require"
)

// recordingReporter captures reported lines by level.
type recordingReporter struct {
	info []string
	warn []string
}

func (r *recordingReporter) LogInfo(message string) { r.info = append(r.info, message) }
func (r *recordingReporter) LogWarn(message string) { r.warn = append(r.warn, message) }

// recordingRecorder captures removals, optionally failing every call.
type recordingRecorder struct {
	runIDs  []string
	entries []models.Entry
	err     error
}

func (r *recordingRecorder) RecordRemoval(ctx context.Context, runID string, entry models.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.runIDs = append(r.runIDs, runID)
	r.entries = append(r.entries, entry)
	return nil
}

var (
	errRecorder = errors.New("history unavailable")
	errDiskBusy = errors.New("device or resource busy")
)

// failingRemove returns a remove function that fails for the directory named
// failBase and deletes everything else.
func failingRemove(failBase string) func(string) error {
	return func(path string) error {
		if filepath.Base(path) == failBase {
			return errDiskBusy
		}
		return os.RemoveAll(path)
	}
}

// makeDirs creates each relative directory under root, with a file inside so
// removal has to recurse.
func makeDirs(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		dir := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notebook.ipynb"), []byte("{}"), 0644))
	}
}
