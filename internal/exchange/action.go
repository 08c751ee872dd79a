package exchange

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/harrison/exchange/internal/models"
)

// Reporter receives the lines a run produces.
type Reporter interface {
	LogInfo(message string)
	LogWarn(message string)
}

// Recorder persists removed entries. history.Store implements it.
type Recorder interface {
	RecordRemoval(ctx context.Context, runID string, entry models.Entry) error
}

// Action processes one parsed exchange directory.
// A run uses exactly one Action, selected before enumeration.
type Action interface {
	// Header returns the line reported before any entry.
	Header(direction models.Direction) string
	// Apply reports the entry and performs the action on it. deleted is true
	// when the entry's directory was removed by this call.
	Apply(ctx context.Context, entry models.Entry) (deleted bool, err error)
}

// ListAction reports each entry without touching the filesystem.
type ListAction struct {
	reporter Reporter
}

// NewListAction creates a ListAction reporting to reporter.
func NewListAction(reporter Reporter) *ListAction {
	return &ListAction{reporter: reporter}
}

// Header implements Action.
func (a *ListAction) Header(direction models.Direction) string {
	if direction == models.Inbound {
		return "Submitted assignments:"
	}
	return "Released assignments:"
}

// Apply implements Action.
func (a *ListAction) Apply(ctx context.Context, entry models.Entry) (bool, error) {
	a.reporter.LogInfo(entry.Line())
	return false, nil
}

// RemoveAction reports each entry and then deletes its directory tree.
// Deletion is irreversible and not transactional across entries.
type RemoveAction struct {
	reporter  Reporter
	recorder  Recorder
	runID     string
	removeAll func(path string) error
}

// NewRemoveAction creates a RemoveAction. recorder may be nil, in which case
// removals are not persisted.
func NewRemoveAction(reporter Reporter, recorder Recorder, runID string) *RemoveAction {
	return &RemoveAction{
		reporter:  reporter,
		recorder:  recorder,
		runID:     runID,
		removeAll: os.RemoveAll,
	}
}

// WithRemoveFunc replaces os.RemoveAll as the function that deletes a
// directory tree.
func (a *RemoveAction) WithRemoveFunc(fn func(path string) error) *RemoveAction {
	a.removeAll = fn
	return a
}

// Header implements Action.
func (a *RemoveAction) Header(direction models.Direction) string {
	if direction == models.Inbound {
		return "Removing submitted assignments:"
	}
	return "Removing released assignments:"
}

// Apply implements Action. A directory that no longer exists counts as
// removed; any other failure is returned as a *DeletionError.
func (a *RemoveAction) Apply(ctx context.Context, entry models.Entry) (bool, error) {
	a.reporter.LogInfo(entry.Line())

	if _, err := os.Lstat(entry.Path); errors.Is(err, fs.ErrNotExist) {
		a.reporter.LogWarn(fmt.Sprintf("%s already removed", entry.Path))
		return false, nil
	}

	if err := a.removeAll(entry.Path); err != nil {
		return false, &DeletionError{Path: entry.Path, Err: err}
	}

	if a.recorder != nil {
		if err := a.recorder.RecordRemoval(ctx, a.runID, entry); err != nil {
			a.reporter.LogWarn(fmt.Sprintf("failed to record removal of %s: %v", entry.Path, err))
		}
	}

	return true, nil
}
