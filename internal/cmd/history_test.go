package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/exchange/internal/history"
	"github.com/harrison/exchange/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewHistoryCommand()
	cmd.SetArgs(args)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	err := cmd.Execute()
	return buf.String(), err
}

func seedHistory(t *testing.T, dbPath string) {
	t.Helper()
	store, err := history.NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.RecordRemoval(ctx, "11111111-aaaa", models.Entry{
		Direction: models.Outbound, CourseID: "phys101", AssignmentID: "hw1", Path: "/e/phys101/outbound/hw1",
	}))
	require.NoError(t, store.RecordRemoval(ctx, "22222222-bbbb", models.Entry{
		Direction: models.Inbound, CourseID: "chem200", StudentID: "alice", AssignmentID: "lab1",
		Timestamp: "20230101T120000", Path: "/e/chem200/inbound/alice+lab1+20230101T120000",
	}))
}

func TestHistoryShowsRemovals(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "removals.db")
	seedHistory(t, dbPath)

	output, err := executeHistory(t, "--db-path", dbPath)
	require.NoError(t, err)

	assert.Contains(t, output, "REMOVED AT")
	assert.Contains(t, output, "phys101 hw1")
	assert.Contains(t, output, "chem200 alice lab1 20230101T120000")
	assert.Contains(t, output, "22222222")
	assert.NotContains(t, output, "22222222-bbbb")
	assert.Contains(t, output, "2 removals shown, 2 recorded in total.")

	// Newest first
	assert.Less(t, strings.Index(output, "chem200"), strings.Index(output, "phys101"))
}

func TestHistoryFilters(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "removals.db")
	seedHistory(t, dbPath)

	output, err := executeHistory(t, "--db-path", dbPath, "--course", "phys101")
	require.NoError(t, err)
	assert.Contains(t, output, "phys101 hw1")
	assert.NotContains(t, output, "chem200")
	assert.Contains(t, output, "1 removal shown, 2 recorded in total.")

	output, err = executeHistory(t, "--db-path", dbPath, "--run", "22222222-bbbb")
	require.NoError(t, err)
	assert.Contains(t, output, "chem200")
	assert.NotContains(t, output, "phys101")

	output, err = executeHistory(t, "--db-path", dbPath, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "1 removal shown, 2 recorded in total.")

	output, err = executeHistory(t, "--db-path", dbPath, "--course", "bio300")
	require.NoError(t, err)
	assert.Contains(t, output, "No removals recorded.")
}

func TestHistoryMissingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "none.db")

	output, err := executeHistory(t, "--db-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, output, "No removal history found at: "+dbPath)
	assert.NoFileExists(t, dbPath)
}

func TestHistoryNegativeLimit(t *testing.T) {
	_, err := executeHistory(t, "--db-path", filepath.Join(t.TempDir(), "x.db"), "--limit", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--limit")
}

func TestHistoryAfterRemove(t *testing.T) {
	root, _ := setupExchange(t, "phys101/outbound/hw1")

	_, err := executeList(t, "--exchange", root, "--remove")
	require.NoError(t, err)

	// Default database location comes from EXCHANGE_HOME
	output, err := executeHistory(t)
	require.NoError(t, err)
	assert.Contains(t, output, "phys101 hw1")
	assert.Contains(t, output, "outbound")
}
