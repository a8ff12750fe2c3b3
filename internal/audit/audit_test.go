package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brightfold/studio-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLog(t *testing.T) (*Log, string) {
	require.NoError(t, logger.Init(false))

	dir := t.TempDir()
	log, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log, dir
}

func TestRecordAndReadAll(t *testing.T) {
	log, _ := openTestLog(t)

	entries := []Entry{
		{ActorID: "admin-1", Action: "article.create", Resource: "articles/hello-world"},
		{ActorID: "admin-1", Action: "article.update", Resource: "articles/hello-world", Detail: "title changed"},
		{ActorID: "admin-2", Action: "user.role", Resource: "users/abc", Detail: "user -> admin"},
	}
	for _, e := range entries {
		require.NoError(t, log.Record(e))
	}

	got, err := log.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i, e := range entries {
		assert.Equal(t, e.ActorID, got[i].ActorID)
		assert.Equal(t, e.Action, got[i].Action)
		assert.Equal(t, e.Resource, got[i].Resource)
		assert.Equal(t, e.Detail, got[i].Detail)
		assert.False(t, got[i].Timestamp.IsZero(), "Record should stamp entries")
	}
}

func TestRecord_KeepsCallerTimestamp(t *testing.T) {
	log, _ := openTestLog(t)

	stamp := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	require.NoError(t, log.Record(Entry{
		ActorID:   "admin-1",
		Action:    "project.delete",
		Resource:  "projects/demo",
		Timestamp: stamp,
	}))

	got, err := log.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Timestamp.Equal(stamp))
}

func TestReopen_Appends(t *testing.T) {
	require.NoError(t, logger.Init(false))
	dir := t.TempDir()

	log, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, log.Record(Entry{ActorID: "a", Action: "review.create", Resource: "reviews/1"}))
	require.NoError(t, log.Close())

	log, err = Open(dir)
	require.NoError(t, err)
	defer log.Close()
	require.NoError(t, log.Record(Entry{ActorID: "a", Action: "review.delete", Resource: "reviews/1"}))

	got, err := log.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "review.create", got[0].Action)
	assert.Equal(t, "review.delete", got[1].Action)
}

func TestRecord_AfterCloseFails(t *testing.T) {
	log, _ := openTestLog(t)
	require.NoError(t, log.Close())

	err := log.Record(Entry{ActorID: "a", Action: "article.create", Resource: "articles/x"})
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestRotation(t *testing.T) {
	if testing.Short() {
		t.Skip("rotation writes several MB with fsync")
	}

	log, dir := openTestLog(t)

	// Push the active segment past the rotation threshold with a few
	// large entries rather than thousands of synced small ones.
	padding := strings.Repeat("x", 1<<20)
	for i := 0; i < 9; i++ {
		require.NoError(t, log.Record(Entry{
			ActorID:  "admin-1",
			Action:   "article.update",
			Resource: "articles/big",
			Detail:   padding,
		}))
	}

	rotated, err := filepath.Glob(filepath.Join(dir, "audit-*.log"))
	require.NoError(t, err)
	assert.NotEmpty(t, rotated, "expected a rotated segment")

	// The active segment restarted and still accepts writes.
	require.NoError(t, log.Record(Entry{ActorID: "admin-1", Action: "article.delete", Resource: "articles/big"}))
	got, err := log.ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Less(t, len(got), 10, "active segment should hold only post-rotation entries")
	assert.Equal(t, "article.delete", got[len(got)-1].Action)
}

func TestReadAll_LargeEntry(t *testing.T) {
	log, _ := openTestLog(t)

	// Larger than bufio.Scanner's default 64 KB token limit.
	detail := strings.Repeat("d", 128<<10)
	require.NoError(t, log.Record(Entry{
		ActorID:  "admin-1",
		Action:   "article.update",
		Resource: "articles/long-form",
		Detail:   detail,
	}))

	got, err := log.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, detail, got[0].Detail)
}

func TestReadAll_SkipsCorruptLines(t *testing.T) {
	log, dir := openTestLog(t)

	require.NoError(t, log.Record(Entry{ActorID: "a", Action: "article.create", Resource: "articles/ok"}))

	f, err := os.OpenFile(filepath.Join(dir, "audit.log"), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("not json at all\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, log.Record(Entry{ActorID: "a", Action: "article.update", Resource: "articles/ok"}))

	got, err := log.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 2)
}
