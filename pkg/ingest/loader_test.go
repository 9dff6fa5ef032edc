package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/opsight/opsight/pkg/database/models"
	"github.com/opsight/opsight/test/pkg/testsqlite"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestLoader(t *testing.T, db *gorm.DB, csvPath string, chunkSize int) *Loader {
	t.Helper()
	loader, err := NewLoader(db, &Config{CSVPath: csvPath, ChunkSize: chunkSize})
	require.NoError(t, err)
	return loader
}

func TestLoaderRun(t *testing.T) {
	db := testsqlite.NewTestDB(t)

	// BOM and padding in the header, an ignored extra column, and one row
	// with an unparsable timestamp that must be dropped without failing the
	// rest of its chunk
	csvPath := writeCSV(t, "\ufeffSession_ID, Operator_ID ,Timestamp,Shift,Address,SetPoint,Bogus\n"+
		"1,OP1,2015-10-03 08:00:00,DAY,pump-4,12.5,x\n"+
		"1,OP1,not-a-time,DAY,pump-4,13.0,x\n"+
		"1,OP1,2015-10-03 09:30:00,DAY,pump-4,13.5,x\n"+
		"2,OP2,2015-10-03 20:00:00,NIGHT,pump-7,3.25,x\n")

	loader := newTestLoader(t, db, csvPath, DefaultChunkSize)
	total, err := loader.Run()
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)

	var eventCount int64
	assert.NoError(t, db.Model(&models.Event{}).Count(&eventCount).Error)
	assert.Equal(t, int64(3), eventCount)

	// the dropped row is excluded from the session aggregation as well
	session := &models.Session{}
	assert.NoError(t, db.First(session, "session_id = ?", 1).Error)
	assert.Equal(t, 8, session.SessionStart.UTC().Hour())
	if assert.NotNil(t, session.SessionEnd) {
		assert.Equal(t, 9, session.SessionEnd.UTC().Hour())
	}

	var operatorCount int64
	assert.NoError(t, db.Model(&models.Operator{}).Count(&operatorCount).Error)
	assert.Equal(t, int64(2), operatorCount)
}

func TestLoaderChunksSeeEarlierCommits(t *testing.T) {
	db := testsqlite.NewTestDB(t)

	// one operator across chunks: the second chunk's reconciliation must
	// recognize the operator committed by the first instead of re-inserting
	csvPath := writeCSV(t, "Session_ID,Operator_ID,Timestamp,Shift\n"+
		"1,OP1,2015-10-03 08:00:00,DAY\n"+
		"1,OP1,2015-10-03 08:05:00,DAY\n"+
		"2,OP1,2015-10-04 08:00:00,DAY\n"+
		"2,OP1,2015-10-04 08:05:00,DAY\n")

	loader := newTestLoader(t, db, csvPath, 2)
	total, err := loader.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	var operatorCount, sessionCount int64
	assert.NoError(t, db.Model(&models.Operator{}).Count(&operatorCount).Error)
	assert.NoError(t, db.Model(&models.Session{}).Count(&sessionCount).Error)
	assert.Equal(t, int64(1), operatorCount)
	assert.Equal(t, int64(2), sessionCount)
}

func TestLoaderRerunSurfacesUniquenessViolation(t *testing.T) {
	db := testsqlite.NewTestDB(t)

	csvPath := writeCSV(t, "Session_ID,Operator_ID,Timestamp,Shift,Address\n"+
		"1,OP1,2015-10-03 08:00:00,DAY,pump-4\n"+
		"1,OP1,2015-10-03 08:01:00,DAY,pump-4\n")

	loader := newTestLoader(t, db, csvPath, DefaultChunkSize)
	total, err := loader.Run()
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	// operators and sessions are reconciled idempotently, but events have no
	// dedup path: the replay must stop with the store's uniqueness error
	rerun := newTestLoader(t, db, csvPath, DefaultChunkSize)
	_, err = rerun.Run()
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var operatorCount, sessionCount, eventCount int64
	assert.NoError(t, db.Model(&models.Operator{}).Count(&operatorCount).Error)
	assert.NoError(t, db.Model(&models.Session{}).Count(&sessionCount).Error)
	assert.NoError(t, db.Model(&models.Event{}).Count(&eventCount).Error)
	assert.Equal(t, int64(1), operatorCount)
	assert.Equal(t, int64(1), sessionCount)
	assert.Equal(t, int64(2), eventCount, "the failed chunk must be rolled back in full")
}

func TestLoaderMissingRequiredColumns(t *testing.T) {
	db := testsqlite.NewTestDB(t)

	csvPath := writeCSV(t, "Session_ID,Operator_ID,Timestamp\n"+
		"1,OP1,2015-10-03 08:00:00\n")

	loader := newTestLoader(t, db, csvPath, DefaultChunkSize)
	_, err := loader.Run()

	missingErr := &MissingColumnsError{}
	assert.ErrorAs(t, err, &missingErr)
	assert.Contains(t, err.Error(), "Shift")

	var eventCount int64
	assert.NoError(t, db.Model(&models.Event{}).Count(&eventCount).Error)
	assert.Equal(t, int64(0), eventCount)
}

func TestLoaderUnknownShiftAbortsBeforeInsert(t *testing.T) {
	db := testsqlite.NewTestDB(t)

	csvPath := writeCSV(t, "Session_ID,Operator_ID,Timestamp,Shift\n"+
		"1,OP1,2015-10-03 08:00:00,SWING\n")

	loader := newTestLoader(t, db, csvPath, DefaultChunkSize)
	_, err := loader.Run()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SWING")

	var eventCount int64
	assert.NoError(t, db.Model(&models.Event{}).Count(&eventCount).Error)
	assert.Equal(t, int64(0), eventCount)
}

func TestLoaderTruncatesOversizedValues(t *testing.T) {
	db := testsqlite.NewTestDB(t)

	long := strings.Repeat("y", 130)
	csvPath := writeCSV(t, "Session_ID,Operator_ID,Timestamp,Shift,ControlScheme\n"+
		"1,OP1,2015-10-03 08:00:00,DAY,"+long+"\n")

	loader := newTestLoader(t, db, csvPath, DefaultChunkSize)
	total, err := loader.Run()
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	event := &models.Event{}
	assert.NoError(t, db.First(event, "session_id = ?", 1).Error)
	assert.Len(t, event.ControlScheme, 100)
}

func TestNewLoaderValidatesConfig(t *testing.T) {
	db := testsqlite.NewTestDB(t)

	_, err := NewLoader(db, &Config{CSVPath: "", ChunkSize: 10})
	assert.Error(t, err)

	_, err = NewLoader(db, &Config{CSVPath: "events.csv", ChunkSize: 0})
	assert.Error(t, err)
}
