package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vihackerframework/vihacker-go/model"
	vsqlite "github.com/vihackerframework/vihacker-go/pkg/sqlite"
)

func seedLegacy(t *testing.T, path string, n int) {
	t.Helper()
	db, err := openLegacy(path)
	require.NoError(t, err)
	defer closeDB(db)

	require.NoError(t, db.AutoMigrate(&legacyEvent{}))
	rows := make([]legacyEvent, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, legacyEvent{
			UUID:       fmt.Sprintf("uuid-%04d", i),
			SourceID:   "local-storage",
			Name:       "disk added",
			Properties: fmt.Sprintf(`{"serial":"SN-%d"}`, i),
			Timestamp:  int64(1000 + i),
		})
	}
	require.NoError(t, db.CreateInBatches(rows, 100).Error)
}

func TestMain(m *testing.M) {
	_logger = NewLogger()
	os.Exit(m.Run())
}

func TestMigrationNotNeeded(t *testing.T) {
	dir := t.TempDir()

	tool := NewMigrationToolForLegacyEvents(filepath.Join(dir, "missing.db"), dir)
	needed, err := tool.IsMigrationNeeded()
	require.NoError(t, err)
	assert.False(t, needed)

	empty := filepath.Join(dir, "empty.db")
	db, err := openLegacy(empty)
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE other (id INTEGER)").Error)
	closeDB(db)

	needed, err = NewMigrationToolForLegacyEvents(empty, dir).IsMigrationNeeded()
	require.NoError(t, err)
	assert.False(t, needed)
}

func TestMigrateLegacyEvents(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, "legacy.db")
	dbPath := filepath.Join(dir, "db")
	seedLegacy(t, legacy, batchSize+20)

	// one event already migrated by an earlier, interrupted run
	require.NoError(t, os.MkdirAll(dbPath, 0o755))
	db, err := vsqlite.Open(filepath.Join(dbPath, vsqlite.DBFileName))
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.EventModel{UUID: "uuid-0003", Name: "kept"}).Error)
	closeDB(db)

	tool := NewMigrationToolForLegacyEvents(legacy, dbPath)
	require.NoError(t, run([]MigrationTool{tool}))

	mt := tool.(*migrationTool1)
	assert.Equal(t, int64(batchSize+19), mt.inserted)
	assert.Equal(t, int64(1), mt.skipped)

	assert.FileExists(t, legacy+migratedSuffix)
	assert.NoFileExists(t, legacy)

	db, err = vsqlite.Open(filepath.Join(dbPath, vsqlite.DBFileName))
	require.NoError(t, err)
	defer closeDB(db)

	var count int64
	require.NoError(t, db.Model(&model.EventModel{}).Count(&count).Error)
	assert.Equal(t, int64(batchSize+20), count)

	var kept model.EventModel
	require.NoError(t, db.First(&kept, "uuid = ?", "uuid-0003").Error)
	assert.Equal(t, "kept", kept.Name)

	needed, err := tool.IsMigrationNeeded()
	require.NoError(t, err)
	assert.False(t, needed)
}
