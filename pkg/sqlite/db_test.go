package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vihackerframework/vihacker-go/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestOpenMigratesEvents(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&model.EventModel{}))
	require.NoError(t, db.Create(&model.EventModel{UUID: "u1", SourceID: "local-storage"}).Error)

	var got model.EventModel
	require.NoError(t, db.First(&got, "uuid = ?", "u1").Error)
	assert.NotZero(t, got.Timestamp)
}

func TestGetDbIsSingleton(t *testing.T) {
	t.Cleanup(func() { gdb = nil })
	dir := t.TempDir()

	first := GetDb(dir)
	assert.Same(t, first, GetDb(filepath.Join(dir, "ignored")))
	assert.FileExists(t, filepath.Join(dir, DBFileName))
}

func TestZapLoggerTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := zapLogger{zap: zap.New(core), level: gormlogger.Warn}
	fc := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now(), fc, nil)
	assert.Equal(t, 0, logs.Len(), "queries are only traced at info level")

	l.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len())

	l.Trace(context.Background(), time.Now(), fc, errors.New("disk I/O error"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "SELECT 1", logs.All()[0].ContextMap()["sql"])

	l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), fc, errors.New("x"))
	assert.Equal(t, 1, logs.Len())
}
