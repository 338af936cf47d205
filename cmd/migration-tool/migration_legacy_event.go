package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/vihackerframework/vihacker-go/model"
	"github.com/vihackerframework/vihacker-go/pkg/injector"
	vsqlite "github.com/vihackerframework/vihacker-go/pkg/sqlite"
	"github.com/vihackerframework/vihacker-go/pkg/utils/file"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	legacyEventTable = "o_event"
	migratedSuffix   = ".migrated"
	batchSize        = 500
)

type legacyEvent struct {
	UUID       string `gorm:"column:uuid;primaryKey"`
	SourceID   string `gorm:"column:source_id"`
	Name       string `gorm:"column:name"`
	Properties string `gorm:"column:properties"`
	Timestamp  int64  `gorm:"column:timestamp"`
}

func (legacyEvent) TableName() string {
	return legacyEventTable
}

type migrationTool1 struct {
	legacyDBFile string
	dbPath       string

	inserted int64
	skipped  int64
}

func (u *migrationTool1) IsMigrationNeeded() (bool, error) {
	if _, err := os.Stat(u.legacyDBFile); err != nil {
		_logger.Info("`%s` not found, migration is not needed.", u.legacyDBFile)
		return false, nil
	}

	legacyDB, err := openLegacy(u.legacyDBFile)
	if err != nil {
		return false, err
	}
	defer closeDB(legacyDB)

	if !legacyDB.Migrator().HasTable(legacyEventTable) {
		_logger.Info("No `%s` table in %s, migration is not needed.", legacyEventTable, u.legacyDBFile)
		return false, nil
	}

	_logger.Info("Migration is needed for legacy events in %s...", u.legacyDBFile)
	return true, nil
}

func (u *migrationTool1) PreMigrate() error {
	if err := file.IsNotExistMkDir(u.dbPath); err != nil {
		return err
	}

	extension := "." + time.Now().Format("20060102") + ".bak"

	_logger.Info("Creating a backup %s if it doesn't exist...", u.legacyDBFile+extension)
	return file.CopySingleFile(u.legacyDBFile, u.legacyDBFile+extension, "skip")
}

// Migrate copies the legacy events in batches. Events whose uuid is already
// present are skipped, so an interrupted run can be repeated.
func (u *migrationTool1) Migrate() error {
	legacyDB, err := openLegacy(u.legacyDBFile)
	if err != nil {
		return err
	}
	defer closeDB(legacyDB)

	db, err := vsqlite.Open(filepath.Join(u.dbPath, vsqlite.DBFileName))
	if err != nil {
		return err
	}
	defer closeDB(db)

	mapper := injector.NewMapper[model.EventModel](db, nil)
	ctx := context.Background()

	var rows []legacyEvent
	result := legacyDB.FindInBatches(&rows, batchSize, func(tx *gorm.DB, batch int) error {
		list := make([]model.EventModel, 0, len(rows))
		for _, row := range rows {
			if row.UUID == "" {
				_logger.Debug("Skipping legacy event without uuid: %s", row.Name)
				u.skipped++
				continue
			}
			list = append(list, model.EventModel{
				UUID:       row.UUID,
				SourceID:   row.SourceID,
				Name:       row.Name,
				Properties: row.Properties,
				Timestamp:  row.Timestamp,
			})
		}

		n, err := mapper.InsertIgnoreBatch(ctx, list)
		if err != nil {
			return fmt.Errorf("batch %d: %w", batch, err)
		}
		_logger.Debug("Batch %d: %d of %d events inserted", batch, n, len(list))
		u.inserted += n
		u.skipped += int64(len(list)) - n
		return nil
	})
	if result.Error != nil {
		return result.Error
	}

	_logger.Info("Migrated %d legacy events, %d skipped.", u.inserted, u.skipped)
	return nil
}

func (u *migrationTool1) PostMigrate() error {
	_logger.Info("Renaming %s to %s...", u.legacyDBFile, u.legacyDBFile+migratedSuffix)
	return os.Rename(u.legacyDBFile, u.legacyDBFile+migratedSuffix)
}

func NewMigrationToolForLegacyEvents(legacyDBFile, dbPath string) MigrationTool {
	return &migrationTool1{legacyDBFile: legacyDBFile, dbPath: dbPath}
}

func openLegacy(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
}

func closeDB(db *gorm.DB) {
	if c, err := db.DB(); err == nil {
		_ = c.Close()
	}
}
