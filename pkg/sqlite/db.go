/*
 * @Author: Ranger wilton.icp@gmail.com
 * @Date: 2026-10-12 10:24:31
 * @LastEditors: Ranger
 * @LastEditTime: 2026-10-19 16:02:17
 * @Description: sqlite connection, table migration and the gorm logger on zap
 * @Website: https://vihacker.top
 * Copyright (c) 2026 by vihacker, All Rights Reserved.
 */
package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/vihackerframework/vihacker-go/model"
	"github.com/vihackerframework/vihacker-go/pkg/utils/file"
	"github.com/vihackerframework/vihacker-go/pkg/utils/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const DBFileName = "vihacker.db"

var gdb *gorm.DB

// GetDb opens dbPath/vihacker.db once and migrates the tables.
func GetDb(dbPath string) *gorm.DB {
	if gdb != nil {
		return gdb
	}

	if err := file.IsNotExistMkDir(dbPath); err != nil {
		panic(err)
	}
	db, err := Open(filepath.Join(dbPath, DBFileName))
	if err != nil {
		panic(err)
	}

	gdb = db
	return db
}

// Open opens the sqlite database at dsn with one writer connection and
// migrates the tables.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: zapLogger{zap: logger.L(), level: gormlogger.Warn},
	})
	if err != nil {
		return nil, err
	}

	c, err := db.DB()
	if err != nil {
		return nil, err
	}
	c.SetMaxIdleConns(10)
	c.SetMaxOpenConns(1)
	c.SetConnMaxIdleTime(time.Second * 1000)

	if err := db.AutoMigrate(&model.EventModel{}); err != nil {
		logger.Error("check or create db error", zap.Error(err))
		return nil, err
	}
	return db, nil
}

// zapLogger routes gorm's logs to zap.
type zapLogger struct {
	zap   *zap.Logger
	level gormlogger.LogLevel
}

func (l zapLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	l.level = level
	return l
}

func (l zapLogger) Info(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.zap.Sugar().Infof(s, args...)
	}
}

func (l zapLogger) Warn(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.zap.Sugar().Warnf(s, args...)
	}
}

func (l zapLogger) Error(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.zap.Sugar().Errorf(s, args...)
	}
}

func (l zapLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == gormlogger.Silent {
		return
	}
	sql, rows := fc()
	dur := time.Since(begin)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		l.zap.Error("gorm query error", zap.Duration("duration", dur), zap.Int64("rows", rows), zap.String("sql", sql), zap.Error(err))
		return
	}
	if l.level >= gormlogger.Info {
		l.zap.Debug("gorm query", zap.Duration("duration", dur), zap.Int64("rows", rows), zap.String("sql", sql))
	}
}
