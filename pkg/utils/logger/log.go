/*
 * @Author: Ranger wilton.icp@gmail.com
 * @Date: 2026-10-12 10:24:31
 * @LastEditors: Ranger
 * @LastEditTime: 2026-10-19 16:02:17
 * @Description: zap logger writing to stdout and a rotated log file
 * @Website: https://vihacker.top
 * Copyright (c) 2026 by vihacker, All Rights Reserved.
 */
package logger

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var loggers = zap.NewNop()

// LogInit writes JSON logs to stdout and to a rotating file at
// logPath/logSaveName.logFileExt.
func LogInit(logPath string, logSaveName string, logFileExt string) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.MessageKey = "message"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	level := zap.NewAtomicLevelAt(zap.DebugLevel)

	loggers = zap.New(zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
		zapcore.NewCore(encoder, getFileLogWriter(logPath, logSaveName, logFileExt), level),
	))
}

func getFileLogWriter(logPath string, logSaveName string, logFileExt string) zapcore.WriteSyncer {
	fileName := filepath.Join(logPath, fmt.Sprintf("%s.%s", logSaveName, logFileExt))
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    10,
		MaxBackups: 60,
		MaxAge:     1,
		Compress:   true,
		LocalTime:  true,
	})
}

// L returns the process logger. It discards everything until LogInit or
// SetLogger is called.
func L() *zap.Logger {
	return loggers
}

func SetLogger(l *zap.Logger) {
	if l != nil {
		loggers = l
	}
}

func Sync() {
	_ = loggers.Sync()
}

func Info(message string, fields ...zap.Field) {
	callerFields := getCallerInfoForLog()
	fields = append(fields, callerFields...)
	loggers.Info(message, fields...)
}

func Warn(message string, fields ...zap.Field) {
	callerFields := getCallerInfoForLog()
	fields = append(fields, callerFields...)
	loggers.Warn(message, fields...)
}

func Error(message string, fields ...zap.Field) {
	callerFields := getCallerInfoForLog()
	fields = append(fields, callerFields...)
	loggers.Error(message, fields...)
}

func getCallerInfoForLog() (callerFields []zap.Field) {
	pc, file, line, ok := runtime.Caller(2) // skip this helper and the log wrapper
	if !ok {
		return
	}
	funcName := runtime.FuncForPC(pc).Name()
	funcName = path.Base(funcName)

	callerFields = append(callerFields, zap.String("func", funcName), zap.String("file", file), zap.Int("line", line))
	return
}
