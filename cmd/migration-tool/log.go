package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger prints migration progress to the console. Debug lines are dropped
// unless DebugMode is set.
type Logger struct {
	DebugMode bool

	sugar *zap.SugaredLogger
}

func NewLogger() *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	return &Logger{sugar: l.Sugar()}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.DebugMode {
		return
	}
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}
