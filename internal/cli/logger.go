// Package cli holds the vpdbscan command-line tool's supporting pieces:
// logging and terminal presentation, kept separate from the library so the
// core package stays free of CLI concerns.
package cli

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a console-encoded zap logger for the CLI, writing to
// stdout with source locations and, when debug is set, debug-level output.
func NewLogger(debug bool) *zap.Logger {
	return NewLoggerWithWriter(debug, os.Stdout)
}

// NewLoggerWithWriter is NewLogger with an overridable writer, split out so
// tests can capture output.
func NewLoggerWithWriter(debug bool, w io.Writer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)

	return zap.New(core, zap.AddCaller())
}
