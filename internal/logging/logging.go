// Package logging builds the zap loggers used by coolctl and remotesim.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log levels accepted in configuration.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
	closer io.Closer
}

// defaultZapLevel is used when an unknown level string is provided.
const defaultZapLevel = zapcore.InfoLevel

func toZapLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

func newConsoleCore(ws zapcore.WriteSyncer, level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	return zapcore.NewCore(encoder, zapcore.Lock(ws), zap.NewAtomicLevelAt(level))
}

// New builds a console logger at the given level. An empty path logs to
// stderr; otherwise the file is created if needed and appended to.
func New(level, path string) (*Logger, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return &Logger{SugaredLogger: zap.New(newConsoleCore(zapcore.AddSync(os.Stderr), toZapLevel(level))).Sugar()}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	core := newConsoleCore(zapcore.AddSync(file), toZapLevel(level))
	return &Logger{SugaredLogger: zap.New(core).Sugar(), closer: file}, nil
}

// NewWithCore wraps an existing core, e.g. a zaptest observer.
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// Close flushes buffered entries and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	_ = l.Sync()
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
