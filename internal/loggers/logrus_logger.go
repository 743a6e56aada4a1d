// Package loggers supplies the default interfaces.Logger adapter, backed by
// sirupsen/logrus — the structured-logging library the pack demonstrates in
// trustelem/go-diskfs. The core never imports logrus directly; it only
// depends on interfaces.Logger, so callers are free to supply their own
// adapter (the teacher's own stdlib log.Printf usage would work just as
// well behind the same interface).
package loggers

import (
	"github.com/sirupsen/logrus"

	"github.com/deploymenttheory/go-lpmetadata/internal/interfaces"
)

// LogrusLogger adapts a *logrus.Logger to interfaces.Logger.
type LogrusLogger struct {
	L *logrus.Logger
}

// NewLogrusLogger returns a LogrusLogger wrapping logrus's standard logger.
func NewLogrusLogger() *LogrusLogger {
	return &LogrusLogger{L: logrus.StandardLogger()}
}

func (l *LogrusLogger) Info(msg string, args ...any)  { l.L.Infof(msg, args...) }
func (l *LogrusLogger) Warn(msg string, args ...any)  { l.L.Warnf(msg, args...) }
func (l *LogrusLogger) Error(msg string, args ...any) { l.L.Errorf(msg, args...) }

var _ interfaces.Logger = (*LogrusLogger)(nil)

// NopLogger discards everything. Useful as a zero-value default so callers
// don't need to construct a logrus logger just to satisfy the interface.
type NopLogger struct{}

func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

var _ interfaces.Logger = NopLogger{}
