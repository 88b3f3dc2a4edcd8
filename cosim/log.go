package cosim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Level is the severity of a diagnostic message.
type Level int

const (
	LevelVerbose Level = iota
	LevelInfo
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelInfo:
		return "info"
	case LevelError:
		return "error"
	default:
		return "fatal"
	}
}

// Log receives leveled diagnostics. Implementations must not fail the caller.
type Log interface {
	Log(level Level, msg string)
}

// Discard is a Log that drops every message.
var Discard Log = discardLog{}

type discardLog struct{}

func (discardLog) Log(Level, string) {}

// LogrusLog writes diagnostics through a logrus entry.
type LogrusLog struct {
	entry *logrus.Entry
}

// NewLogrusLog wraps entry. A nil entry logs through the standard logger.
func NewLogrusLog(entry *logrus.Entry) *LogrusLog {
	if entry == nil {
		entry = logrus.NewEntry(logrus.StandardLogger())
	}
	return &LogrusLog{entry: entry}
}

// Log maps verbose to debug. Fatal messages are written at logrus' fatal
// level but never exit the process; the caller decides what a failed run means.
func (l *LogrusLog) Log(level Level, msg string) {
	l.entry.Log(logrusLevel(level), msg)
}

func logrusLevel(level Level) logrus.Level {
	switch level {
	case LevelVerbose:
		return logrus.DebugLevel
	case LevelInfo:
		return logrus.InfoLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.FatalLevel
	}
}

func logf(log Log, level Level, format string, args ...any) {
	log.Log(level, fmt.Sprintf(format, args...))
}
