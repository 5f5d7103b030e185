package log

import "go.uber.org/zap"

// Log is the logging surface handed to components. Implementations must be
// safe for use from the single host thread plus background transport readers.
type Log interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	With(fields ...Field) Log
}

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Field is a structured logging field. Aliased so call sites stay decoupled
// from the zap import.
type Field = zap.Field

var (
	Any      = zap.Any
	Bool     = zap.Bool
	Duration = zap.Duration
	Error    = zap.Error
	Float64  = zap.Float64
	Int      = zap.Int
	String   = zap.String
	Strings  = zap.Strings
)
