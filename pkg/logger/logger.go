package logger

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the logging handle passed to every component at construction.
// It exposes the four severities the API uses and hides zerolog behind them.
type Logger struct {
	zl zerolog.Logger
}

// New builds a logger for the given environment. Development gets a console
// writer on stderr, everything else gets JSON lines on stdout.
func New(env string) *Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var out io.Writer = os.Stdout
	level := zerolog.InfoLevel
	if env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
		level = zerolog.DebugLevel
	}

	return NewWithWriter(out, level)
}

// NewWithWriter builds a logger that writes to w at the given minimum level.
func NewWithWriter(w io.Writer, level zerolog.Level) *Logger {
	return &Logger{
		zl: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.zl.Info().Fields(fields).Msg(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

// Error logs err together with its innermost cause, when the chain has one.
func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	ev := l.zl.Error().Fields(fields).Err(err)
	if cause := RootCause(err); cause != nil && cause != err {
		ev = ev.Str("cause", cause.Error())
	}
	ev.Msg(msg)
}

// RootCause walks the Unwrap chain of err and returns the last error in it.
func RootCause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}
