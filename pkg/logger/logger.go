package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// Init configures the global logger. Development gets a human-readable
// console writer at debug level, everything else structured JSON at info.
func Init(environment string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		return
	}

	log = zerolog.New(os.Stderr).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
}

func Debug(msg string, args ...any) { emit(log.Debug(), msg, args...) }
func Info(msg string, args ...any)  { emit(log.Info(), msg, args...) }
func Warn(msg string, args ...any)  { emit(log.Warn(), msg, args...) }
func Error(msg string, args ...any) { emit(log.Error(), msg, args...) }

func Fatal(msg string, args ...any) {
	emit(log.Fatal(), msg, args...)
}

// emit accepts alternating key/value pairs; a bare error is logged under
// the "error" key so call sites can pass one without a label.
func emit(e *zerolog.Event, msg string, args ...any) {
	for i := 0; i < len(args); {
		switch v := args[i].(type) {
		case error:
			e = e.AnErr("error", v)
			i++
		case string:
			if i+1 < len(args) {
				e = e.Interface(v, args[i+1])
				i += 2
			} else {
				e = e.Str("detail", v)
				i++
			}
		default:
			e = e.Interface(fmt.Sprintf("arg%d", i), v)
			i++
		}
	}
	e.Msg(msg)
}
