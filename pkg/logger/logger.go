package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const productionEnv = "production"

var log zerolog.Logger

func init() {
	// Usable before Init for early startup paths; Init reconfigures it.
	log = newLogger(false, true)
}

// Init configures the process-wide logger. Development gets a human console
// writer, production gets JSON on stderr.
func Init(environment string, debug bool) {
	log = newLogger(environment == productionEnv, debug)
}

func newLogger(production, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	if production {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func Debug(msg string, keysAndValues ...any) {
	withFields(log.Debug(), keysAndValues).Msg(msg)
}

func Info(msg string, keysAndValues ...any) {
	withFields(log.Info(), keysAndValues).Msg(msg)
}

func Infof(format string, args ...any) {
	log.Info().Msgf(format, args...)
}

func Warn(msg string, keysAndValues ...any) {
	withFields(log.Warn(), keysAndValues).Msg(msg)
}

func Error(msg string, err error, keysAndValues ...any) {
	withFields(log.Error().Err(err), keysAndValues).Msg(msg)
}

// Fatal logs the message and terminates the process.
func Fatal(msg string, err error) {
	log.Fatal().Err(err).Msg(msg)
}

func withFields(event *zerolog.Event, keysAndValues []any) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		event = event.Interface(key, keysAndValues[i+1])
	}
	return event
}
