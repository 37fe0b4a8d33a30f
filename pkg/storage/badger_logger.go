package storage

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
)

// quietBadgerLogger routes badger's chatty output through the structured
// logger, dropping the info and debug levels.
type quietBadgerLogger struct{}

var _ badger.Logger = (*quietBadgerLogger)(nil)

func newQuietBadgerLogger() *quietBadgerLogger {
	return &quietBadgerLogger{}
}

func (l *quietBadgerLogger) Errorf(format string, args ...interface{}) {
	logger.Error("badger", fmt.Errorf(strings.TrimSpace(format), args...))
}

func (l *quietBadgerLogger) Warningf(format string, args ...interface{}) {
	logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *quietBadgerLogger) Infof(format string, args ...interface{}) {}

func (l *quietBadgerLogger) Debugf(format string, args ...interface{}) {}
