package config

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// base is shared by every named logger so SetupLogging reaches all of them.
var base = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{FullTimestamp: true},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.InfoLevel,
}

var log = NamedLogger("config")

// NamedLogger creates a named package logger.
func NamedLogger(name string) *logrus.Entry {
	return base.WithField("component", name)
}

// SetupLogging applies s.LogLevel to every named logger.
func SetupLogging(s Settings) error {
	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		return err
	}
	base.SetLevel(level)
	return nil
}

// SetOutput redirects every named logger. Tests use it to capture or
// silence output.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}
