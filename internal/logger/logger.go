package logger

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Components derive entries from it with
// WithFields so every line carries its component and session.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return l
}

// SetLevel parses a level name ("debug", "info", "warn", ...) and applies it.
func SetLevel(name string) error {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("log level %q: %w", name, err)
	}
	Log.SetLevel(lvl)
	return nil
}

// Component returns an entry tagged with the given component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
