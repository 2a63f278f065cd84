// Package observability provides the shared logger used by the CLI and the HTTP server.
package observability

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init is called.
var Log = newLogger(os.Stderr, logrus.InfoLevel)

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(level)
	return l
}

// Init configures the process-wide logger. Unknown levels fall back to info.
func Init(levelStr string, out io.Writer) {
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	if out == nil {
		out = os.Stderr
	}
	Log.SetOutput(out)
	Log.SetLevel(level)
}

// Discard returns a logger that drops everything, for tests and quiet callers.
func Discard() *logrus.Logger {
	return newLogger(io.Discard, logrus.PanicLevel)
}
