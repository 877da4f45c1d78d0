// Package logger holds the process-wide logrus entry used by the core
// components and the CLI.
package logger

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// L is the global logger entry. Components default to it when no logger is injected.
var L = logrus.NewEntry(newLogger())

func newLogger() *logrus.Logger {
	l := logrus.New()
	setLoggerFormat(l, "text")
	return l
}

func setLoggerFormat(logger *logrus.Logger, format string) {
	switch format {
	case "json":
		logger.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
			TimestampFormat: time.RFC3339Nano,
		}
	default:
		logger.Formatter = &logrus.TextFormatter{
			TimestampFormat: time.RFC3339,
			FullTimestamp:   true,
		}
	}
}

func SetLogLevel(level string) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	L.Logger.SetLevel(logLevel)
	return nil
}

// SetLogFormat accepts "json"; anything else selects the text formatter.
func SetLogFormat(format string) {
	setLoggerFormat(L.Logger, format)
}

func SetLogOutput(w io.Writer) {
	L.Logger.SetOutput(w)
}
