package logger

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a logrus logger writing human-readable lines to w.
func New(level logrus.Level, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return log
}

// ParseLevel is logrus.ParseLevel with info as the fallback for empty input.
func ParseLevel(s string) (logrus.Level, error) {
	if s == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(s)
}
