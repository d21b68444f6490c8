// Package logger builds the process logger. It is passed explicitly to
// every component that logs.
package logger

import (
	"github.com/sirupsen/logrus"
)

// New returns a logger at the given level. Production writes JSON; other
// environments write text with full timestamps.
func New(level string, env string) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}
