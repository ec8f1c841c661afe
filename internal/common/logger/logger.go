// Package logger configures the process-wide logrus logger.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Configure sets level and output format on the standard logrus logger.
// Unknown levels fall back to info; format is "text" (default) or "json".
func Configure(level, format string) *logrus.Logger {
	l := logrus.StandardLogger()
	l.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if err != nil && level != "" {
		l.WithField("value", level).Warn("unknown LOG_LEVEL, using info")
	}

	return l
}

// Module returns an entry tagged with the module name
func Module(name string) *logrus.Entry {
	return logrus.WithField("module", name)
}
