package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/timedcache"
)

var _ timedcache.Logger = LogrusLogger{}

// LogrusLogger forwards cache logs to a logrus entry; Fields become logrus.Fields.
type LogrusLogger struct{ E *logrus.Entry }

func New(l *logrus.Logger) LogrusLogger {
	return LogrusLogger{E: logrus.NewEntry(l).WithField("component", "timedcache")}
}

func (l LogrusLogger) Debug(msg string, f timedcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f timedcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}
func (l LogrusLogger) Warn(msg string, f timedcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}
func (l LogrusLogger) Error(msg string, f timedcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
