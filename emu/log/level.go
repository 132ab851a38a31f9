package log

import "gopkg.in/Sirupsen/logrus.v0"

// Level is a logging severity, ordered like logrus levels: lower values are
// more severe.
type Level logrus.Level

const (
	PanicLevel = Level(logrus.PanicLevel)
	FatalLevel = Level(logrus.FatalLevel)
	ErrorLevel = Level(logrus.ErrorLevel)
	WarnLevel  = Level(logrus.WarnLevel)
	InfoLevel  = Level(logrus.InfoLevel)
	DebugLevel = Level(logrus.DebugLevel)
)

func (lvl Level) String() string {
	return logrus.Level(lvl).String()
}
