package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

type Fields logrus.Fields

// Entry is a nullable logrus.Entry: fields are only evaluated once the
// module and level are known to be enabled.
type Entry struct {
	mod        Module
	lazyfields [4]func() Fields
}

func (entry Entry) log() *logrus.Entry {
	final := logrus.StandardLogger().WithField("_mod", entry.mod.String())
	for _, lf := range entry.lazyfields {
		if lf != nil {
			final = final.WithFields(logrus.Fields(lf()))
		}
	}
	return final
}

func (entry Entry) WithField(key string, value any) Entry {
	return entry.WithDelayedFields(func() Fields {
		return Fields{key: value}
	})
}

func (entry Entry) WithDelayedFields(getfields func() Fields) Entry {
	for idx := range entry.lazyfields {
		if entry.lazyfields[idx] == nil {
			entry.lazyfields[idx] = getfields
			return entry
		}
	}
	return entry
}

func (entry Entry) Debugf(format string, args ...any) {
	if entry.mod.Enabled(DebugLevel) {
		entry.log().Debugf(format, args...)
	}
}

func (entry Entry) Infof(format string, args ...any) {
	if entry.mod.Enabled(InfoLevel) {
		entry.log().Infof(format, args...)
	}
}

func (entry Entry) Warnf(format string, args ...any) {
	if entry.mod.Enabled(WarnLevel) {
		entry.log().Warnf(format, args...)
	}
}

func (entry Entry) Errorf(format string, args ...any) {
	if entry.mod.Enabled(ErrorLevel) {
		entry.log().Errorf(format, args...)
	}
}

func (entry Entry) Fatalf(format string, args ...any) {
	if entry.mod.Enabled(FatalLevel) {
		entry.log().Fatalf(format, args...)
	}
}
