package log

import (
	"sync"

	"gopkg.in/Sirupsen/logrus.v0"
)

// EntryZ accumulates typed fields without allocating. All methods accept a
// nil receiver, which is what disabled modules hand out.
type EntryZ struct {
	lvl   Level
	msg   string
	mod   Module
	zfbuf [16]ZField
	zfidx int
}

var entryZPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func newEntryZ() *EntryZ {
	e := entryZPool.Get().(*EntryZ)
	e.zfidx = 0
	return e
}

func (e *EntryZ) add(f ZField) *EntryZ {
	if e == nil {
		return nil
	}
	if e.zfidx < len(e.zfbuf) {
		e.zfbuf[e.zfidx] = f
		e.zfidx++
	}
	return e
}

func (e *EntryZ) String(key, val string) *EntryZ {
	return e.add(ZField{Type: FieldTypeString, Key: key, String: val})
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	return e.add(ZField{Type: FieldTypeBool, Key: key, Boolean: val})
}

func (e *EntryZ) Int(key string, val int) *EntryZ {
	return e.add(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Uint8(key string, val uint8) *EntryZ {
	return e.add(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Uint32(key string, val uint32) *EntryZ {
	return e.add(ZField{Type: FieldTypeUint, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex32(key string, val uint32) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex32, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	return e.add(ZField{Type: FieldTypeError, Key: key, Error: err})
}

// End emits the entry and releases it.
func (e *EntryZ) End() {
	if e == nil {
		return
	}

	fields := make(logrus.Fields, e.zfidx+1)
	fields["_mod"] = e.mod.String()
	for i := range e.zfbuf[:e.zfidx] {
		fields[e.zfbuf[i].Key] = e.zfbuf[i].Value()
	}
	entry := logrus.StandardLogger().WithFields(fields)

	switch e.lvl {
	case FatalLevel:
		entry.Fatal(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	default:
		entry.Debug(e.msg)
	}
	entryZPool.Put(e)
}
