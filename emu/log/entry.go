package log

import (
	"io"
	"sync"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func init() {
	logrus.SetLevel(logrus.DebugLevel)
}

// Disable turns off all logging, including warnings and errors.
func Disable() {
	logrus.SetOutput(io.Discard)
	modDebugMask = 0
}

// A Context attaches extra fields to every log entry, typically the
// current emulation clock, so that log lines can be correlated with the
// execution trace.
type Context interface {
	AddLogContext(e *EntryZ)
}

var contexts []Context

func AddContext(c Context) {
	contexts = append(contexts, c)
}

// EntryZ is a log entry under construction. It is nullable: all methods
// are no-ops on a nil receiver, so a disabled entry costs nothing but
// the level check.
type EntryZ struct {
	mod   Module
	lvl   Level
	msg   string
	zfbuf [16]ZField
	zfidx int
}

var entryPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func NewEntryZ() *EntryZ {
	e := entryPool.Get().(*EntryZ)
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

func (e *EntryZ) Bool(key string, v bool) *EntryZ {
	return e.add(ZField{Type: FieldTypeBool, Key: key, Boolean: v})
}

func (e *EntryZ) String(key, v string) *EntryZ {
	return e.add(ZField{Type: FieldTypeString, Key: key, String: v})
}

func (e *EntryZ) Int(key string, v int64) *EntryZ {
	return e.add(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Uint(key string, v uint64) *EntryZ {
	return e.add(ZField{Type: FieldTypeUint, Key: key, Integer: v})
}

func (e *EntryZ) Hex8(key string, v uint8) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Hex16(key string, v uint16) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(v)})
}

func (e *EntryZ) Error(key string, v error) *EntryZ {
	return e.add(ZField{Type: FieldTypeError, Key: key, Error: v})
}

func (e *EntryZ) Blob(key string, v []byte) *EntryZ {
	return e.add(ZField{Type: FieldTypeBlob, Key: key, Blob: v})
}

// End emits the entry and recycles it.
func (e *EntryZ) End() {
	if e == nil {
		return
	}

	for _, c := range contexts {
		c.AddLogContext(e)
	}

	fields := make(logrus.Fields, e.zfidx+1)
	fields["_mod"] = modNames[e.mod]
	for i := range e.zfbuf[:e.zfidx] {
		fields[e.zfbuf[i].Key] = e.zfbuf[i].Value()
	}

	entry := logrus.StandardLogger().WithFields(fields)
	lvl := e.lvl
	msg := e.msg
	entryPool.Put(e)

	switch lvl {
	case PanicLevel:
		entry.Panic(msg)
	case FatalLevel:
		entry.Fatal(msg)
	case ErrorLevel:
		entry.Error(msg)
	case WarnLevel:
		entry.Warn(msg)
	case InfoLevel:
		entry.Info(msg)
	case DebugLevel:
		entry.Debug(msg)
	}
}

func (mod Module) logf(lvl Level, format string, args ...any) {
	if !mod.Enabled(lvl) {
		return
	}
	entry := logrus.StandardLogger().WithField("_mod", modNames[mod])
	switch lvl {
	case PanicLevel:
		entry.Panicf(format, args...)
	case FatalLevel:
		entry.Fatalf(format, args...)
	case ErrorLevel:
		entry.Errorf(format, args...)
	case WarnLevel:
		entry.Warnf(format, args...)
	case InfoLevel:
		entry.Infof(format, args...)
	case DebugLevel:
		entry.Debugf(format, args...)
	}
}
