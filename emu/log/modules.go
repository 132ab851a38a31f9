package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

type ModuleMask uint64
type Module uint

const (
	ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF
)

// A few standard modules. Packages can declare their own with NewModule.
const (
	ModEmu Module = iota + 1
	ModMem
	ModHwIo

	endStandardMods
)

var modCount = endStandardMods

var (
	modDebugMask ModuleMask = 0
	disabled     bool
)

var modNames = []string{
	"<error>", "emu", "mem", "hwio",
}

func init() {
	logrus.SetLevel(logrus.DebugLevel)
}

func NewModule(name string) Module {
	mod := modCount
	modCount++
	modNames = append(modNames, name)
	return mod
}

// ModuleNames returns the names of all registered modules.
func ModuleNames() []string {
	return append([]string(nil), modNames[1:]...)
}

func ModuleByName(name string) (Module, bool) {
	for idx, s := range modNames {
		if idx != 0 && s == name {
			return Module(idx), true
		}
	}
	return Module(0xFFFFFFFF), false
}

func (mod Module) String() string {
	if int(mod) < len(modNames) {
		return modNames[mod]
	}
	return modNames[0]
}

func EnableDebugModules(mask ModuleMask) {
	modDebugMask |= mask
}

func DisableDebugModules(mask ModuleMask) {
	modDebugMask &^= mask
}

// Disable turns off all logging, including warnings and errors.
func Disable() {
	disabled = true
	logrus.SetOutput(io.Discard)
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

func (mod Module) Mask() ModuleMask {
	return 1 << ModuleMask(mod)
}

func (mod Module) Enabled(level Level) bool {
	if disabled {
		return false
	}
	return level <= WarnLevel || modDebugMask&mod.Mask() != 0
}

func (mod Module) WithField(key string, value any) Entry {
	return Entry{mod: mod}.WithField(key, value)
}

// printf-like family

func (mod Module) Debugf(format string, args ...any) {
	Entry{mod: mod}.Debugf(format, args...)
}

func (mod Module) Infof(format string, args ...any) {
	Entry{mod: mod}.Infof(format, args...)
}

func (mod Module) Warnf(format string, args ...any) {
	Entry{mod: mod}.Warnf(format, args...)
}

func (mod Module) Errorf(format string, args ...any) {
	Entry{mod: mod}.Errorf(format, args...)
}

func (mod Module) Fatalf(format string, args ...any) {
	Entry{mod: mod}.Fatalf(format, args...)
}

// Builder functions, returning nil (a no-op builder) when disabled.

func (mod Module) logz(lvl Level, msg string) *EntryZ {
	if mod.Enabled(lvl) {
		e := newEntryZ()
		e.lvl = lvl
		e.msg = msg
		e.mod = mod
		return e
	}
	return nil
}

func (mod Module) DebugZ(msg string) *EntryZ { return mod.logz(DebugLevel, msg) }
func (mod Module) InfoZ(msg string) *EntryZ  { return mod.logz(InfoLevel, msg) }
func (mod Module) WarnZ(msg string) *EntryZ  { return mod.logz(WarnLevel, msg) }
func (mod Module) ErrorZ(msg string) *EntryZ { return mod.logz(ErrorLevel, msg) }
func (mod Module) FatalZ(msg string) *EntryZ { return mod.logz(FatalLevel, msg) }
