package logx

import (
	"fmt"
	"io"
	"io/ioutil"
	"strings"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	NOTICE
	WARN
	ERROR
	CRITICAL
	LevelCount
)

var levelNames = [LevelCount]string{
	DEBUG:    "debug",
	INFO:     "info",
	NOTICE:   "notice",
	WARN:     "warn",
	ERROR:    "error",
	CRITICAL: "critical",
}

func (l Level) String() string {
	if l >= 0 && l < LevelCount {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel parses level name as accepted by command line flags.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	if s == "warning" {
		return WARN, nil
	}
	for i, n := range levelNames {
		if n == s {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

type LoggerX interface {
	LogPrintX(section string, lvl Level, v ...interface{})
	LogPrintlnX(section string, lvl Level, v ...interface{})
	LogPrintfX(section string, lvl Level, fmt string, v ...interface{})
	// LockWriteX starts raw multi-line entry, returns false if level is filtered.
	// On true, entry must be finished with UnlockWriteX.
	LockWriteX(section string, lvl Level) bool
	UnlockWriteX()
	io.Writer
}

type Logger interface {
	LogPrint(lvl Level, v ...interface{})
	LogPrintln(lvl Level, v ...interface{})
	LogPrintf(lvl Level, fmt string, v ...interface{})
	LockWrite(lvl Level) bool
	UnlockWrite()
	io.Writer
}

type LogToX struct {
	section string
	logx    LoggerX
}

func (l LogToX) LogPrint(lvl Level, v ...interface{})   { l.logx.LogPrintX(l.section, lvl, v...) }
func (l LogToX) LogPrintln(lvl Level, v ...interface{}) { l.logx.LogPrintlnX(l.section, lvl, v...) }
func (l LogToX) LogPrintf(lvl Level, fmt string, v ...interface{}) {
	l.logx.LogPrintfX(l.section, lvl, fmt, v...)
}
func (l LogToX) LockWrite(lvl Level) bool           { return l.logx.LockWriteX(l.section, lvl) }
func (l LogToX) UnlockWrite()                       { l.logx.UnlockWriteX() }
func (l LogToX) Write(b []byte) (int, error)        { return l.logx.Write(b) }
func NewLogToX(logx LoggerX, section string) LogToX { return LogToX{section: section, logx: logx} }

var _ Logger = LogToX{}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) LogPrint(Level, ...interface{})          {}
func (NopLogger) LogPrintln(Level, ...interface{})        {}
func (NopLogger) LogPrintf(Level, string, ...interface{}) {}
func (NopLogger) LockWrite(Level) bool                    { return false }
func (NopLogger) UnlockWrite()                            {}
func (NopLogger) Write(b []byte) (int, error)             { return ioutil.Discard.Write(b) }

var _ Logger = NopLogger{}
