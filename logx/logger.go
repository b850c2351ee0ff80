// Package logx is the small leveled logger used by the store and
// workers packages for diagnostics: block flushes, skipped or unreadable
// files while packaging, and worker-pool completion.
package logx

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level ranks log severity; messages below the logger's configured
// level are dropped.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) label() string {
	switch l {
	case Debug:
		return "[DEBUG] "
	case Info:
		return "[INFO] "
	case Warn:
		return "[WARN] "
	case Error:
		return "[ERROR] "
	default:
		return ""
	}
}

// Logger is a mutex-guarded, level-filtered writer.
type Logger struct {
	mu      sync.RWMutex
	level   Level
	output  io.Writer
	enabled bool
}

// Global is the package-level logger every call in this module writes
// through.
var Global = &Logger{level: Info, output: os.Stderr, enabled: true}

// SetLevel sets the minimum level that will be emitted.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetOutput redirects log output.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// SetEnabled toggles all output.
func (l *Logger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.RLock()
	if !l.enabled || level < l.level {
		l.mu.RUnlock()
		return
	}
	out := l.output
	l.mu.RUnlock()
	fmt.Fprintf(out, level.label()+format+"\n", args...)
}

func (l *Logger) Debug(format string, args ...interface{}) { l.log(Debug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.log(Info, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log(Warn, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log(Error, format, args...) }

// Package-level convenience functions against Global.

func SetLevel(level Level)     { Global.SetLevel(level) }
func SetOutput(w io.Writer)    { Global.SetOutput(w) }
func SetEnabled(enabled bool)  { Global.SetEnabled(enabled) }
func Debugf(f string, a ...interface{}) { Global.Debug(f, a...) }
func Infof(f string, a ...interface{})  { Global.Info(f, a...) }
func Warnf(f string, a ...interface{})  { Global.Warn(f, a...) }
func Errorf(f string, a ...interface{}) { Global.Error(f, a...) }
