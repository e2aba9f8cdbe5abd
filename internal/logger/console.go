// Package logger provides the leveled console logger used by samplereport.
//
// Messages are prefixed with an [HH:MM:SS] timestamp and a level tag. Colour
// is only used when writing to a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	levelTrace = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

var levelNames = map[string]int{
	"trace": levelTrace,
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

var (
	debugColor = color.New(color.FgHiBlack)
	infoColor  = color.New(color.FgCyan)
	warnColor  = color.New(color.FgYellow, color.Bold)
	errorColor = color.New(color.FgRed, color.Bold)
)

// ConsoleLogger writes leveled log lines to a writer. It is safe for
// concurrent use. A nil writer discards everything.
type ConsoleLogger struct {
	writer      io.Writer
	level       int
	colorOutput bool
	now         func() time.Time
	mu          sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger. Valid levels are trace, debug,
// info, warn and error (case-insensitive); anything else means info.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		level:       ParseLevel(logLevel),
		colorOutput: isTerminal(writer),
		now:         time.Now,
	}
}

// ParseLevel maps a level name to its numeric value, defaulting to info.
func ParseLevel(level string) int {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(level))]; ok {
		return l
	}
	return levelInfo
}

// isTerminal reports whether w is stdout or stderr attached to a TTY.
// NO_COLOR is honoured through color.NoColor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || (f != os.Stdout && f != os.Stderr) {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (l *ConsoleLogger) Tracef(format string, args ...any) {
	l.log(levelTrace, "TRACE", debugColor, format, args...)
}

func (l *ConsoleLogger) Debugf(format string, args ...any) {
	l.log(levelDebug, "DEBUG", debugColor, format, args...)
}

func (l *ConsoleLogger) Infof(format string, args ...any) {
	l.log(levelInfo, "INFO", infoColor, format, args...)
}

func (l *ConsoleLogger) Warnf(format string, args ...any) {
	l.log(levelWarn, "WARN", warnColor, format, args...)
}

func (l *ConsoleLogger) Errorf(format string, args ...any) {
	l.log(levelError, "ERROR", errorColor, format, args...)
}

func (l *ConsoleLogger) log(level int, tag string, c *color.Color, format string, args ...any) {
	if l == nil || l.writer == nil || level < l.level {
		return
	}

	ts := l.now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	if l.colorOutput {
		tag = c.Sprint(tag)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.writer, "[%s] %s %s\n", ts, tag, msg)
}
