package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

type Logger struct {
	Name   string
	Output io.Writer
	debug  bool
}

// NewLogger creates a logger writing to stderr, stdout is reserved for command output
func NewLogger(name string, level string) *Logger {
	return &Logger{
		Name:   name,
		Output: os.Stderr,
		debug:  strings.EqualFold(level, "debug"),
	}
}

func (l *Logger) WriteLevel(bs []byte, level string) (int, error) {
	now := time.Now().UTC().Format(time.DateTime)
	logMessage := fmt.Sprintf("[%s] - <%s> %s: %s", now, l.Name, level, bs)
	return fmt.Fprint(l.Output, logMessage)
}

func (l *Logger) Write(bs []byte) (int, error) {
	return l.WriteLevel(bs, "INFO")
}

func (l *Logger) Log(args ...interface{}) {
	logMessage := fmt.Sprint(args...)
	l.WriteLevel([]byte(logMessage+"\n"), "INFO")
}

func (l *Logger) Logf(format string, args ...interface{}) {
	logMessage := fmt.Sprintf(format, args...)
	l.WriteLevel([]byte(logMessage+"\n"), "INFO")
}

func (l *Logger) Error(args ...interface{}) {
	logMessage := fmt.Sprint(args...)
	l.WriteLevel([]byte("[ERROR] "+logMessage+"\n"), "ERROR")
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	logMessage := fmt.Sprintf(format, args...)
	l.WriteLevel([]byte("[ERROR] "+logMessage+"\n"), "ERROR")
}

func (l *Logger) Debug(args ...interface{}) {
	if !l.debug {
		return
	}
	logMessage := fmt.Sprint(args...)
	l.WriteLevel([]byte("[DEBUG] "+logMessage+"\n"), "DEBUG")
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	logMessage := fmt.Sprintf(format, args...)
	l.WriteLevel([]byte("[DEBUG] "+logMessage+"\n"), "DEBUG")
}
