package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the different logging levels
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string log level, defaulting to INFO
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARNING", "WARN":
		return WARNING
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Logger writes leveled messages. Stdout is left to command output,
// so the default destination is stderr.
type Logger struct {
	mu    sync.Mutex
	level LogLevel
	out   *log.Logger
}

var (
	globalLogger *Logger
	once         sync.Once
)

// New creates a logger writing to output
func New(level LogLevel, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}
	return &Logger{
		level: level,
		out:   log.New(output, "", log.LstdFlags),
	}
}

// Init replaces the global logger
func Init(level LogLevel, output io.Writer) {
	once.Do(func() {})
	globalLogger = New(level, output)
}

// GetLogger returns the global logger, creating an INFO logger on first use
func GetLogger() *Logger {
	once.Do(func() {
		if globalLogger == nil {
			globalLogger = New(INFO, os.Stderr)
		}
	})
	return globalLogger
}

// SetLevel changes the log level of the global logger
func SetLevel(level LogLevel) {
	l := GetLogger()
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// GetLevel returns the current log level
func GetLevel() LogLevel {
	l := GetLogger()
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// IsDebugEnabled returns true if debug logging is enabled
func IsDebugEnabled() bool {
	return GetLevel() <= DEBUG
}

func (l *Logger) logf(level LogLevel, format string, v ...interface{}) {
	l.mu.Lock()
	enabled := l.level <= level
	l.mu.Unlock()
	if !enabled {
		return
	}
	l.out.Output(3, fmt.Sprintf("[%s] ", level)+fmt.Sprintf(format, v...))
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.logf(DEBUG, format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.logf(INFO, format, v...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, v ...interface{}) {
	l.logf(WARNING, format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.logf(ERROR, format, v...)
}

// Global convenience functions
func Debug(format string, v ...interface{}) {
	GetLogger().Debug(format, v...)
}

func Info(format string, v ...interface{}) {
	GetLogger().Info(format, v...)
}

func Warning(format string, v ...interface{}) {
	GetLogger().Warning(format, v...)
}

func Error(format string, v ...interface{}) {
	GetLogger().Error(format, v...)
}

// Writer returns an io.Writer that logs every line at the given level.
// It lets libraries with their own logging (gin, cron) share this output.
func Writer(level LogLevel) io.Writer {
	return &levelWriter{level: level}
}

type levelWriter struct {
	level LogLevel
}

func (w *levelWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	if msg != "" {
		GetLogger().logf(w.level, "%s", msg)
	}
	return len(p), nil
}
