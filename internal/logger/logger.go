package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is a log severity level.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelPanic
)

var (
	mu       sync.RWMutex
	minLevel = LevelInfo
	logFile  *os.File
)

// ParseLevel converts a level name into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	case "panic":
		return LevelPanic, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

// SetLevel sets the minimum level that will be logged.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// SetFile mirrors log output to the given file path in addition to stderr.
func SetFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	return nil
}

func output(l Level, tag, format string, args ...any) {
	mu.RLock()
	min := minLevel
	f := logFile
	mu.RUnlock()
	if l < min {
		return
	}
	line := fmt.Sprintf("["+tag+"] "+format, args...)
	log.Print(line)
	if f != nil {
		fmt.Fprintln(f, line)
	}
}

func Trace(format string, args ...any) { output(LevelTrace, "TRACE", format, args...) }
func Debug(format string, args ...any) { output(LevelDebug, "DEBUG", format, args...) }
func Info(format string, args ...any)  { output(LevelInfo, "INFO", format, args...) }
func Warn(format string, args ...any)  { output(LevelWarn, "WARN", format, args...) }
func Error(format string, args ...any) { output(LevelError, "ERROR", format, args...) }

// Fatal logs and exits the process.
func Fatal(format string, args ...any) {
	output(LevelFatal, "FATAL", format, args...)
	os.Exit(1)
}
