package canvas

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// LogLevel is the severity floor of the package logger. The resolution hot
// path logs through plain printf calls here rather than slog: a streaming
// session emits one line per dropped frame and structured attrs buy nothing.
type LogLevel int32

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelOff
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "OFF"}

// ParseLogLevel maps a level name to its LogLevel, defaulting to INFO.
func ParseLogLevel(s string) (LogLevel, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return LogLevel(i), nil
		}
	}
	return LogLevelInfo, fmt.Errorf("unknown log level: %s", s)
}

var (
	logLevel atomic.Int32
	stdlog   = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLogLevel sets the minimum severity emitted by this package.
func SetLogLevel(level LogLevel) { logLevel.Store(int32(level)) }

func emit(level LogLevel, format string, args ...any) {
	if int32(level) < logLevel.Load() {
		return
	}
	stdlog.Printf("[%s] %s", levelNames[level], fmt.Sprintf(format, args...))
}

func Debug(format string, args ...any) { emit(LogLevelDebug, format, args...) }
func Info(format string, args ...any)  { emit(LogLevelInfo, format, args...) }
func Warn(format string, args ...any)  { emit(LogLevelWarn, format, args...) }
func Error(format string, args ...any) { emit(LogLevelError, format, args...) }

func init() {
	SetLogLevel(LogLevelInfo)
	// Keep test output quiet unless a level is set explicitly.
	if strings.HasSuffix(os.Args[0], ".test") {
		SetLogLevel(LogLevelError)
	}
	if s := os.Getenv("EXCALIDRAW_LOG_LEVEL"); s != "" {
		if level, err := ParseLogLevel(s); err == nil {
			SetLogLevel(level)
		}
	}
}
