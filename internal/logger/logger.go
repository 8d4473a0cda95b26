package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logDirName  = ".flip-seven"
	logFileName = "debug.log"
	maxLogSize  = 10 * 1024 * 1024
)

var (
	log      = newLogger(io.Discard)
	debugLog *os.File
	logPath  string
)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000000",
		DisableColors:   true,
	})
	return l
}

// Init initializes the debug logger under the user's home directory.
// level is a logrus level name; an empty or unknown level means info.
func Init(level string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitDir(filepath.Join(homeDir, logDirName), level)
}

// InitDir initializes the debug logger writing to dir/debug.log.
func InitDir(logDir, level string) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(logDir, logFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	// Rotate if file is too large (> 10MB)
	if info, err := f.Stat(); err == nil && info.Size() > maxLogSize {
		_ = f.Close()
		backupPath := filepath.Join(logDir, fmt.Sprintf("%s.%d", logFileName, time.Now().Unix()))
		_ = os.Rename(path, backupPath)
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create new log file: %w", err)
		}
	}

	Close()
	debugLog = f
	logPath = path
	log.SetOutput(f)
	log.SetLevel(parseLevel(level))

	LogInfo("Logger initialized, log file: %s", logPath)
	return nil
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// L returns the shared logger for components that take a logrus.FieldLogger.
func L() *logrus.Logger {
	return log
}

// Close closes the debug log file
func Close() {
	if debugLog != nil {
		_ = debugLog.Close()
		debugLog = nil
	}
}

// LogInfo logs an info message
func LogInfo(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// LogPanic logs a panic with stack trace
func LogPanic(r interface{}) {
	log.WithField("stack", string(debug.Stack())).Errorf("panic: %v", r)
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	return logPath
}
