package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes a per-run scan log file under logs/.
type Logger struct {
	label   string
	logFile *os.File
	logger  *log.Logger
	mu      sync.Mutex
	logDir  string
}

// LogLevel represents different types of log entries.
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelSkip    LogLevel = "SKIP"
	LogLevelPattern LogLevel = "PATTERN"
)

// NewLogger creates a file logger for the given run label, e.g.
// "scan_2026" or "backtest_2023".
func NewLogger(label string) (*Logger, error) {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", label, timestamp)
	logPath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		label:   label,
		logFile: file,
		logger:  log.New(file, "", 0),
		logDir:  logDir,
	}, nil
}

func (l *Logger) write(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] [%s] %s", timestamp, level, message)
}

// Info logs a general progress entry.
func (l *Logger) Info(format string, args ...interface{}) {
	l.write(LogLevelInfo, format, args...)
}

// Warn logs a non-fatal problem.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.write(LogLevelWarning, format, args...)
}

// Skip logs an instrument skipped during a scan with its reason.
func (l *Logger) Skip(ticker, reason string) {
	l.write(LogLevelSkip, "%s skipped: %s", ticker, reason)
}

// Pattern logs a found pattern summary line.
func (l *Logger) Pattern(ticker, direction, ratio string, avgReturn float64) {
	l.write(LogLevelPattern, "%s %s %s avg_return=%.2f%%", ticker, direction, ratio, avgReturn)
}

// Path returns the log file location.
func (l *Logger) Path() string {
	return l.logFile.Name()
}

// Close flushes and closes the underlying log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logFile.Close()
}
