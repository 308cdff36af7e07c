package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileLogger appends leveled messages to a single log file (app.log by
// default), matching the console format minus colors. Sessions are
// separated by a header line so interleaved runs stay readable. It is
// thread-safe and flushes after every write.
type FileLogger struct {
	path     string
	file     *os.File
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger opens (or creates) the log file at path in append mode and
// writes a session header. The parent directory is created when missing.
func NewFileLogger(path string, logLevel string) (*FileLogger, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	fl := &FileLogger{
		path:     path,
		file:     file,
		logLevel: normalizeLogLevel(logLevel),
		mu:       sync.Mutex{},
	}

	fl.write(fmt.Sprintf("--- session %s ---\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// shouldLog checks if a message at the given level should be logged.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

// logWithLevel logs a message at the specified level if filtering allows it.
func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}

	fl.write(fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), level, message))
}

// Path returns the log file location.
func (fl *FileLogger) Path() string {
	return fl.path
}

// Close flushes and closes the log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file != nil {
		if err := fl.file.Sync(); err != nil {
			return fmt.Errorf("sync log file: %w", err)
		}
		if err := fl.file.Close(); err != nil {
			return fmt.Errorf("close log file: %w", err)
		}
		fl.file = nil
	}

	return nil
}

// write is a thread-safe helper that appends to the log file.
func (fl *FileLogger) write(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file != nil {
		fl.file.WriteString(message)
		// Flush per write so a crash loses at most the current line.
		fl.file.Sync()
	}
}
