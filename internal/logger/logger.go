// Package logger provides the logging implementations used by cargogen
// commands: a leveled color console logger, an append-mode file logger, and
// a fan-out combining both. Implementations are safe for concurrent use.
package logger

// Logger is the leveled message interface the pipeline logs through.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// MultiLogger delegates every message to each of its loggers.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a fan-out over the given loggers. Nil entries are
// skipped so callers can pass an optional file logger unconditionally.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	ml := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			ml.loggers = append(ml.loggers, l)
		}
	}
	return ml
}

// LogTrace forwards to all loggers.
func (ml *MultiLogger) LogTrace(message string) {
	for _, l := range ml.loggers {
		l.LogTrace(message)
	}
}

// LogDebug forwards to all loggers.
func (ml *MultiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

// LogInfo forwards to all loggers.
func (ml *MultiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

// LogWarn forwards to all loggers.
func (ml *MultiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

// LogError forwards to all loggers.
func (ml *MultiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}

// NoOpLogger discards all log messages. Useful for tests and for callers
// that want logging disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogTrace is a no-op implementation.
func (n *NoOpLogger) LogTrace(message string) {
}

// LogDebug is a no-op implementation.
func (n *NoOpLogger) LogDebug(message string) {
}

// LogInfo is a no-op implementation.
func (n *NoOpLogger) LogInfo(message string) {
}

// LogWarn is a no-op implementation.
func (n *NoOpLogger) LogWarn(message string) {
}

// LogError is a no-op implementation.
func (n *NoOpLogger) LogError(message string) {
}
