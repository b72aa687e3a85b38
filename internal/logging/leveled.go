package logging

import "context"

// LeveledLogger is a Logger without context arguments. It matches the
// LeveledLogger interface of github.com/hashicorp/go-retryablehttp.
type LeveledLogger struct {
	l Logger
}

// Leveled adapts l for libraries that log without a context.
func Leveled(l Logger) *LeveledLogger {
	return &LeveledLogger{l: l}
}

func (a *LeveledLogger) Error(msg string, keysAndValues ...interface{}) {
	a.l.Error(context.Background(), msg, keysAndValues...)
}

func (a *LeveledLogger) Info(msg string, keysAndValues ...interface{}) {
	a.l.Info(context.Background(), msg, keysAndValues...)
}

func (a *LeveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	a.l.Debug(context.Background(), msg, keysAndValues...)
}

func (a *LeveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	a.l.Warn(context.Background(), msg, keysAndValues...)
}
