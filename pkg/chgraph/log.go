package chgraph

import "go.uber.org/zap"

// zapLogger adapts a *zap.SugaredLogger to the Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger wraps z for use as ReaderOptions.Logger.
func NewZapLogger(z *zap.Logger) Logger {
	return zapLogger{s: z.Sugar()}
}

func (l zapLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l zapLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}
