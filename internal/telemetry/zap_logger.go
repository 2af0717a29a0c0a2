package telemetry

import "go.uber.org/zap"

// WrapZap adapts a *zap.SugaredLogger to the Logger interface, mirroring
// WrapLogger's adaptation of the standard library logger. Callers that
// already run zap (as the pack's l1jgo server does for its own startup
// logging) can reuse it here without the object index knowing the
// difference.
func WrapZap(logger *zap.SugaredLogger) Logger {
	return &zapAdapter{logger: logger}
}

type zapAdapter struct {
	logger *zap.SugaredLogger
}

func (l *zapAdapter) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Infof(format, args...)
}
