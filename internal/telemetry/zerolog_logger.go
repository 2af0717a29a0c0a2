package telemetry

import "github.com/rs/zerolog"

// WrapZerolog adapts a zerolog.Logger to the Logger interface, the
// zerolog-ecosystem sibling of WrapZap — grounded on the Adalanche pack
// repo's use of zerolog as its structured logger of choice.
func WrapZerolog(logger zerolog.Logger) Logger {
	return &zerologAdapter{logger: logger}
}

type zerologAdapter struct {
	logger zerolog.Logger
}

func (l *zerologAdapter) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Info().Msgf(format, args...)
}
