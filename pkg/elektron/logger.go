package elektron

import "go.uber.org/zap"

var bankLog = zap.NewNop()

// EnableDebugLogging routes load and save diagnostics to l.
func EnableDebugLogging(l *zap.Logger) {
	bankLog = l
}
