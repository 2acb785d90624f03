package main

import (
	"github.com/Garik-/digitools/pkg/elektron"
	"go.uber.org/zap"
)

var commandLog = zap.NewNop()
var scanLog = zap.NewNop()

func enableDebugLogging(l *zap.Logger) {
	commandLog = l
	scanLog = l
	elektron.EnableDebugLogging(l)
}
