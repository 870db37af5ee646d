package log

import "go.uber.org/zap"

var (
	SourceObjectStore = zap.String("source", "objectStore")
	SourceAuthService = zap.String("source", "authService")
	SourceEmitter     = zap.String("source", "emitter")
)
