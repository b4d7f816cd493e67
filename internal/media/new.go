package media

import (
	"podnews/internal/logger"
	"podnews/pkg/executor"
)

type implMedia struct {
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Media instance backed by ffmpeg/ffprobe on the PATH.
func New(exec executor.Executor, log logger.Logger) Media {
	return &implMedia{
		executor: exec,
		logger:   log,
	}
}
