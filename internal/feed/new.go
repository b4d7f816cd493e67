package feed

import (
	"github.com/mmcdole/gofeed"

	"podnews/internal/logger"
)

type implReader struct {
	parser *gofeed.Parser
	logger logger.Logger
}

// New creates a Reader instance.
func New(log logger.Logger) Reader {
	return &implReader{
		parser: gofeed.NewParser(),
		logger: log,
	}
}
