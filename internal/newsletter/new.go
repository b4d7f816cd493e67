package newsletter

import (
	"podnews/internal/logger"
)

type implGenerator struct {
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// New creates a Generator that rotates through the supplied Gemini API keys
// when one is rate limited. Keys are injected here; the generator never reads
// the environment.
func New(apiKeys []string, model string, log logger.Logger) Generator {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implGenerator{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}
