package pipeline

import (
	"time"

	"golang.org/x/time/rate"

	"podnews/internal/logger"
	"podnews/internal/media"
	"podnews/internal/transcribe"
)

type implPipeline struct {
	media   media.Media
	backend transcribe.Backend
	opts    Options
	limiter *rate.Limiter
	logger  logger.Logger

	// backoffUnit is scaled down in tests.
	backoffUnit time.Duration
}

// New creates a Pipeline instance. Zero option fields get defaults.
func New(m media.Media, backend transcribe.Backend, opts Options, log logger.Logger) Pipeline {
	if opts.MaxSegmentSec <= 0 {
		opts.MaxSegmentSec = 600
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = 15 * time.Minute
	}
	if opts.ExtractWorkers <= 0 {
		opts.ExtractWorkers = 1
	}
	if opts.RateLimitPerMin <= 0 {
		opts.RateLimitPerMin = 30
	}

	return &implPipeline{
		media:       m,
		backend:     backend,
		opts:        opts,
		limiter:     rate.NewLimiter(rate.Limit(float64(opts.RateLimitPerMin)/60.0), 1),
		logger:      log,
		backoffUnit: time.Second,
	}
}
