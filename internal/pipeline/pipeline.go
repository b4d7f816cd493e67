package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"podnews/internal/segment"
	"podnews/internal/transcript"
)

// Run plans the windows, extracts and transcribes them in index order, and
// folds the results into one global transcript. On failure or cancellation
// the returned Result still holds every window merged so far.
func (p *implPipeline) Run(ctx context.Context, audioPath string) (Result, error) {
	duration, err := p.media.Probe(ctx, audioPath)
	if err != nil {
		return Result{}, fmt.Errorf("probe audio: %w", err)
	}

	windows, err := segment.Plan(duration, p.opts.MaxSegmentSec)
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(p.opts.WorkDir, 0755); err != nil {
		return Result{}, fmt.Errorf("create work dir: %w", err)
	}

	p.logger.Info(ctx, "planned %d windows of up to %.0fs over %.1fs of audio",
		len(windows), p.opts.MaxSegmentSec, duration)

	// Extraction is local and stateless per window, so it may run in
	// parallel. Failed windows keep their error; the ordered merge below
	// stops at the first one it reaches.
	var preExtracted []extractResult
	if p.opts.ExtractWorkers > 1 && len(windows) > 1 {
		preExtracted = p.extractAll(ctx, audioPath, windows)
	}

	merger := transcript.NewMerger(len(windows))
	partial := func() Result {
		return Result{
			Transcript: merger.Transcript(),
			Completed:  merger.Completed(),
			Planned:    merger.Planned(),
		}
	}

	for _, w := range windows {
		// Cancellation is honored between windows, never mid-merge.
		select {
		case <-ctx.Done():
			p.logger.Warn(ctx, "run stopped after %d/%d windows", merger.Completed(), len(windows))
			return partial(), ctx.Err()
		default:
		}

		var segPath string
		var err error
		if preExtracted != nil {
			segPath, err = preExtracted[w.Index].path, preExtracted[w.Index].err
		} else {
			segPath, err = p.extractStep(ctx, audioPath, w)
		}
		if err != nil {
			return partial(), err
		}

		spans, err := p.transcribeStep(ctx, segPath, w)
		if err != nil {
			return partial(), err
		}

		if err := merger.Merge(w, spans); err != nil {
			return partial(), err
		}

		if !p.opts.KeepSegments {
			if rmErr := os.Remove(segPath); rmErr != nil && !os.IsNotExist(rmErr) {
				p.logger.Debug(ctx, "cleanup segment %s: %v", filepath.Base(segPath), rmErr)
			}
		}

		p.logger.Info(ctx, "window %d/%d merged (%d spans)", w.Index+1, len(windows), len(spans))
	}

	return partial(), nil
}

func (p *implPipeline) extractStep(ctx context.Context, audioPath string, w segment.Window) (string, error) {
	var path string
	err := p.retryStep(ctx, KindMediaTool, w, func(stepCtx context.Context) error {
		var stepErr error
		path, stepErr = p.media.ExtractWindow(stepCtx, audioPath, p.opts.WorkDir, w)
		return stepErr
	})
	return path, err
}

func (p *implPipeline) transcribeStep(ctx context.Context, segPath string, w segment.Window) ([]transcript.Span, error) {
	var spans []transcript.Span
	err := p.retryStep(ctx, KindTranscription, w, func(stepCtx context.Context) error {
		if err := p.limiter.Wait(stepCtx); err != nil {
			return err
		}
		var stepErr error
		spans, stepErr = p.backend.Transcribe(stepCtx, segPath)
		return stepErr
	})
	return spans, err
}

// retryStep runs one external step with the per-step deadline. Media and
// transcription failures retry with exponential backoff up to MaxRetries;
// timeouts retry exactly once before escalating.
func (p *implPipeline) retryStep(ctx context.Context, kind ErrorKind, w segment.Window, fn func(context.Context) error) error {
	timeoutRetried := false
	attempt := 0
	for {
		stepCtx, cancel := context.WithTimeout(ctx, p.opts.StepTimeout)
		err := fn(stepCtx)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		werr := classify(kind, w.Index, err)
		if werr.Kind == KindTimeout {
			if timeoutRetried {
				return werr
			}
			timeoutRetried = true
			p.logger.Warn(ctx, "window %d %s step timed out, retrying once", w.Index, kind)
			continue
		}

		attempt++
		if attempt >= p.opts.MaxRetries {
			return werr
		}
		backoff := time.Duration(1<<uint(attempt-1)) * p.backoffUnit
		p.logger.Warn(ctx, "window %d failed (attempt %d/%d), retrying in %s: %v",
			w.Index, attempt, p.opts.MaxRetries, backoff, err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

type extractResult struct {
	path string
	err  error
}

// extractAll pre-extracts every window with bounded parallelism. Each window
// records its own outcome so one failure does not discard its siblings.
func (p *implPipeline) extractAll(ctx context.Context, audioPath string, windows []segment.Window) []extractResult {
	results := make([]extractResult, len(windows))

	var g errgroup.Group
	g.SetLimit(p.opts.ExtractWorkers)
	for _, w := range windows {
		g.Go(func() error {
			path, err := p.extractStep(ctx, audioPath, w)
			results[w.Index] = extractResult{path: path, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
