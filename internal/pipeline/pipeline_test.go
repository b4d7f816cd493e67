package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"podnews/internal/logger"
	"podnews/internal/media"
	"podnews/internal/segment"
	"podnews/internal/transcript"
)

// fakeMedia satisfies media.Media without invoking ffmpeg.
type fakeMedia struct {
	mu          sync.Mutex
	duration    float64
	failExtract map[int]int // window index -> remaining failures
}

func (f *fakeMedia) Probe(ctx context.Context, path string) (float64, error) {
	return f.duration, nil
}

func (f *fakeMedia) ExtractWindow(ctx context.Context, srcPath, destDir string, w segment.Window) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failExtract[w.Index] != 0 {
		if f.failExtract[w.Index] > 0 {
			f.failExtract[w.Index]--
		}
		return "", &media.ToolError{Window: w.Index, Detail: "fake stderr", Err: errors.New("exit status 1")}
	}
	p := filepath.Join(destDir, fmt.Sprintf("segment_%03d.mp3", w.Index))
	if err := os.WriteFile(p, []byte("audio"), 0644); err != nil {
		return "", err
	}
	return p, nil
}

// fakeBackend satisfies transcribe.Backend, keyed by the window index encoded
// in the segment filename.
type fakeBackend struct {
	mu     sync.Mutex
	spans  map[int][]transcript.Span
	fail   map[int]int // window index -> remaining failures (-1 = permanent)
	errFor error
	after  func(window int)
}

func (f *fakeBackend) Transcribe(ctx context.Context, audioPath string) ([]transcript.Span, error) {
	var idx int
	if _, err := fmt.Sscanf(filepath.Base(audioPath), "segment_%03d.mp3", &idx); err != nil {
		return nil, fmt.Errorf("unexpected segment name %q: %w", audioPath, err)
	}

	f.mu.Lock()
	remaining := f.fail[idx]
	if remaining != 0 {
		if remaining > 0 {
			f.fail[idx]--
		}
		f.mu.Unlock()
		if f.errFor != nil {
			return nil, f.errFor
		}
		return nil, errors.New("transcription unavailable")
	}
	f.mu.Unlock()

	if f.after != nil {
		defer f.after(idx)
	}
	return f.spans[idx], nil
}

func newTestPipeline(t *testing.T, m *fakeMedia, b *fakeBackend, opts Options) *implPipeline {
	t.Helper()
	if opts.WorkDir == "" {
		opts.WorkDir = t.TempDir()
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	// Keep the rate limiter out of the way in tests.
	opts.RateLimitPerMin = 600000
	p := New(m, b, opts, logger.New("error")).(*implPipeline)
	p.backoffUnit = time.Millisecond
	return p
}

func TestRunMergesAllWindows(t *testing.T) {
	m := &fakeMedia{duration: 125}
	b := &fakeBackend{spans: map[int][]transcript.Span{
		0: {{Start: 1.0, End: 2.0, Text: "zero"}},
		1: {{Start: 0.5, End: 3.0, Text: "one"}},
		2: {{Start: 3.0, End: 4.5, Text: "end"}},
	}}
	p := newTestPipeline(t, m, b, Options{MaxSegmentSec: 60})

	res, err := p.Run(context.Background(), "episode.mp3")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Complete() || res.Completed != 3 || res.Planned != 3 {
		t.Fatalf("progress = %d/%d, want 3/3", res.Completed, res.Planned)
	}
	if len(res.Transcript.Spans) != 3 {
		t.Fatalf("got %d spans, want 3", len(res.Transcript.Spans))
	}
	last := res.Transcript.Spans[2]
	if last.Start != 123.0 || last.End != 124.5 || last.Text != "end" {
		t.Errorf("last span = %+v, want (123.0, 124.5, end)", last)
	}
}

func TestRunPartialFailurePreservesProgress(t *testing.T) {
	m := &fakeMedia{duration: 300}
	b := &fakeBackend{
		spans: map[int][]transcript.Span{
			0: {{Start: 1, End: 2, Text: "zero"}},
			1: {{Start: 1, End: 2, Text: "one"}},
		},
		fail: map[int]int{2: -1},
	}
	p := newTestPipeline(t, m, b, Options{MaxSegmentSec: 60})

	res, err := p.Run(context.Background(), "episode.mp3")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var werr *WindowError
	if !errors.As(err, &werr) {
		t.Fatalf("error %v is not a WindowError", err)
	}
	if werr.Kind != KindTranscription || werr.Window != 2 {
		t.Errorf("got %s error for window %d, want transcription for 2", werr.Kind, werr.Window)
	}

	if res.Completed != 2 || res.Planned != 5 {
		t.Errorf("progress = %d/%d, want 2/5", res.Completed, res.Planned)
	}
	if len(res.Transcript.Spans) != 2 {
		t.Fatalf("partial transcript has %d spans, want 2", len(res.Transcript.Spans))
	}
	if res.Transcript.Spans[0].Text != "zero" || res.Transcript.Spans[1].Text != "one" {
		t.Errorf("partial spans corrupted: %+v", res.Transcript.Spans)
	}
	if res.Transcript.Spans[1].Start != 61 {
		t.Errorf("window 1 span start = %f, want 61", res.Transcript.Spans[1].Start)
	}
}

func TestRunRetriesTransientFailures(t *testing.T) {
	m := &fakeMedia{duration: 100}
	b := &fakeBackend{
		spans: map[int][]transcript.Span{
			0: {{Start: 1, End: 2, Text: "zero"}},
			1: {{Start: 1, End: 2, Text: "one"}},
		},
		fail: map[int]int{1: 2}, // fails twice, succeeds on third attempt
	}
	p := newTestPipeline(t, m, b, Options{MaxSegmentSec: 60, MaxRetries: 3})

	res, err := p.Run(context.Background(), "episode.mp3")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Complete() {
		t.Errorf("progress = %d/%d, want complete", res.Completed, res.Planned)
	}
}

func TestRunExtractionFailure(t *testing.T) {
	m := &fakeMedia{duration: 100, failExtract: map[int]int{1: -1}}
	b := &fakeBackend{spans: map[int][]transcript.Span{
		0: {{Start: 1, End: 2, Text: "zero"}},
	}}
	p := newTestPipeline(t, m, b, Options{MaxSegmentSec: 60})

	res, err := p.Run(context.Background(), "episode.mp3")
	var werr *WindowError
	if !errors.As(err, &werr) {
		t.Fatalf("error %v is not a WindowError", err)
	}
	if werr.Kind != KindMediaTool || werr.Window != 1 {
		t.Errorf("got %s error for window %d, want media tool for 1", werr.Kind, werr.Window)
	}
	var toolErr *media.ToolError
	if !errors.As(err, &toolErr) || toolErr.Detail != "fake stderr" {
		t.Errorf("tool diagnostics not preserved: %v", err)
	}
	if res.Completed != 1 {
		t.Errorf("Completed = %d, want 1", res.Completed)
	}
}

func TestRunTimeoutEscalatesAfterOneRetry(t *testing.T) {
	m := &fakeMedia{duration: 50}
	b := &fakeBackend{
		fail:   map[int]int{0: -1},
		errFor: fmt.Errorf("transcription request: %w", context.DeadlineExceeded),
	}
	p := newTestPipeline(t, m, b, Options{MaxSegmentSec: 60, MaxRetries: 5})

	_, err := p.Run(context.Background(), "episode.mp3")
	var werr *WindowError
	if !errors.As(err, &werr) {
		t.Fatalf("error %v is not a WindowError", err)
	}
	if werr.Kind != KindTimeout {
		t.Errorf("got %s error, want timeout", werr.Kind)
	}
}

func TestRunCancelledBetweenWindows(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := &fakeMedia{duration: 300}
	b := &fakeBackend{
		spans: map[int][]transcript.Span{
			0: {{Start: 1, End: 2, Text: "zero"}},
		},
		after: func(window int) {
			if window == 0 {
				cancel()
			}
		},
	}
	p := newTestPipeline(t, m, b, Options{MaxSegmentSec: 60})

	res, err := p.Run(ctx, "episode.mp3")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if res.Completed != 1 || res.Planned != 5 {
		t.Errorf("progress = %d/%d, want 1/5", res.Completed, res.Planned)
	}
	if len(res.Transcript.Spans) != 1 {
		t.Errorf("partial transcript has %d spans, want 1", len(res.Transcript.Spans))
	}
}

func TestRunInvalidDuration(t *testing.T) {
	m := &fakeMedia{duration: 0}
	p := newTestPipeline(t, m, &fakeBackend{}, Options{MaxSegmentSec: 60})

	_, err := p.Run(context.Background(), "episode.mp3")
	if !errors.Is(err, segment.ErrInvalidInput) {
		t.Errorf("Run() error = %v, want ErrInvalidInput", err)
	}
}

func TestRunParallelExtractionKeepsOrder(t *testing.T) {
	m := &fakeMedia{duration: 250}
	b := &fakeBackend{spans: map[int][]transcript.Span{
		0: {{Start: 1, End: 2, Text: "w0"}},
		1: {{Start: 1, End: 2, Text: "w1"}},
		2: {{Start: 1, End: 2, Text: "w2"}},
		3: {{Start: 1, End: 2, Text: "w3"}},
		4: {{Start: 1, End: 2, Text: "w4"}},
	}}
	p := newTestPipeline(t, m, b, Options{MaxSegmentSec: 60, ExtractWorkers: 4, KeepSegments: true})

	res, err := p.Run(context.Background(), "episode.mp3")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Complete() {
		t.Fatalf("progress = %d/%d, want complete", res.Completed, res.Planned)
	}
	for i := 1; i < len(res.Transcript.Spans); i++ {
		if res.Transcript.Spans[i].Start < res.Transcript.Spans[i-1].Start {
			t.Fatalf("spans out of order at %d: %+v", i, res.Transcript.Spans)
		}
	}
	if res.Transcript.Spans[4].Text != "w4" || res.Transcript.Spans[4].Start != 241 {
		t.Errorf("last span = %+v, want w4 at 241", res.Transcript.Spans[4])
	}
}
