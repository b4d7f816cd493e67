package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"podnews/internal/logger"
	"podnews/internal/transcript"
	"podnews/pkg/executor"
)

type implWhisperCpp struct {
	binaryPath string
	modelPath  string
	language   string
	threads    int
	executor   executor.Executor
	logger     logger.Logger
}

// NewWhisperCpp creates a Backend that runs a local whisper.cpp binary and
// reads its JSON output file.
func NewWhisperCpp(binaryPath, modelPath, language string, threads int, exec executor.Executor, log logger.Logger) Backend {
	if threads <= 0 {
		threads = 4
	}
	return &implWhisperCpp{
		binaryPath: binaryPath,
		modelPath:  modelPath,
		language:   language,
		threads:    threads,
		executor:   exec,
		logger:     log,
	}
}

// whisperOutput mirrors whisper.cpp's -oj JSON file. Offsets are integer
// milliseconds relative to the segment start.
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func (w *implWhisperCpp) Transcribe(ctx context.Context, audioPath string) ([]transcript.Span, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	// -l forces the language to prevent hallucination on noisy segments.
	args := []string{
		"-m", w.modelPath,
		"-f", audioPath,
		"-oj",
		"-l", w.language,
		"-t", strconv.Itoa(w.threads),
		"--output-file", outputPrefix,
	}

	w.logger.Debug(ctx, "transcribing %s with whisper.cpp (%d threads)", filepath.Base(audioPath), w.threads)

	if _, err := w.executor.Execute(ctx, w.binaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	jsonPath := outputPrefix + ".json"
	defer os.Remove(jsonPath)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	var parsed whisperOutput
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse whisper output: %v", ErrMalformed, err)
	}

	spans := make([]transcript.Span, 0, len(parsed.Transcription))
	for _, seg := range parsed.Transcription {
		spans = append(spans, transcript.Span{
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
			Text:  seg.Text,
		})
	}
	return sanitize(spans)
}
