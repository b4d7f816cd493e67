package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"podnews/internal/config"
	"podnews/internal/download"
	"podnews/internal/feed"
	"podnews/internal/logger"
	"podnews/internal/mail"
	"podnews/internal/media"
	"podnews/internal/newsletter"
	"podnews/internal/pipeline"
	"podnews/internal/transcribe"
	"podnews/pkg/executor"
)

// app wires the components for one invocation of a subcommand.
type app struct {
	cfg    *config.Config
	logger logger.Logger
	pipe   pipeline.Pipeline
	feeds  feed.Reader
	dl     download.Downloader
	gen    newsletter.Generator
	sender mail.Sender
}

func newApp() (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}

	exec := executor.New()
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		if err := exec.LookPath(tool); err != nil {
			return nil, fmt.Errorf("%s not found in PATH: %w", tool, err)
		}
	}

	var backend transcribe.Backend
	switch cfg.Transcribe.Backend {
	case "whispercpp":
		backend = transcribe.NewWhisperCpp(
			cfg.Transcribe.BinaryPath,
			cfg.Transcribe.ModelPath,
			cfg.Transcribe.Language,
			cfg.Transcribe.Threads,
			exec,
			log,
		)
	default:
		if cfg.Transcribe.APIKey == "" {
			return nil, fmt.Errorf("no API key for the openai backend; set OPENAI_API_KEY or STT_API_KEY")
		}
		backend = transcribe.NewOpenAI(cfg.Transcribe.BaseURL, cfg.Transcribe.APIKey, cfg.Transcribe.Model, log)
	}

	pipe := pipeline.New(media.New(exec, log), backend, pipeline.Options{
		MaxSegmentSec:   cfg.Segmenter.MaxSegmentSec,
		WorkDir:         cfg.Paths.Work,
		MaxRetries:      cfg.Pipeline.MaxRetries,
		StepTimeout:     time.Duration(cfg.Pipeline.StepTimeoutSec) * time.Second,
		ExtractWorkers:  cfg.Pipeline.ExtractWorkers,
		RateLimitPerMin: cfg.Pipeline.RateLimitPerMin,
		KeepSegments:    cfg.Pipeline.KeepSegments,
	}, log)

	a := &app{
		cfg:    cfg,
		logger: log,
		pipe:   pipe,
		feeds:  feed.New(log),
		dl:     download.New(log),
		gen:    newsletter.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log),
	}
	if cfg.Email.Enabled {
		a.sender = mail.New(mail.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
			To:       cfg.Email.To,
		}, log)
	}
	return a, nil
}

// processEpisode runs the full chain for one episode: transcribe, persist the
// WebVTT transcript, generate the newsletter, write Markdown and DOCX, and
// email subscribers when configured. A partial transcript is still written to
// disk before the transcription error is returned.
func (a *app) processEpisode(ctx context.Context, ep feed.Episode, audioPath string) error {
	base := slugify(ep.Title)
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	}
	if err := os.MkdirAll(a.cfg.Paths.Output, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	result, runErr := a.pipe.Run(ctx, audioPath)

	vttPath := filepath.Join(a.cfg.Paths.Output, base+".vtt")
	if len(result.Transcript.Spans) > 0 {
		if err := os.WriteFile(vttPath, []byte(result.Transcript.WebVTT()), 0o644); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
		a.logger.Info(ctx, "Transcript written: %s (%d/%d segments)", vttPath, result.Completed, result.Planned)
	}
	if runErr != nil {
		return fmt.Errorf("transcribe episode: %w", runErr)
	}

	news, err := a.gen.Generate(ctx, ep, result.Transcript)
	if err != nil {
		return fmt.Errorf("generate newsletter: %w", err)
	}

	markdown, err := newsletter.Render(news, ep.AudioURL)
	if err != nil {
		return fmt.Errorf("render newsletter: %w", err)
	}

	mdPath := filepath.Join(a.cfg.Paths.Output, base+".md")
	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write newsletter: %w", err)
	}
	a.logger.Info(ctx, "Newsletter written: %s", mdPath)

	docxPath := filepath.Join(a.cfg.Paths.Output, base+".docx")
	if err := newsletter.WriteDocx(news.Title, markdown, docxPath); err != nil {
		a.logger.Warn(ctx, "DOCX export failed: %v", err)
	} else {
		a.logger.Info(ctx, "DOCX written: %s", docxPath)
	}

	if a.sender != nil {
		if err := a.sender.Send(ctx, news.Title, markdown); err != nil {
			return fmt.Errorf("email newsletter: %w", err)
		}
	}

	return nil
}

// slugify turns an episode title into a safe file name.
func slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
