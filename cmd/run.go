package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"podnews/internal/feed"
)

var (
	latest  bool
	feedURL string
)

var runCmd = &cobra.Command{
	Use:   "run [audio-file]",
	Short: "Process recent feed episodes, or a single local audio file",
	Long: `Without arguments, run fetches the configured podcast feed and processes
every episode published within the lookback window. With --latest it
processes the newest episode regardless of age. With a local audio file
argument the feed is skipped entirely.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&latest, "latest", false, "process the newest episode even if outside the lookback window")
	runCmd.Flags().StringVar(&feedURL, "feed", "", "feed URL (overrides config)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(args) == 1 {
		return a.processLocalFile(ctx, args[0])
	}

	url := a.cfg.Feed.URL
	if feedURL != "" {
		url = feedURL
	}
	if url == "" {
		return fmt.Errorf("no feed URL: set feed.url in config or pass --feed")
	}

	episodes, err := a.selectEpisodes(ctx, url)
	if err != nil {
		return err
	}
	if len(episodes) == 0 {
		a.logger.Info(ctx, "No episodes published in the last %d hours", a.cfg.Feed.LookbackHours)
		return nil
	}

	for _, ep := range episodes {
		if err := a.processFeedEpisode(ctx, ep); err != nil {
			return fmt.Errorf("episode %q: %w", ep.Title, err)
		}
	}
	return nil
}

func (a *app) selectEpisodes(ctx context.Context, url string) ([]feed.Episode, error) {
	if latest {
		ep, err := a.feeds.Latest(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch feed: %w", err)
		}
		return []feed.Episode{ep}, nil
	}

	since := time.Now().Add(-time.Duration(a.cfg.Feed.LookbackHours) * time.Hour)
	episodes, err := a.feeds.PublishedSince(ctx, url, since)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	return episodes, nil
}

func (a *app) processFeedEpisode(ctx context.Context, ep feed.Episode) error {
	name := path.Base(ep.AudioURL)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if name == "" || name == "." || name == "/" {
		name = slugify(ep.Title) + ".mp3"
	}
	audioPath := filepath.Join(a.cfg.Paths.Work, name)

	a.logger.Info(ctx, "Downloading %q (%s)", ep.Title, ep.AudioURL)
	size, err := a.dl.Fetch(ctx, ep.AudioURL, audioPath)
	if err != nil {
		return fmt.Errorf("download audio: %w", err)
	}
	a.logger.Info(ctx, "Downloaded %.1f MB", float64(size)/(1<<20))
	defer os.Remove(audioPath)

	return a.processEpisode(ctx, ep, audioPath)
}

func (a *app) processLocalFile(ctx context.Context, inputPath string) error {
	absPath, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("audio file: %w", err)
	}

	name := filepath.Base(absPath)
	ep := feed.Episode{
		Title:     name[:len(name)-len(filepath.Ext(name))],
		Published: time.Now(),
	}
	return a.processEpisode(ctx, ep, absPath)
}
