package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"podnews/internal/watcher"
)

var watchConcurrent int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the inbox directory and process audio files as they arrive",
	Long: `Watch monitors the configured inbox directory. Every audio file dropped
into it is transcribed and turned into a newsletter, as if it had been
passed to "run" directly. Stop with Ctrl-C; in-flight episodes finish
before shutdown.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVarP(&watchConcurrent, "max-concurrent", "j", 1, "max episodes processed at once")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.cfg.Paths.Inbox, 0o755); err != nil {
		return fmt.Errorf("create inbox directory: %w", err)
	}

	w, err := watcher.New(a.cfg.Paths.Inbox, a.processLocalFile, a.logger, watchConcurrent)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
