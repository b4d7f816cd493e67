package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"podnews/internal/logger"
)

// settleDelay gives the producer time to finish writing the audio file
// before we start reading it.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	inboxDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start begins monitoring the inbox directory for new audio files.
// Episodes dropped into the inbox are processed as they appear, up to
// maxConcurrent at a time.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inboxDir)
	w.logger.Info(ctx, "Supported formats: .mp3, .m4a, .wav, .aac, .ogg, .flac")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing episodes to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if event.Op&fsnotify.Create == fsnotify.Create {
				if w.isAudioFile(event.Name) {
					w.logger.Info(ctx, "New episode detected: %s", event.Name)

					time.Sleep(settleDelay)

					// Acquire semaphore slot (blocks if max concurrent reached)
					select {
					case w.semaphore <- struct{}{}:
						w.wg.Add(1)
						go func(filePath string) {
							defer w.wg.Done()
							defer func() { <-w.semaphore }()

							if err := w.handler(ctx, filePath); err != nil {
								w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
							}
						}(event.Name)
					case <-ctx.Done():
						return ctx.Err()
					}
				} else {
					w.logger.Debug(ctx, "Ignoring non-audio file: %s", event.Name)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// isAudioFile checks if the file has a supported audio extension
func (w *implWatcher) isAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	supportedFormats := []string{".mp3", ".m4a", ".wav", ".aac", ".ogg", ".flac"}

	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}

	return false
}
