package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"podnews/internal/config"
	"podnews/internal/logger"
)

var (
	cfgPath string
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "podnews",
	Short: "Turn podcast episodes into timestamped newsletters",
	Long: `Podnews downloads podcast episodes, transcribes them in fixed-length
segments with ffmpeg and a speech-to-text backend, merges the segment
transcripts back onto the episode timeline, and asks Gemini to write a
newsletter whose sections deep-link into the audio.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
}

// loadConfig reads the config file and applies the logging flags on top.
func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	if quiet {
		level = "error"
	}

	return cfg, logger.New(level), nil
}
