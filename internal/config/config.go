package config

import "fmt"

type Config struct {
	Feed       FeedConfig       `yaml:"feed"`
	Transcribe TranscribeConfig `yaml:"transcribe"`
	Segmenter  SegmenterConfig  `yaml:"segmenter"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Email      EmailConfig      `yaml:"email"`
	Paths      PathsConfig      `yaml:"paths"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type FeedConfig struct {
	URL           string `yaml:"url"`
	LookbackHours int    `yaml:"lookback_hours"`
}

type TranscribeConfig struct {
	Backend    string `yaml:"backend"` // "openai" or "whispercpp"
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`

	// APIKey comes from the environment, never from the YAML file.
	APIKey string `yaml:"-"`
}

type SegmenterConfig struct {
	MaxSegmentSec float64 `yaml:"max_segment_sec"`
}

type PipelineConfig struct {
	MaxRetries      int  `yaml:"max_retries"`
	StepTimeoutSec  int  `yaml:"step_timeout_sec"`
	ExtractWorkers  int  `yaml:"extract_workers"`
	RateLimitPerMin int  `yaml:"rate_limit_per_min"`
	KeepSegments    bool `yaml:"keep_segments"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`

	// APIKeys come from the environment, never from the YAML file.
	APIKeys []string `yaml:"-"`
}

type EmailConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`

	// Password comes from the environment, never from the YAML file.
	Password string `yaml:"-"`
}

type PathsConfig struct {
	Inbox  string `yaml:"inbox"`
	Work   string `yaml:"work"`
	Output string `yaml:"output"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func (c *Config) Validate() error {
	switch c.Transcribe.Backend {
	case "":
		c.Transcribe.Backend = "openai"
	case "openai", "whispercpp":
	default:
		return fmt.Errorf("transcribe.backend must be openai or whispercpp, got %q", c.Transcribe.Backend)
	}

	if c.Transcribe.Backend == "whispercpp" {
		if c.Transcribe.BinaryPath == "" {
			return fmt.Errorf("transcribe.binary_path is required for the whispercpp backend")
		}
		if c.Transcribe.ModelPath == "" {
			return fmt.Errorf("transcribe.model_path is required for the whispercpp backend")
		}
	}

	if c.Email.Enabled {
		if c.Email.Host == "" {
			return fmt.Errorf("email.host is required when email is enabled")
		}
		if c.Email.From == "" {
			return fmt.Errorf("email.from is required when email is enabled")
		}
		if len(c.Email.To) == 0 {
			return fmt.Errorf("email.to is required when email is enabled")
		}
	}

	if c.Transcribe.Model == "" {
		c.Transcribe.Model = "whisper-1"
	}
	if c.Transcribe.Language == "" {
		c.Transcribe.Language = "en"
	}
	if c.Feed.LookbackHours == 0 {
		c.Feed.LookbackHours = 24
	}
	if c.Segmenter.MaxSegmentSec == 0 {
		c.Segmenter.MaxSegmentSec = 600
	}
	if c.Pipeline.MaxRetries == 0 {
		c.Pipeline.MaxRetries = 3
	}
	if c.Pipeline.StepTimeoutSec == 0 {
		c.Pipeline.StepTimeoutSec = 900
	}
	if c.Pipeline.RateLimitPerMin == 0 {
		c.Pipeline.RateLimitPerMin = 30
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Email.Port == 0 {
		c.Email.Port = 587
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Work == "" {
		c.Paths.Work = "data/work"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
