package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"podnews/internal/logger"
	"podnews/internal/transcript"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

type implOpenAI struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  logger.Logger
}

// NewOpenAI creates a Backend for an OpenAI-compatible transcription endpoint.
// The API key is injected here; the backend never reads the environment.
func NewOpenAI(baseURL, apiKey, model string, log logger.Logger) Backend {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &implOpenAI{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{},
		logger:  log,
	}
}

// openAIResponse mirrors the verbose_json transcription payload.
type openAIResponse struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (o *implOpenAI) Transcribe(ctx context.Context, audioPath string) ([]transcript.Span, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open segment: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("model", o.model); err != nil {
		return nil, fmt.Errorf("write form field: %w", err)
	}
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return nil, fmt.Errorf("write form field: %w", err)
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, fmt.Errorf("copy segment into form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	o.logger.Debug(ctx, "uploading %s to %s", filepath.Base(audioPath), o.baseURL)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("transcription API returned status %d: %s", resp.StatusCode, string(b))
	}

	var parsed openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrMalformed, err)
	}

	spans := make([]transcript.Span, 0, len(parsed.Segments))
	for _, seg := range parsed.Segments {
		spans = append(spans, transcript.Span{Start: seg.Start, End: seg.End, Text: seg.Text})
	}
	return sanitize(spans)
}
