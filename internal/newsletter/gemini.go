package newsletter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"podnews/internal/feed"
	"podnews/internal/transcript"
)

const promptTemplate = `You are creating a newsletter for a podcast titled %q.
Description: %s
The transcript below is a caption track; it may contain transcription mistakes,
correct them from context. For each topic discussed:
1. Create a section with a descriptive header.
2. Write 1-2 detailed paragraphs summarizing the content, not quoting the transcript.
3. Set the section timestamp to the first cue of that topic, in seconds from the episode start.
Include an overall title and summary for the newsletter.
Do not include any sponsorships or advertisements.

Transcript:
---
%s
---`

// newsletterSchema constrains the model to the JSON shape of Newsletter.
func newsletterSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"title", "summary", "sections"},
		Properties: map[string]*genai.Schema{
			"title":   {Type: genai.TypeString},
			"summary": {Type: genai.TypeString},
			"sections": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"timestamp", "header", "content"},
					Properties: map[string]*genai.Schema{
						"timestamp": {Type: genai.TypeNumber},
						"header":    {Type: genai.TypeString},
						"content":   {Type: genai.TypeString},
					},
				},
			},
		},
	}
}

// Generate sends the serialized transcript to Gemini and decodes the
// schema-constrained JSON response. Rate-limited keys are rotated.
func (g *implGenerator) Generate(ctx context.Context, episode feed.Episode, tr transcript.Transcript) (Newsletter, error) {
	if len(g.apiKeys) == 0 {
		return Newsletter{}, fmt.Errorf("no Gemini API keys configured")
	}

	prompt := fmt.Sprintf(promptTemplate, episode.Title, episode.Description, tr.WebVTT())

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key := g.apiKeys[g.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   newsletterSchema(),
		})
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return Newsletter{}, fmt.Errorf("generate content: %w", err)
		}

		text := responseText(result)
		if text == "" {
			return Newsletter{}, fmt.Errorf("empty response from Gemini")
		}

		var n Newsletter
		if err := json.Unmarshal([]byte(text), &n); err != nil {
			return Newsletter{}, fmt.Errorf("decode newsletter JSON: %w", err)
		}
		if n.Title == "" || len(n.Sections) == 0 {
			return Newsletter{}, fmt.Errorf("newsletter response missing title or sections")
		}
		return n, nil
	}

	return Newsletter{}, fmt.Errorf("all Gemini API keys exhausted: %w", lastErr)
}

func (g *implGenerator) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text
}
