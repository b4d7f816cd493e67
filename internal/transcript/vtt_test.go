package transcript

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00.000"},
		{1.5, "00:00:01.500"},
		{61.123, "00:01:01.123"},
		{3661.999, "01:01:01.999"},
		{3600, "01:00:00.000"},
		{0.083, "00:00:00.083"},
		{7200.5, "02:00:00.500"},
		{123.0, "00:02:03.000"},
	}

	for _, tt := range tests {
		got := FormatTimestamp(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatTimestamp(%f) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestWebVTTFormat(t *testing.T) {
	tr := Transcript{Spans: []Span{
		{Start: 0, End: 2.5, Text: "first cue"},
		{Start: 123.0, End: 124.5, Text: "end"},
	}}

	want := "WEBVTT\n\n" +
		"1\n00:00:00.000 --> 00:00:02.500\nfirst cue\n\n" +
		"2\n00:02:03.000 --> 00:02:04.500\nend\n\n"

	if got := tr.WebVTT(); got != want {
		t.Errorf("WebVTT() =\n%q\nwant\n%q", got, want)
	}
}

func TestWebVTTDeterministic(t *testing.T) {
	tr := Transcript{Spans: []Span{
		{Start: 1.001, End: 2.999, Text: "a"},
		{Start: 3, End: 4, Text: "b"},
	}}
	if tr.WebVTT() != tr.WebVTT() {
		t.Error("serialization is not deterministic")
	}
}

func TestPlainText(t *testing.T) {
	tr := Transcript{Spans: []Span{
		{Start: 0, End: 1, Text: " hello "},
		{Start: 1, End: 2, Text: "world"},
	}}
	if got := tr.PlainText(); got != "hello world" {
		t.Errorf("PlainText() = %q, want %q", got, "hello world")
	}
}

func TestPlainTextEmpty(t *testing.T) {
	if got := (Transcript{}).PlainText(); got != "" {
		t.Errorf("PlainText() = %q, want empty", got)
	}
}

// parseWebVTT is a test-only parser for the cue format, used to verify that
// serialization round-trips within a millisecond.
func parseWebVTT(t *testing.T, content string) []Span {
	t.Helper()

	blocks := strings.Split(strings.TrimRight(content, "\n"), "\n\n")
	var spans []Span
	for _, block := range blocks {
		if block == "WEBVTT" || strings.TrimSpace(block) == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			t.Fatalf("malformed cue block %q", block)
		}
		var startStr, endStr string
		if _, err := fmt.Sscanf(lines[1], "%s --> %s", &startStr, &endStr); err != nil {
			t.Fatalf("malformed timing line %q: %v", lines[1], err)
		}
		spans = append(spans, Span{
			Start: parseTimestamp(t, startStr),
			End:   parseTimestamp(t, endStr),
			Text:  strings.Join(lines[2:], "\n"),
		})
	}
	return spans
}

func parseTimestamp(t *testing.T, s string) float64 {
	t.Helper()

	var h, m int
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		t.Fatalf("malformed timestamp %q", s)
	}
	h, _ = strconv.Atoi(parts[0])
	m, _ = strconv.Atoi(parts[1])
	sec, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		t.Fatalf("malformed seconds in %q: %v", s, err)
	}
	return float64(h*3600+m*60) + sec
}

func TestSerializationRoundTrip(t *testing.T) {
	tr := Transcript{Spans: []Span{
		{Start: 0, End: 0.083, Text: "uh"},
		{Start: 59.999, End: 61.5, Text: "crossing a minute"},
		{Start: 3599.001, End: 3661.337, Text: "crossing an hour"},
		{Start: 7200.5, End: 7201.499, Text: "late cue"},
	}}

	parsed := parseWebVTT(t, tr.WebVTT())
	if len(parsed) != len(tr.Spans) {
		t.Fatalf("parsed %d spans, want %d", len(parsed), len(tr.Spans))
	}
	for i, got := range parsed {
		want := tr.Spans[i]
		if math.Abs(got.Start-want.Start) > 0.001 {
			t.Errorf("span %d start = %f, want %f", i, got.Start, want.Start)
		}
		if math.Abs(got.End-want.End) > 0.001 {
			t.Errorf("span %d end = %f, want %f", i, got.End, want.End)
		}
		if got.Text != want.Text {
			t.Errorf("span %d text = %q, want %q", i, got.Text, want.Text)
		}
	}
}
