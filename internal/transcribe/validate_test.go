package transcribe

import (
	"errors"
	"testing"

	"podnews/internal/transcript"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name    string
		in      []transcript.Span
		want    int
		wantErr bool
	}{
		{
			name: "clean spans pass through",
			in: []transcript.Span{
				{Start: 0, End: 1, Text: "a"},
				{Start: 1, End: 2, Text: "b"},
			},
			want: 2,
		},
		{
			name: "empty input is valid silence",
			in:   nil,
			want: 0,
		},
		{
			name: "whitespace spans dropped",
			in: []transcript.Span{
				{Start: 0, End: 1, Text: "  "},
				{Start: 1, End: 2, Text: "kept"},
				{Start: 2, End: 3, Text: "\n\t"},
			},
			want: 1,
		},
		{
			name: "slight overlap is passed through",
			in: []transcript.Span{
				{Start: 0, End: 2.5, Text: "a"},
				{Start: 2.3, End: 4, Text: "b"},
			},
			want: 2,
		},
		{
			name: "catastrophic reordering rejected",
			in: []transcript.Span{
				{Start: 30, End: 31, Text: "a"},
				{Start: 2, End: 3, Text: "b"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sanitize(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrMalformed) {
					t.Errorf("error %v is not ErrMalformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("sanitize() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d spans, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSanitizeClampsInvertedSpan(t *testing.T) {
	got, err := sanitize([]transcript.Span{{Start: 5, End: 4, Text: "inverted"}})
	if err != nil {
		t.Fatalf("sanitize() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d spans, want 1", len(got))
	}
	if got[0].End != got[0].Start {
		t.Errorf("inverted span not clamped: %+v", got[0])
	}
}

func TestSanitizeClampsJitter(t *testing.T) {
	// Start 0.4s before the previous span: within tolerance, clamped not rejected.
	got, err := sanitize([]transcript.Span{
		{Start: 10, End: 12, Text: "a"},
		{Start: 9.6, End: 11, Text: "b"},
	})
	if err != nil {
		t.Fatalf("sanitize() error = %v", err)
	}
	if got[1].Start != 10 {
		t.Errorf("jittered start = %f, want clamped to 10", got[1].Start)
	}
}

func TestSanitizeTrimsText(t *testing.T) {
	got, err := sanitize([]transcript.Span{{Start: 0, End: 1, Text: "  hello  "}})
	if err != nil {
		t.Fatalf("sanitize() error = %v", err)
	}
	if got[0].Text != "hello" {
		t.Errorf("text = %q, want %q", got[0].Text, "hello")
	}
}
