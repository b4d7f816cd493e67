package mail

import (
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	md := "# Title\n\nSome **bold** text and a [link](https://example.com/ep.mp3#t=75)."

	html, err := renderHTML(md)
	if err != nil {
		t.Fatalf("renderHTML() error = %v", err)
	}

	for _, want := range []string{
		"<h1>Title</h1>",
		"<strong>bold</strong>",
		`<a href="https://example.com/ep.mp3#t=75">link</a>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q:\n%s", want, html)
		}
	}
}
