package newsletter

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

// Sections link straight into the episode audio with a #t= fragment so
// timestamps stay clickable in the rendered newsletter.
var markdownTmpl = template.Must(template.New("newsletter").Funcs(template.FuncMap{
	"hms":  formatHMS,
	"secs": func(ts float64) string { return strconv.Itoa(int(ts)) },
}).Parse(`# {{.Title}}

{{.Summary}}
{{range .Sections}}
## {{.Header}}

{{.Content}}

[Listen at {{hms .Timestamp}}]({{$.AudioURL}}#t={{secs .Timestamp}})
{{end}}`))

type renderData struct {
	Newsletter
	AudioURL string
}

// Render produces the Markdown newsletter with clickable timestamp links.
func Render(n Newsletter, audioURL string) (string, error) {
	var b strings.Builder
	if err := markdownTmpl.Execute(&b, renderData{Newsletter: n, AudioURL: audioURL}); err != nil {
		return "", fmt.Errorf("render newsletter: %w", err)
	}
	return b.String(), nil
}

// formatHMS renders whole seconds as HH:MM:SS for display text.
func formatHMS(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
