package post

import (
	"bytes"
	"text/template"

	"github.com/doeshing/trendpost/internal/domain"
)

const promptTemplate = `Write an inspiring post for X (max {{.MaxChars}} characters), using emojis and hashtags.
Use this information as a basis, but do NOT copy headlines, do NOT cite press outlets and do NOT include links: Positive and inspiring summary about {{.Topic}}: {{.Snippets}}.`

var compiledPrompt = template.Must(template.New("post").Parse(promptTemplate))

type promptData struct {
	Topic    string
	Snippets string
	MaxChars int
}

// BuildPrompt renders the fixed post prompt. A non-positive maxChars means
// domain.DefaultPostMaxChars.
func BuildPrompt(topic, snippets string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = domain.DefaultPostMaxChars
	}
	var buf bytes.Buffer
	// The template only prints strings and an int, so Execute cannot fail
	// on a bytes.Buffer.
	_ = compiledPrompt.Execute(&buf, promptData{
		Topic:    topic,
		Snippets: snippets,
		MaxChars: maxChars,
	})
	return buf.String()
}
