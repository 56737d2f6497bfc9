package domain

import "encoding/json"

// GenerationResponse mirrors the generateContent reply. Every field may be
// absent, so the nested path is modelled with pointers and slices and read
// through the accessor methods below.
type GenerationResponse struct {
	Candidates    []Candidate     `json:"candidates,omitempty"`
	ModelVersion  *string         `json:"modelVersion,omitempty"`
	ResponseID    *string         `json:"responseId,omitempty"`
	UsageMetadata json.RawMessage `json:"usageMetadata,omitempty"`
}

// Candidate is one generated alternative.
type Candidate struct {
	Content *Content `json:"content,omitempty"`
}

// Content holds the parts of a candidate or of a request turn.
type Content struct {
	Parts []Part `json:"parts,omitempty"`
}

// Part is a single text fragment.
type Part struct {
	Text *string `json:"text,omitempty"`
}

// Text returns candidates[0].content.parts[0].text. ok is false when any link
// of that path is missing or the text is empty.
func (r GenerationResponse) Text() (text string, ok bool) {
	if len(r.Candidates) == 0 {
		return "", false
	}
	content := r.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	part := content.Parts[0]
	if part.Text == nil || *part.Text == "" {
		return "", false
	}
	return *part.Text, true
}

// TextOrPlaceholder applies the placeholder fallback to Text.
func (r GenerationResponse) TextOrPlaceholder() string {
	if text, ok := r.Text(); ok {
		return text
	}
	return PlaceholderGenerationFailed
}
