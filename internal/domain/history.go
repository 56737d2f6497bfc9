package domain

import (
	"encoding/json"
	"time"
)

// GenerationRecord is one entry of the history log.
type GenerationRecord struct {
	Subject       string          `json:"subject"`
	Prompt        string          `json:"prompt"`
	Result        string          `json:"result"`
	ModelVersion  *string         `json:"modelVersion,omitempty"`
	ResponseID    *string         `json:"responseId,omitempty"`
	UsageMetadata json.RawMessage `json:"usageMetadata,omitempty"`
	Timestamp     string          `json:"timestamp"`
}

// NewGenerationRecord builds a record stamped with now and copies whatever
// optional metadata the response carried.
func NewGenerationRecord(subject, prompt, result string, resp GenerationResponse, now time.Time) GenerationRecord {
	return GenerationRecord{
		Subject:       subject,
		Prompt:        prompt,
		Result:        result,
		ModelVersion:  resp.ModelVersion,
		ResponseID:    resp.ResponseID,
		UsageMetadata: resp.UsageMetadata,
		Timestamp:     FormatTimestamp(now),
	}
}

// FormatTimestamp renders t the way records store it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// Time parses the record timestamp. The zero time is returned when it is malformed.
func (r GenerationRecord) Time() time.Time {
	t, err := time.Parse(TimestampFormat, r.Timestamp)
	if err != nil {
		if t, err = time.Parse(time.RFC3339Nano, r.Timestamp); err != nil {
			return time.Time{}
		}
	}
	return t
}
