package post

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/trendpost/internal/application/generation"
	"github.com/doeshing/trendpost/internal/application/research"
	"github.com/doeshing/trendpost/internal/domain"
	"github.com/doeshing/trendpost/internal/infrastructure/ai"
	"github.com/doeshing/trendpost/internal/infrastructure/history"
	"github.com/doeshing/trendpost/internal/infrastructure/search"
	"github.com/doeshing/trendpost/internal/pkg/logger"
)

type recordingSearcher struct {
	result string
	topics []string
}

func (r *recordingSearcher) Search(_ context.Context, topic string) string {
	r.topics = append(r.topics, topic)
	return r.result
}

type recordingGenerator struct {
	result  string
	topic   string
	prompts []string
}

func (r *recordingGenerator) Generate(_ context.Context, topic, prompt string) string {
	r.topic = topic
	r.prompts = append(r.prompts, prompt)
	return r.result
}

func TestServiceRunPassesSnippetsIntoPrompt(t *testing.T) {
	searcher := &recordingSearcher{result: "sunny days ahead"}
	generator := &recordingGenerator{result: "☀️ #sun"}
	svc := &Service{Searcher: searcher, Generator: generator, MaxChars: 200}

	got := svc.Run(context.Background(), "weather")

	assert.Equal(t, "☀️ #sun", got)
	assert.Equal(t, []string{"weather"}, searcher.topics)
	assert.Equal(t, "weather", generator.topic)
	require.Len(t, generator.prompts, 1)
	assert.Equal(t, BuildPrompt("weather", "sunny days ahead", 200), generator.prompts[0])
}

func TestServiceRunReturnsPlaceholderUnchanged(t *testing.T) {
	svc := &Service{
		Searcher:  &recordingSearcher{result: domain.SentinelNoResults},
		Generator: &recordingGenerator{result: domain.PlaceholderGenerationFailed},
		Logger:    logger.NewNop(),
	}
	assert.Equal(t, domain.PlaceholderGenerationFailed, svc.Run(context.Background(), "x"))
}

func TestRunEndToEnd(t *testing.T) {
	searchAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"items":[{"snippet":"A"},{"snippet":"B"}]}`))
	}))
	defer searchAPI.Close()

	var sentPrompt string
	generationAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) && len(body.Contents) > 0 && len(body.Contents[0].Parts) > 0 {
			sentPrompt = body.Contents[0].Parts[0].Text
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Great news! #test"}]}}]}`))
	}))
	defer generationAPI.Close()

	backend := history.NewMemoryBackend()
	store := history.NewFileStore("historico.json", backend, nil)
	log := logger.NewNop()

	svc := &Service{
		Searcher: &research.Service{
			Client: search.NewGoogleClient(searchAPI.URL, "key", "cx", searchAPI.Client()),
			Logger: log,
		},
		Generator: &generation.Service{
			Client:  ai.NewGeminiClient(generationAPI.URL, "", "gem", generationAPI.Client(), log),
			History: store,
			Logger:  log,
		},
		Logger: log,
	}

	got := svc.Run(context.Background(), "test")

	assert.Equal(t, "Great news! #test", got)
	assert.Contains(t, sentPrompt, "summary about test: A B.")

	data, err := backend.ReadFile("historico.json")
	require.NoError(t, err)
	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "test", entries[0]["subject"])
	assert.Equal(t, "Great news! #test", entries[0]["result"])
	assert.Equal(t, sentPrompt, entries[0]["prompt"])
	assert.NotEmpty(t, entries[0]["timestamp"])
}
