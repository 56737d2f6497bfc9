package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/trendpost/internal/app"
	"github.com/doeshing/trendpost/internal/application/post"
	"github.com/doeshing/trendpost/internal/domain"
	"github.com/doeshing/trendpost/internal/infrastructure/history"
	"github.com/doeshing/trendpost/internal/pkg/logger"
)

type fixedSearcher struct{ topics []string }

func (f *fixedSearcher) Search(_ context.Context, topic string) string {
	f.topics = append(f.topics, topic)
	return "A B"
}

type fixedGenerator struct {
	prompts  []string
	deadline bool
}

func (f *fixedGenerator) Generate(ctx context.Context, topic, prompt string) string {
	f.prompts = append(f.prompts, prompt)
	_, f.deadline = ctx.Deadline()
	return "Great news! #" + topic
}

type harness struct {
	store     *history.FileStore
	searcher  *fixedSearcher
	generator *fixedGenerator
	builds    int
}

func newHarness() *harness {
	return &harness{
		store:     history.NewFileStore("historico.json", history.NewMemoryBackend(), nil),
		searcher:  &fixedSearcher{},
		generator: &fixedGenerator{},
	}
}

func (h *harness) build(context.Context, app.Options) (*app.Container, error) {
	h.builds++
	return &app.Container{
		PostService: &post.Service{
			Searcher:  h.searcher,
			Generator: h.generator,
			MaxChars:  domain.DefaultPostMaxChars,
		},
		HistoryStore: h.store,
		Config:       domain.Config{},
		Logger:       logger.NewNop(),
	}, nil
}

func execute(t *testing.T, h *harness, args ...string) string {
	t.Helper()
	root := NewRootCmd(Options{Build: h.build})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	require.NoError(t, root.ExecuteContext(context.Background()))
	return out.String()
}

func TestRootGeneratesForTopic(t *testing.T) {
	h := newHarness()

	out := execute(t, h, "test")

	assert.Equal(t, "Great news! #test\n", out)
	assert.Equal(t, []string{"test"}, h.searcher.topics)
	require.Len(t, h.generator.prompts, 1)
	assert.Contains(t, h.generator.prompts[0], "max 344 characters")
	assert.False(t, h.generator.deadline)
}

func TestGenerateCommandFlags(t *testing.T) {
	h := newHarness()

	out := execute(t, h, "generate", "--max-chars", "120", "--timeout", "5s", "rain", "in", "porto", "alegre")

	assert.Equal(t, "Great news! #rain in porto alegre\n", out)
	require.Len(t, h.generator.prompts, 1)
	assert.Contains(t, h.generator.prompts[0], "max 120 characters")
	assert.True(t, h.generator.deadline)
}

func TestRootUsesDefaultTopic(t *testing.T) {
	h := newHarness()

	execute(t, h)

	assert.Equal(t, []string{domain.DefaultTopic}, h.searcher.topics)
}

func TestHistoryListShowsRecentRecords(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	now := time.Now()
	version := "gemini-2.5-flash"
	for i, subject := range []string{"old", "middle", "new"} {
		require.NoError(t, h.store.Append(ctx, domain.GenerationRecord{
			Subject:      subject,
			Prompt:       "p",
			Result:       "post " + subject,
			ModelVersion: &version,
			Timestamp:    domain.FormatTimestamp(now.Add(time.Duration(i-3) * time.Hour)),
		}))
	}

	out := execute(t, h, "history", "list", "--limit", "2")

	assert.NotContains(t, out, "] old")
	assert.Contains(t, out, "] middle")
	assert.Contains(t, out, "] new")
	assert.Contains(t, out, "hours ago")
	assert.Contains(t, out, "model: gemini-2.5-flash")
	assert.Less(t, bytes.Index([]byte(out), []byte("middle")), bytes.Index([]byte(out), []byte("] new")))
}

func TestHistoryListEmpty(t *testing.T) {
	out := execute(t, newHarness(), "history", "list")
	assert.Equal(t, msgNoHistoryRecorded+"\n", out)
}

func TestHistoryPathAndClear(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.store.Append(context.Background(), domain.GenerationRecord{Subject: "x", Timestamp: "2025-01-01T00:00:00.000Z"}))

	assert.Equal(t, "historico.json\n", execute(t, h, "history", "path"))
	assert.Equal(t, msgHistoryCleared+"\n", execute(t, h, "history", "clear"))

	records, err := h.store.Records(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestConfigShowMasksSecrets(t *testing.T) {
	h := newHarness()
	root := NewRootCmd(Options{Build: func(ctx context.Context, o app.Options) (*app.Container, error) {
		c, err := h.build(ctx, o)
		c.Config.Credentials.GenerationAPIKey = "super-secret-key"
		return c, err
	}})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "show"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "GEMINI_API_KEY: su****ey")
	assert.NotContains(t, out.String(), "super-secret-key")
}

func TestVersionCommandSkipsContainer(t *testing.T) {
	h := newHarness()
	out := execute(t, h, "version")
	assert.Equal(t, "trendpost dev\n", out)
	assert.Zero(t, h.builds)
}

func TestGenerateCommandAcceptsSubcommandNamesAsTopic(t *testing.T) {
	h := newHarness()

	out := execute(t, h, "generate", "history", "of", "porto", "alegre")

	assert.Equal(t, "Great news! #history of porto alegre\n", out)
	assert.Equal(t, []string{"history of porto alegre"}, h.searcher.topics)
	assert.Contains(t, NewRootCmd(Options{Build: h.build}).Long, `trendpost generate <topic>`)
}
