package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/trendpost/internal/infrastructure/history"
	"github.com/doeshing/trendpost/internal/pkg/logger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestBuildContainerDefaultsToJSONHistory(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "historico.json")
	cfgPath := writeConfig(t, "history:\n  path: "+historyPath+"\n")

	c, err := BuildContainer(context.Background(), Options{ConfigPath: cfgPath, Logger: logger.NewNop()})
	require.NoError(t, err)
	defer c.Close()

	require.IsType(t, &history.FileStore{}, c.HistoryStore)
	assert.Equal(t, historyPath, c.HistoryStore.Path())
	assert.NotEmpty(t, c.RunID)
	require.NotNil(t, c.PostService)
	assert.Equal(t, 344, c.PostService.MaxChars)
}

func TestBuildContainerSQLiteHistory(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, "history:\n  path: "+filepath.Join(dir, "historico.json")+"\n  backend: sqlite\n")

	c, err := BuildContainer(context.Background(), Options{ConfigPath: cfgPath, Logger: logger.NewNop()})
	require.NoError(t, err)
	defer c.Close()

	require.IsType(t, &history.SQLiteStore{}, c.HistoryStore)
	assert.Equal(t, filepath.Join(dir, "historico.db"), c.HistoryStore.Path())
}

func TestBuildContainerRejectsUnknownBackend(t *testing.T) {
	cfgPath := writeConfig(t, "history:\n  backend: postgres\n")

	_, err := BuildContainer(context.Background(), Options{ConfigPath: cfgPath, Logger: logger.NewNop()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
}
