package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "env: production\n"))
	require.NoError(t, err)

	assert.Equal(t, 2333, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Contains(t, cfg.DSN, "tcp(127.0.0.1:3306)/loci")
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.False(t, cfg.AI.Configured())
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(writeConfig(t, "prot: 8080\n"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	_, err := Load(writeConfig(t, "port: 99999\n"))
	assert.Error(t, err)
}

func TestLoadAIProviders(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
ai:
  providers:
    - id: main
      type: OpenAI
      api_key: " sk-test "
      default_model: gpt-4o-mini
      enabled: true
  tag_model:
    provider_id: main
    model: gpt-4o-mini
`))
	require.NoError(t, err)

	require.Len(t, cfg.AI.Providers, 1)
	assert.Equal(t, "sk-test", cfg.AI.Providers[0].APIKey, "api key is trimmed")
	assert.True(t, cfg.AI.Configured())
	require.NotNil(t, cfg.AI.TagModel)
	assert.Equal(t, "main", cfg.AI.TagModel.ProviderID)
}

func TestRedisURLValue(t *testing.T) {
	assert.Equal(t, "redis://cache:6380/2", RedisRuntimeConfig{Host: "cache", Port: 6380, DB: 2}.URLValue())
	assert.Equal(t, "redis://host:6379", RedisRuntimeConfig{URL: "host:6379"}.URLValue())
	assert.Equal(t, "rediss://:secret@cache:6379/0", RedisRuntimeConfig{Host: "cache", Password: "secret", TLS: true}.URLValue())
}
