package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/haeuso/pkg/store"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HAEUSO_CONFIG_PATH", "HAEUSO_STORE", "HAEUSO_PATH", "HAEUSO_REDIS_URI",
		"HAEUSO_LLM_BASE_URL", "HAEUSO_COMFORT_FALLBACK",
		"LLM_MODE", "GEMINI_API_KEY", "GEMINI_MODEL", "LLM_REQUEST_TIMEOUT_SEC",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".haeuso.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	want, err := homedir.Expand("~/.haeuso.db")
	require.NoError(t, err)
	assert.Equal(t, store.ModeDurable, cfg.Mode())
	assert.Equal(t, want, cfg.BasePath())
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURI())
	assert.Equal(t, LLMModeLive, cfg.LLM.Mode)
	assert.Equal(t, DefaultGeminiModel, cfg.LLM.Model)
	assert.Equal(t, DefaultLLMBaseURL, cfg.LLM.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.LLM.Fallback)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Empty(t, cfg.File)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, `
store: volatile
path: /tmp/haeuso-test
llm_mode: stub
gemini_model: gemini-2.0-flash
comfort_fallback: false
`)
	t.Setenv("HAEUSO_CONFIG_PATH", dir)

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, store.ModeVolatile, cfg.Mode())
	assert.Equal(t, "/tmp/haeuso-test", cfg.BasePath())
	assert.Equal(t, LLMModeStub, cfg.LLM.Mode)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.False(t, cfg.LLM.Fallback)
	assert.Equal(t, filepath.Join(dir, ".haeuso.yaml"), cfg.File)
}

func TestEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, "store: volatile\nllm_mode: stub\n")
	t.Setenv("HAEUSO_CONFIG_PATH", dir)
	t.Setenv("HAEUSO_STORE", "redis")
	t.Setenv("HAEUSO_REDIS_URI", "redis://cache:6379/2")
	t.Setenv("LLM_MODE", "LIVE")
	t.Setenv("GEMINI_API_KEY", "  key-123 ")

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, store.ModeRedis, cfg.Mode())
	assert.Equal(t, "redis://cache:6379/2", cfg.RedisURI())
	assert.Equal(t, LLMModeLive, cfg.LLM.Mode)
	assert.Equal(t, "key-123", cfg.LLM.APIKey)
}

func TestUnknownLLMModeIsLive(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_MODE", "offline")

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, LLMModeLive, cfg.LLM.Mode)
}

func TestUnknownStoreMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("HAEUSO_STORE", "floppy")

	_, err := LoadFrom(viper.New())
	assert.ErrorIs(t, err, store.ErrUnknownMode)
}

func TestTimeoutSeconds(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", 30 * time.Second},
		{"5", 5 * time.Second},
		{" 12 ", 12 * time.Second},
		{"0", time.Second},
		{"-3", time.Second},
		{"12abc", 30 * time.Second},
		{"soon", 30 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, timeoutSeconds(tt.raw))
		})
	}
}

func TestMalformedConfigFile(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, "store: [unterminated\n")
	t.Setenv("HAEUSO_CONFIG_PATH", dir)

	_, err := LoadFrom(viper.New())
	assert.Error(t, err)
}
