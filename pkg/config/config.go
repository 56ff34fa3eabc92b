// Package config resolves haeuso's settings from .haeuso.yaml, the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/haeuso/pkg/store"
)

const (
	// DefaultGeminiModel is used when GEMINI_MODEL is unset.
	DefaultGeminiModel = "gemini-2.5-flash"
	// DefaultLLMBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultLLMBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

	// LLMModeLive calls the model.
	LLMModeLive = "live"
	// LLMModeStub answers with canned text and never calls the model.
	LLMModeStub = "stub"
)

// LLM holds the comfort provider settings.
type LLM struct {
	Mode     string        `json:"mode"`
	APIKey   string        `json:"-"`
	Model    string        `json:"model"`
	BaseURL  string        `json:"baseURL"`
	Timeout  time.Duration `json:"timeout"`
	Fallback bool          `json:"fallback"`
}

// Config is the resolved configuration. It satisfies store.Config.
type Config struct {
	StoreMode store.Mode `json:"store"`
	Path      string     `json:"path"`
	Redis     string     `json:"redisURI"`
	LLM       LLM        `json:"llm"`

	// File is the config file that was read, if any.
	File string `json:"file,omitempty"`
}

var _ store.Config = (*Config)(nil)

func (c *Config) Mode() store.Mode { return c.StoreMode }

func (c *Config) BasePath() string { return c.Path }

func (c *Config) RedisURI() string { return c.Redis }

// Load reads .env into the environment when present, then resolves the
// configuration with LoadFrom.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: reading .env: %w", err)
	}
	return LoadFrom(viper.New())
}

// LoadFrom resolves the configuration using v. Environment beats the config
// file, which beats the defaults.
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault("store", string(store.ModeDurable))
	v.SetDefault("path", "~/.haeuso.db")
	v.SetDefault("redis_uri", "redis://localhost:6379/0")
	v.SetDefault("llm_mode", LLMModeLive)
	v.SetDefault("gemini_model", DefaultGeminiModel)
	v.SetDefault("llm_base_url", DefaultLLMBaseURL)
	v.SetDefault("llm_request_timeout_sec", 30)
	v.SetDefault("comfort_fallback", true)

	v.SetConfigName(".haeuso") // .yaml is implicit
	v.SetEnvPrefix("HAEUSO")
	v.AutomaticEnv()

	// These keep the names the hosted service used.
	_ = v.BindEnv("llm_mode", "LLM_MODE")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("gemini_model", "GEMINI_MODEL")
	_ = v.BindEnv("llm_request_timeout_sec", "LLM_REQUEST_TIMEOUT_SEC")

	if override := os.Getenv("HAEUSO_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	mode, err := store.ParseMode(v.GetString("store"))
	if err != nil {
		return nil, err
	}
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: expanding path: %w", err)
	}

	return &Config{
		StoreMode: mode,
		Path:      path,
		Redis:     v.GetString("redis_uri"),
		File:      v.ConfigFileUsed(),
		LLM: LLM{
			Mode:     llmMode(v.GetString("llm_mode")),
			APIKey:   strings.TrimSpace(v.GetString("gemini_api_key")),
			Model:    orDefault(v.GetString("gemini_model"), DefaultGeminiModel),
			BaseURL:  orDefault(v.GetString("llm_base_url"), DefaultLLMBaseURL),
			Timeout:  timeoutSeconds(v.GetString("llm_request_timeout_sec")),
			Fallback: v.GetBool("comfort_fallback"),
		},
	}, nil
}

func llmMode(raw string) string {
	if strings.ToLower(strings.TrimSpace(raw)) == LLMModeStub {
		return LLMModeStub
	}
	return LLMModeLive
}

func orDefault(raw, def string) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}
	return def
}

// timeoutSeconds parses whole seconds, clamping to at least one. Garbage
// falls back to 30s.
func timeoutSeconds(raw string) time.Duration {
	n := 30
	if s := strings.TrimSpace(raw); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil {
			n = parsed
		}
	}
	if n < 1 {
		n = 1
	}
	return time.Duration(n) * time.Second
}
