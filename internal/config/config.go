// Package config loads configuration from the environment and an optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LLM provider identifiers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderBedrock   = "bedrock"
)

// Config holds all configuration values.
type Config struct {
	// SurrealDB connection. An empty URL means no store is configured and
	// the service runs in degraded mode from the start.
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// LLM provider
	LLMProvider     string
	LLMModel        string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string

	// Speech (OpenAI audio endpoints)
	SpeechAPIKey  string
	SpeechBaseURL string
	TTSModel      string
	TTSVoice      string
	TTSSpeed      float64
	STTModel      string

	// Server
	ServerPort string

	// Guidance context injected into the persona prompt
	GuidanceContext string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// fileConfig mirrors the YAML config file layout. Every field is optional;
// set fields override environment values.
type fileConfig struct {
	DB struct {
		URL       string `yaml:"url"`
		Namespace string `yaml:"namespace"`
		Database  string `yaml:"database"`
		User      string `yaml:"user"`
		Pass      string `yaml:"pass"`
		AuthLevel string `yaml:"auth_level"`
	} `yaml:"db"`
	LLM struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
	} `yaml:"llm"`
	Speech struct {
		BaseURL  string  `yaml:"base_url"`
		TTSModel string  `yaml:"tts_model"`
		TTSVoice string  `yaml:"tts_voice"`
		TTSSpeed float64 `yaml:"tts_speed"`
		STTModel string  `yaml:"stt_model"`
	} `yaml:"speech"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	GuidanceContext string `yaml:"guidance_context"`
}

// Load reads configuration from environment variables, then applies the
// optional YAML file named by SARATHI_CONFIG on top.
func Load() Config {
	cfg := Config{
		SurrealDBURL:       os.Getenv("SURREALDB_URL"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "sarathi"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "chat"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		LLMProvider:     getEnv("SARATHI_LLM_PROVIDER", ProviderOpenAI),
		LLMModel:        getEnv("SARATHI_LLM_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),

		SpeechAPIKey:  os.Getenv("SARATHI_SPEECH_API_KEY"),
		SpeechBaseURL: getEnv("SARATHI_SPEECH_BASE_URL", "https://api.openai.com/v1"),
		TTSModel:      getEnv("SARATHI_TTS_MODEL", "tts-1"),
		TTSVoice:      getEnv("SARATHI_TTS_VOICE", "nova"),
		TTSSpeed:      0.9,
		STTModel:      getEnv("SARATHI_STT_MODEL", "whisper-1"),

		ServerPort: getEnv("SARATHI_SERVER_PORT", "8480"),

		GuidanceContext: getEnv("SARATHI_GUIDANCE_CONTEXT", "spiritual guidance and life wisdom"),

		LogFile:  getEnv("SARATHI_LOG_FILE", "/tmp/sarathi.log"),
		LogLevel: parseLogLevel(getEnv("SARATHI_LOG_LEVEL", "INFO")),
	}

	// Speech reuses the OpenAI key unless one is set explicitly
	if cfg.SpeechAPIKey == "" {
		cfg.SpeechAPIKey = cfg.OpenAIAPIKey
	}

	if path := os.Getenv("SARATHI_CONFIG"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			slog.Warn("failed to load config file, using environment only", "path", path, "error", err)
		}
	}

	return cfg
}

// applyFile overlays values from a YAML config file onto cfg.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setIf(&cfg.SurrealDBURL, fc.DB.URL)
	setIf(&cfg.SurrealDBNamespace, fc.DB.Namespace)
	setIf(&cfg.SurrealDBDatabase, fc.DB.Database)
	setIf(&cfg.SurrealDBUser, fc.DB.User)
	setIf(&cfg.SurrealDBPass, fc.DB.Pass)
	setIf(&cfg.SurrealDBAuthLevel, fc.DB.AuthLevel)
	setIf(&cfg.LLMProvider, fc.LLM.Provider)
	setIf(&cfg.LLMModel, fc.LLM.Model)
	setIf(&cfg.SpeechBaseURL, fc.Speech.BaseURL)
	setIf(&cfg.TTSModel, fc.Speech.TTSModel)
	setIf(&cfg.TTSVoice, fc.Speech.TTSVoice)
	setIf(&cfg.STTModel, fc.Speech.STTModel)
	setIf(&cfg.ServerPort, fc.Server.Port)
	setIf(&cfg.GuidanceContext, fc.GuidanceContext)
	if fc.Speech.TTSSpeed != 0 {
		cfg.TTSSpeed = fc.Speech.TTSSpeed
	}

	return nil
}

func setIf(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
