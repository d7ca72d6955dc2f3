package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	AppName    = "Serein"
	AppVersion = "1.0.0"
)

type Config struct {
	Addr      string
	DBPath    string
	DataDir   string
	LogLevel  string
	JWTSecret string

	AI AIConfig
}

// AIConfig holds the external model settings shared by the sentiment and
// summary pipelines.
type AIConfig struct {
	Provider string // openai, anthropic, compatible
	APIKey   string
	BaseURL  string
	Model    string
	QPS      int
	Timeout  time.Duration
}

func Load() Config {
	addr := os.Getenv("SEREIN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	dataDir := os.Getenv("SEREIN_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	path := os.Getenv("SEREIN_DB_PATH")
	if path == "" {
		path = filepath.Join(dataDir, "serein.db")
	}
	logLevel := os.Getenv("SEREIN_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return Config{
		Addr:      addr,
		DBPath:    filepath.Clean(path),
		DataDir:   filepath.Clean(dataDir),
		LogLevel:  logLevel,
		JWTSecret: os.Getenv("SEREIN_JWT_SECRET"),
		AI:        loadAI(),
	}
}

func loadAI() AIConfig {
	provider := os.Getenv("SEREIN_AI_PROVIDER")
	if provider == "" {
		provider = "openai"
	}
	model := os.Getenv("SEREIN_AI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	qps := 10
	if raw := os.Getenv("SEREIN_AI_QPS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			qps = parsed
		}
	}

	timeout := 30 * time.Second
	if raw := os.Getenv("SEREIN_AI_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	return AIConfig{
		Provider: provider,
		APIKey:   os.Getenv("SEREIN_AI_API_KEY"),
		BaseURL:  os.Getenv("SEREIN_AI_BASE_URL"),
		Model:    model,
		QPS:      qps,
		Timeout:  timeout,
	}
}
