package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ria-analytics/internal/records"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	RecordStore         records.Config
	ListenAddr          string
	DataPath            string
	LogDir              string
	CachePath           string
	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first so a deployed
	// binary can carry its own .env.
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	timeoutSecs, _ := strconv.Atoi(getEnv("RECORD_STORE_TIMEOUT_SECONDS", "30"))
	requestDelayMs, _ := strconv.Atoi(getEnv("RECORD_STORE_REQUEST_DELAY_MS", "500"))
	cacheTTLSecs, _ := strconv.Atoi(getEnv("RECORD_STORE_CACHE_TTL_SECONDS", "30"))

	cfg := &AppConfig{
		RecordStore: records.Config{
			BaseURL:      getEnv("RECORD_STORE_URL", ""),
			APIKey:       getEnv("RECORD_STORE_API_KEY", ""),
			Timeout:      time.Duration(timeoutSecs) * time.Second,
			RequestDelay: time.Duration(requestDelayMs) * time.Millisecond,
			CacheTTL:     time.Duration(cacheTTLSecs) * time.Second,
		},
		ListenAddr:          getEnv("LISTEN_ADDR", ":8080"),
		DataPath:            dataPath,
		LogDir:              logDir,
		CachePath:           getEnv("SNAPSHOT_CACHE_PATH", filepath.Join(dataPath, "snapshots.db")),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
