// Package config loads environment variables into a typed Config.
// Defaults let the bot run locally with only DISCORD_TOKEN set.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds the bot configuration
type Config struct {
	// Discord
	DiscordToken  string
	ApplicationID string
	GuildID       string

	// Persistence
	StoreBackend  string
	DataDir       string
	RedisAddr     string
	RedisPassword string
	SQLitePath    string

	// Observability
	LogLevel    string
	LogFormat   string
	MetricsAddr string

	// Games
	MercyUserID  string
	LexiconPath  string
	RoundTimeout time.Duration
	RoundDelay   time.Duration
	WordCacheTTL time.Duration
	HistoryLimit int

	// Hall of fame
	PinEmoji           string
	HallOfFamePageSize int
}

// Load reads an optional .env file, then the environment, and applies defaults.
func Load() (*Config, error) {
	// .env is a local convenience; a missing file is fine
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:  getEnv("DISCORD_TOKEN", ""),
		ApplicationID: getEnv("APPLICATION_ID", ""),
		GuildID:       getEnv("GUILD_ID", ""),

		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", StoreFile)),
		DataDir:       getEnv("DATA_DIR", "data"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "data/dejavu.db"),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		MetricsAddr: getEnv("METRICS_ADDR", ""),

		MercyUserID: getEnv("MERCY_USER_ID", ""),
		LexiconPath: getEnv("LEXICON_PATH", ""),

		PinEmoji: getEnv("PIN_EMOJI", "📌"),
	}

	var err error
	if cfg.RoundTimeout, err = getDuration("ROUND_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.RoundDelay, err = getDuration("ROUND_DELAY", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.WordCacheTTL, err = getDuration("WORD_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.HistoryLimit, err = getInt("HISTORY_LIMIT", 10000); err != nil {
		return nil, err
	}
	if cfg.HallOfFamePageSize, err = getInt("HALL_OF_FAME_PAGE_SIZE", 5); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings required to connect and run
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN environment variable is required")
	}
	switch c.StoreBackend {
	case StoreFile, StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q: want file, redis or sqlite", c.StoreBackend)
	}
	if c.RoundTimeout <= 0 {
		return fmt.Errorf("ROUND_TIMEOUT must be positive")
	}
	if c.RoundDelay < 0 {
		return fmt.Errorf("ROUND_DELAY cannot be negative")
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("HISTORY_LIMIT must be at least 1")
	}
	if c.HallOfFamePageSize < 1 {
		return fmt.Errorf("HALL_OF_FAME_PAGE_SIZE must be at least 1")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getDuration accepts Go durations ("90s") or bare seconds ("90")
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
