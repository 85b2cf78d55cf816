package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds the server settings read from the environment (and .env).
type Config struct {
	Addr           string   // ADDR, listen address
	StaticDir      string   // STATIC_DIR, web client files
	DBDriver       string   // DB_DRIVER, "sqlite3" or "pgx"
	DatabaseURL    string   // DATABASE_URL, sqlite file path or postgres DSN
	LogLevel       string   // LOG_LEVEL
	BotActionProb  float64  // BOT_ACTION_PROB, chance a bot orders up or calls trump
	WSReadBuffer   int      // WS_READ_BUFFER, websocket read buffer in bytes
	WSWriteBuffer  int      // WS_WRITE_BUFFER, websocket write buffer in bytes
	AllowedOrigins []string // ALLOWED_ORIGINS, comma separated hosts; empty allows any origin
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Addr:          ":8080",
		StaticDir:     "web/static",
		DBDriver:      "sqlite3",
		DatabaseURL:   "./euchre.db",
		LogLevel:      "info",
		BotActionProb: 0.25,
		WSReadBuffer:  1024,
		WSWriteBuffer: 1024,
	}
}

// Load reads the configuration from the environment on top of Default.
func Load() (Config, error) {
	cfg := Default()

	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.DBDriver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BOT_ACTION_PROB"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("BOT_ACTION_PROB: %w", err)
		}
		cfg.BotActionProb = p
	}

	if v := os.Getenv("WS_READ_BUFFER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("WS_READ_BUFFER: %w", err)
		}
		cfg.WSReadBuffer = n
	}
	if v := os.Getenv("WS_WRITE_BUFFER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("WS_WRITE_BUFFER: %w", err)
		}
		cfg.WSWriteBuffer = n
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be fixed up later.
func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite3", "pgx":
	default:
		return fmt.Errorf("DB_DRIVER: unsupported driver %q", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is empty")
	}
	if c.BotActionProb < 0 || c.BotActionProb > 1 {
		return fmt.Errorf("BOT_ACTION_PROB: %v not in [0,1]", c.BotActionProb)
	}
	if c.WSReadBuffer <= 0 || c.WSWriteBuffer <= 0 {
		return fmt.Errorf("websocket buffers must be positive, got %d/%d", c.WSReadBuffer, c.WSWriteBuffer)
	}
	return nil
}
