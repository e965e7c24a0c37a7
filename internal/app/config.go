package app

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"passdrop/internal/transfer"
)

// Config holds runtime wiring options for both binaries.
type Config struct {
	// Daemon
	ListenAddr     string        // PASSDROP_LISTEN
	DataDir        string        // PASSDROP_DATA_DIR, file content root
	SessionTTL     time.Duration // PASSDROP_SESSION_TTL
	SweepInterval  time.Duration // PASSDROP_SWEEP_INTERVAL
	MaxUploadBytes int64         // PASSDROP_MAX_UPLOAD_BYTES

	// CLI
	Home      string       // local state dir, e.g. $HOME/.passdrop
	ServerURL string       // PASSDROP_SERVER, daemon base URL
	HTTP      *http.Client // optional; defaults to http.DefaultClient
}

// LoadConfig reads a .env file if present, then the environment, falling
// back to defaults.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		ListenAddr:     envOrDefault("PASSDROP_LISTEN", ":5050"),
		DataDir:        envOrDefault("PASSDROP_DATA_DIR", "data"),
		SessionTTL:     envDurationOrDefault("PASSDROP_SESSION_TTL", time.Hour),
		SweepInterval:  envDurationOrDefault("PASSDROP_SWEEP_INTERVAL", time.Minute),
		MaxUploadBytes: envInt64OrDefault("PASSDROP_MAX_UPLOAD_BYTES", transfer.DefaultMaxBytes),
		ServerURL:      envOrDefault("PASSDROP_SERVER", "http://127.0.0.1:5050"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64OrDefault(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOrDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
