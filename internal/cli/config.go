package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	Token      string
	PlayerAddr string
	RedisURL   string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("CCGAME_SERVER", "http://localhost:8080"),
		Token:      os.Getenv("CCGAME_TOKEN"),
		PlayerAddr: getEnvOrDefault("CCGAME_PLAYER_ADDR", "127.0.0.1:7654"),
		RedisURL:   getEnvOrDefault("CCGAME_REDIS_URL", "redis://localhost:6379"),
		Output:     "text",
		Verbose:    false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
