package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type APIConfig struct {
	Addr string

	// DatabaseURL switches the leaderboard to Postgres when set.
	// Otherwise scores land in the sqlite file at LeaderboardPath.
	DatabaseURL     string
	LeaderboardPath string

	BalancePath     string
	ShutdownTimeout time.Duration
}

type CLIConfig struct {
	LeaderboardPath string
	BalancePath     string
	TopLimit        int
}

func LoadAPIFromEnv() APIConfig {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("RESTOCK_API_ADDR", ":8080")
	}

	return APIConfig{
		Addr:            addr,
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		LeaderboardPath: envDefault("RESTOCK_LEADERBOARD_PATH", "restock-scores.db"),
		BalancePath:     strings.TrimSpace(os.Getenv("RESTOCK_BALANCE_PATH")),
		ShutdownTimeout: envDurationDefault("RESTOCK_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		LeaderboardPath: envDefault("RESTOCK_LEADERBOARD_PATH", defaultScorePath()),
		BalancePath:     strings.TrimSpace(os.Getenv("RESTOCK_BALANCE_PATH")),
		TopLimit:        envIntDefault("RESTOCK_TOP_LIMIT", 10),
	}
}

func defaultScorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "restock-scores.db"
	}
	return home + string(os.PathSeparator) + ".restock" + string(os.PathSeparator) + "scores.db"
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envIntDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
