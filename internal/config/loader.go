package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the planner service.
type Config struct {
	HTTPPort            int
	SQLiteDSN           string
	SessionTTL          time.Duration
	DayCacheTTL         time.Duration
	DayCacheMaxEntries  int
	SessionCleanupSpec  string
	ShutdownGracePeriod time.Duration

	// AdminEmail and AdminPassword, when both set, seed an administrator
	// account on startup if none exists for that email.
	AdminEmail    string
	AdminPassword string
}

// Load parses configuration values from the current process environment.
//
// A .env file in the working directory is folded into the environment first;
// a missing file is not an error. Defaults cover every field, so an empty
// environment yields a runnable local configuration.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:            8080,
		SQLiteDSN:           "file:dayplanner.db?_foreign_keys=on",
		SessionTTL:          24 * time.Hour,
		DayCacheTTL:         30 * time.Second,
		DayCacheMaxEntries:  256,
		SessionCleanupSpec:  "@hourly",
		ShutdownGracePeriod: 10 * time.Second,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("DAYPLANNER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "DAYPLANNER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("DAYPLANNER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if ttlValue := strings.TrimSpace(os.Getenv("DAYPLANNER_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "DAYPLANNER_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("DAYPLANNER_DAY_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "DAYPLANNER_DAY_CACHE_TTL")
		} else {
			cfg.DayCacheTTL = ttl
		}
	}

	if sizeValue := strings.TrimSpace(os.Getenv("DAYPLANNER_DAY_CACHE_MAX_ENTRIES")); sizeValue != "" {
		size, err := strconv.Atoi(sizeValue)
		if err != nil || size <= 0 {
			invalid = append(invalid, "DAYPLANNER_DAY_CACHE_MAX_ENTRIES")
		} else {
			cfg.DayCacheMaxEntries = size
		}
	}

	if spec := strings.TrimSpace(os.Getenv("DAYPLANNER_SESSION_CLEANUP_SPEC")); spec != "" {
		cfg.SessionCleanupSpec = spec
	}

	if graceValue := strings.TrimSpace(os.Getenv("DAYPLANNER_SHUTDOWN_GRACE")); graceValue != "" {
		grace, err := time.ParseDuration(graceValue)
		if err != nil || grace <= 0 {
			invalid = append(invalid, "DAYPLANNER_SHUTDOWN_GRACE")
		} else {
			cfg.ShutdownGracePeriod = grace
		}
	}

	cfg.AdminEmail = strings.TrimSpace(os.Getenv("DAYPLANNER_ADMIN_EMAIL"))
	cfg.AdminPassword = os.Getenv("DAYPLANNER_ADMIN_PASSWORD")
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		invalid = append(invalid, "DAYPLANNER_ADMIN_EMAIL/DAYPLANNER_ADMIN_PASSWORD")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
