package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone   AuthMode = "none"   // No authentication required
	AuthModeAPIKey AuthMode = "apikey" // x-api-key header checked against stored keys (default)
)

type (
	Config struct {
		HTTP
		Global
		Database
		Tasks
		Auth
		DailyPick
	}

	HTTP struct {
		Port     int32
		Host     string
		HSTS     bool // Strict-Transport-Security, only when served behind TLS
		ReadOnly bool // Reject every API write
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Auth struct {
		Mode       AuthMode
		StaticKey  string // Optional key accepted alongside stored keys (API_KEY)
		BcryptCost int

		// Failed-attempt limiting per client IP
		MaxFailedAttempts int
		RateLimitWindow   time.Duration
		LockoutDuration   time.Duration
	}
	DailyPick struct {
		Enabled  bool
		Schedule string // Cron format: "0 0 * * *" = midnight
		History  int    // Recent picks excluded from the next draw
	}
)

func NewConfig() *Config {
	return newConfig(viper.New())
}

func newConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("hsts_enabled", false)
	v.SetDefault("read_only", false)
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_mode", string(AuthModeAPIKey))
	v.SetDefault("api_key", "")
	v.SetDefault("auth_bcrypt_cost", 10)
	v.SetDefault("auth_max_failed_attempts", 10)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "15m")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "5m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Question of the day
	v.SetDefault("daily_pick_enabled", true)
	v.SetDefault("daily_pick_schedule", "0 0 * * *")
	v.SetDefault("daily_pick_history", 30)

	return &Config{
		HTTP: HTTP{
			Port:     v.GetInt32("PORT"),
			Host:     v.GetString("HOST"),
			HSTS:     v.GetBool("HSTS_ENABLED"),
			ReadOnly: v.GetBool("READ_ONLY"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Auth: Auth{
			Mode:              AuthMode(v.GetString("AUTH_MODE")),
			StaticKey:         v.GetString("API_KEY"),
			BcryptCost:        v.GetInt("AUTH_BCRYPT_COST"),
			MaxFailedAttempts: v.GetInt("AUTH_MAX_FAILED_ATTEMPTS"),
			RateLimitWindow:   v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:   v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		DailyPick: DailyPick{
			Enabled:  v.GetBool("DAILY_PICK_ENABLED"),
			Schedule: v.GetString("DAILY_PICK_SCHEDULE"),
			History:  v.GetInt("DAILY_PICK_HISTORY"),
		},
	}
}
