package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Push backends.
const (
	BackendFCM      = "fcm"
	BackendTelegram = "telegram"
)

// Config keeps runtime settings for the notifier, loaded from environment
// variables.
type Config struct {
	DatabaseURL        string        `envconfig:"DATABASE_URL" default:"paperlesh_notifier.db"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	Timezone           string        `envconfig:"TIMEZONE" default:"America/New_York"`
	DailyLogTime       string        `envconfig:"DAILY_LOG_TIME" default:"20:00"`
	ImportantDatesTime string        `envconfig:"IMPORTANT_DATES_TIME" default:"09:00"`
	SweepDay           string        `envconfig:"SWEEP_DAY" default:"Sunday"`
	SweepTime          string        `envconfig:"SWEEP_TIME" default:"03:00"`
	RetentionDays      int           `envconfig:"RETENTION_DAYS" default:"30"`
	JobConcurrency     int           `envconfig:"JOB_CONCURRENCY" default:"16"`
	JobTimeout         time.Duration `envconfig:"JOB_TIMEOUT" default:"10m"`
	PushBackend        string        `envconfig:"PUSH_BACKEND" default:"fcm"` // fcm|telegram
	FirebaseCreds      string        `envconfig:"FIREBASE_CREDENTIALS_PATH"`
	TelegramToken      string        `envconfig:"TELEGRAM_TOKEN"`
	HTTPAddr           string        `envconfig:"HTTP_ADDR" default:":8080"`
}

// Load reads configuration from environment variables and validates the
// chosen push backend.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}

	switch cfg.PushBackend {
	case BackendFCM:
		if cfg.FirebaseCreds == "" {
			return cfg, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required for the fcm backend")
		}
	case BackendTelegram:
		if cfg.TelegramToken == "" {
			return cfg, fmt.Errorf("TELEGRAM_TOKEN is required for the telegram backend")
		}
	default:
		return cfg, fmt.Errorf("unknown PUSH_BACKEND %q", cfg.PushBackend)
	}

	if cfg.RetentionDays <= 0 {
		return cfg, fmt.Errorf("RETENTION_DAYS must be positive, got %d", cfg.RetentionDays)
	}
	if cfg.JobConcurrency <= 0 {
		return cfg, fmt.Errorf("JOB_CONCURRENCY must be positive, got %d", cfg.JobConcurrency)
	}
	if _, err := cfg.SweepWeekday(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Retention returns the history retention window as a duration.
func (c Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// SweepWeekday parses SweepDay into a time.Weekday.
func (c Config) SweepWeekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(c.SweepDay, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid SWEEP_DAY %q", c.SweepDay)
}
