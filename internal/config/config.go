package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/example/drillbot/internal/database"
	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. DRILLBOT_DATABASE_DSN.
const EnvPrefix = "DRILLBOT"

// Config holds all configuration for the application
type Config struct {
	Database  database.Config `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Drill     DrillConfig     `mapstructure:"drill"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelegramConfig holds bot credentials. Only ChatID is served.
type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

// DrillConfig mirrors the scheduling tunables
type DrillConfig struct {
	Algorithm             string  `mapstructure:"algorithm"`
	FailureQuality        int     `mapstructure:"failure_quality"`
	LearnFraction         float64 `mapstructure:"learn_fraction"`
	AddRandomNoise        bool    `mapstructure:"add_random_noise"`
	AdjustForEarlyLate    bool    `mapstructure:"adjust_for_early_late"`
	OverdueIntervalFactor float64 `mapstructure:"overdue_interval_factor"`
	DaysBeforeOld         int     `mapstructure:"days_before_old"`
	LeechFailureThreshold int     `mapstructure:"leech_failure_threshold"`
	LeechMethod           string  `mapstructure:"leech_method"`
	SM5InitialInterval    float64 `mapstructure:"sm5_initial_interval"`
	SessionSize           int     `mapstructure:"session_size"`
}

// SchedulerConfig holds background job settings
type SchedulerConfig struct {
	NotificationStartHour int           `mapstructure:"notification_start_hour"`
	NotificationEndHour   int           `mapstructure:"notification_end_hour"`
	CheckpointInterval    time.Duration `mapstructure:"checkpoint_interval"`
	Timezone              string        `mapstructure:"timezone"`
}

// Load reads envFile into the process environment when it exists, then
// builds the configuration from defaults and environment variables.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Keep the plain token variable working for existing deployments.
	if err := v.BindEnv("telegram.token", EnvPrefix+"_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("error binding telegram token: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", database.DriverSQLite)
	v.SetDefault("database.dsn", "data/drillbot.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("telegram.chat_id", 0)

	core := sr.DefaultConfig()
	v.SetDefault("drill.algorithm", sr.SM5.String())
	v.SetDefault("drill.failure_quality", int(core.FailureQuality))
	v.SetDefault("drill.learn_fraction", core.LearnFraction)
	v.SetDefault("drill.add_random_noise", core.AddRandomNoise)
	v.SetDefault("drill.adjust_for_early_late", core.AdjustForEarlyLate)
	v.SetDefault("drill.overdue_interval_factor", core.OverdueIntervalFactor)
	v.SetDefault("drill.days_before_old", core.DaysBeforeOld)
	v.SetDefault("drill.leech_failure_threshold", core.LeechFailureThreshold)
	v.SetDefault("drill.leech_method", core.LeechMethod.String())
	v.SetDefault("drill.sm5_initial_interval", core.SM5InitialInterval)
	v.SetDefault("drill.session_size", 20)

	v.SetDefault("scheduler.notification_start_hour", 8)
	v.SetDefault("scheduler.notification_end_hour", 22)
	v.SetDefault("scheduler.checkpoint_interval", "15m")
	v.SetDefault("scheduler.timezone", "UTC")
}

// Core converts the drill section into the scheduling config and algorithm.
func (d DrillConfig) Core() (sr.Config, sr.Algorithm, error) {
	alg, err := sr.ParseAlgorithm(d.Algorithm)
	if err != nil {
		return sr.Config{}, 0, err
	}
	var leech sr.LeechMethod
	if err := leech.UnmarshalText([]byte(d.LeechMethod)); err != nil {
		return sr.Config{}, 0, err
	}
	cfg := sr.Config{
		FailureQuality:        sr.QualityResponse(d.FailureQuality),
		LearnFraction:         d.LearnFraction,
		AddRandomNoise:        d.AddRandomNoise,
		AdjustForEarlyLate:    d.AdjustForEarlyLate,
		OverdueIntervalFactor: d.OverdueIntervalFactor,
		DaysBeforeOld:         d.DaysBeforeOld,
		LeechFailureThreshold: d.LeechFailureThreshold,
		LeechMethod:           leech,
		SM5InitialInterval:    d.SM5InitialInterval,
	}
	if err := cfg.Validate(); err != nil {
		return sr.Config{}, 0, err
	}
	return cfg, alg, nil
}

// Location resolves the configured timezone.
func (s SchedulerConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}
