package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/times-tables-bot/internal/domain/entities"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"`       // current application environment (local, dev, production etc)
	LogLevel         string `mapstructure:"log_level"` // overrides the environment's default log level
	TelegramAPIToken string `mapstructure:"-"`         // Telegram API token loaded from environment
	Quiz             Quiz   `mapstructure:"quiz"`      // quiz session settings
	HTTP             HTTP   `mapstructure:"http"`      // health endpoint settings
}

// Quiz contains quiz session parameters.
type Quiz struct {
	DefaultQuestionCount int           `mapstructure:"default_question_count"` // question count after a reset
	SessionTTL           time.Duration `mapstructure:"session_ttl"`            // idle time before a session is evicted
	JanitorSchedule      string        `mapstructure:"janitor_schedule"`       // cron spec of the eviction job
}

// HTTP contains the health server configuration.
type HTTP struct {
	Addr string `mapstructure:"addr"` // listen address, empty disables the server
}

// TelegramToken returns the bot token if it is configured.
func (c *Config) TelegramToken() (string, error) {
	if c.TelegramAPIToken == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return c.TelegramAPIToken, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Pick up a local .env file if there is one.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("quiz.default_question_count", entities.DefaultQuestionCount)
	v.SetDefault("quiz.session_ttl", "30m")
	v.SetDefault("quiz.janitor_schedule", "@every 5m")
	v.SetDefault("http.addr", "")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if !entities.ValidQuestionCount(c.Quiz.DefaultQuestionCount) {
		return fmt.Errorf("%w: quiz.default_question_count must be between %d and %d",
			ErrInvalidConfig, entities.MinQuestionCount, entities.MaxQuestionCount)
	}
	if c.Quiz.SessionTTL <= 0 {
		return fmt.Errorf("%w: quiz.session_ttl must be positive", ErrInvalidConfig)
	}
	if c.Quiz.JanitorSchedule == "" {
		return fmt.Errorf("%w: quiz.janitor_schedule is empty", ErrInvalidConfig)
	}
	return nil
}
