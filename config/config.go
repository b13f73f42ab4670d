package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"hermannm.dev/csvexplorer/pagination"
	"hermannm.dev/wrap"
)

type Config struct {
	IsProduction bool       `env:"PRODUCTION" envDefault:"false"`
	LogLevel     slog.Level `env:"LOG_LEVEL"  envDefault:"info"`
	API          API
	CSV          CSV
}

// API sessions are removed after going unused for SessionIdleTimeout, or never if it is 0.
type API struct {
	Port               string        `env:"API_PORT"             envDefault:"8000"`
	MaxUploadBytes     int64         `env:"MAX_UPLOAD_BYTES"     envDefault:"33554432"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
}

type CSV struct {
	DefaultRowsPerPage    int `env:"DEFAULT_ROWS_PER_PAGE"       envDefault:"25"`
	DelimiterLinesToCheck int `env:"CSV_DELIMITER_ROWS_TO_CHECK" envDefault:"20"`
}

// ReadFromEnv loads the .env file in the working directory, if there is one, and then parses
// config from the environment.
func ReadFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, wrap.Error(err, "failed to load .env file")
	}

	return Parse()
}

// Parse reads config from the current environment only.
func Parse() (Config, error) {
	var config Config
	if err := env.ParseWithOptions(&config, env.Options{RequiredIfNoDef: true}); err != nil {
		return Config{}, wrap.Error(err, "failed to parse environment variables")
	}

	if errs := config.Validate(); len(errs) > 0 {
		return Config{}, wrap.Errors("invalid environment variables", errs...)
	}

	return config, nil
}

func (config Config) Validate() []error {
	var errs []error

	if config.API.Port == "" {
		errs = append(errs, errors.New("API_PORT must not be empty"))
	}
	if config.API.MaxUploadBytes <= 0 {
		errs = append(
			errs,
			fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", config.API.MaxUploadBytes),
		)
	}
	if config.API.SessionIdleTimeout < 0 {
		errs = append(
			errs,
			fmt.Errorf(
				"SESSION_IDLE_TIMEOUT must not be negative, got %v",
				config.API.SessionIdleTimeout,
			),
		)
	}
	if err := pagination.ValidateRowsPerPage(config.CSV.DefaultRowsPerPage); err != nil {
		errs = append(errs, wrap.Error(err, "invalid DEFAULT_ROWS_PER_PAGE"))
	}
	if config.CSV.DelimiterLinesToCheck <= 0 {
		errs = append(
			errs,
			fmt.Errorf(
				"CSV_DELIMITER_ROWS_TO_CHECK must be positive, got %d",
				config.CSV.DelimiterLinesToCheck,
			),
		)
	}

	return errs
}
