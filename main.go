package main

import (
	"log/slog"
	"os"

	"hermannm.dev/csvexplorer/cli"
	"hermannm.dev/csvexplorer/config"
	"hermannm.dev/devlog"
	"hermannm.dev/devlog/log"
)

func main() {
	cfg, err := config.ReadFromEnv()
	if err != nil {
		setUpLogger(false, slog.LevelInfo)
		log.ErrorCause(err, "failed to read config from env")
		os.Exit(1)
	}

	setUpLogger(cfg.IsProduction, cfg.LogLevel)

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		log.ErrorCause(err, "command failed")
		os.Exit(1)
	}
}

// Logs are written to stderr, so they do not mix with command output such as exported CSV.
func setUpLogger(isProduction bool, level slog.Level) {
	var logHandler slog.Handler
	if isProduction {
		logHandler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		logHandler = devlog.NewHandler(os.Stderr, &devlog.Options{Level: level})
	}

	slog.SetDefault(slog.New(logHandler))
}
