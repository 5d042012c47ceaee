package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds process-wide settings for the crewplan CLI.
type Config struct {
	DBPath              string `yaml:"db_path"`
	LogLevel            string `yaml:"log_level"`
	LogFormat           string `yaml:"log_format"`
	LogUseCases         bool   `yaml:"log_use_cases"`
	MaxSummaryRangeDays int    `yaml:"max_summary_range_days"`
	HistoryLimit        int    `yaml:"history_limit"`
	CompanyID           string `yaml:"company_id"`
	ActorID             string `yaml:"actor_id"`
}

// DefaultConfig returns the built-in settings. DBPath is left empty and
// resolved against the home directory by Load.
func DefaultConfig() Config {
	return Config{
		LogLevel:            "info",
		LogFormat:           "text",
		MaxSummaryRangeDays: 180,
		HistoryLimit:        200,
		ActorID:             "cli",
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CREWPLAN_CONFIG, then environment variables. A .env file in the working
// directory is loaded into the environment first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path := os.Getenv("CREWPLAN_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".crewplan", "crewplan.db")
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CREWPLAN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CREWPLAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CREWPLAN_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("CREWPLAN_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CREWPLAN_MAX_SUMMARY_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxSummaryRangeDays = n
		}
	}
	if v := os.Getenv("CREWPLAN_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}
	if v := os.Getenv("CREWPLAN_COMPANY"); v != "" {
		cfg.CompanyID = v
	}
	if v := os.Getenv("CREWPLAN_ACTOR"); v != "" {
		cfg.ActorID = v
	}
}

// SlogLevel maps LogLevel onto a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// JSONLogs reports whether logs should use the JSON handler.
func (c Config) JSONLogs() bool {
	return strings.EqualFold(strings.TrimSpace(c.LogFormat), "json")
}
