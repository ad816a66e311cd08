// internal/config/config.go
//
// Environment configuration for the hive binary. Values come from the
// process environment (optionally seeded from a .env file by the caller).
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/robalobadob/hive/internal/highscore"
)

// Config holds every setting the commands read from the environment.
type Config struct {
	LogLevel       string `env:"LOG_LEVEL"            envDefault:"info"`
	Port           string `env:"PORT"                 envDefault:"5175"`
	ClientOrigin   string `env:"CLIENT_ORIGIN"        envDefault:"http://localhost:5173"`
	DictionaryFile string `env:"HIVE_DICTIONARY_FILE"`
	RootsFile      string `env:"HIVE_ROOTS_FILE"`
	SaveDir        string `env:"HIVE_SAVE_DIR"        envDefault:"saves"`
	SavePassphrase string `env:"HIVE_SAVE_PASSPHRASE"`
	ScoresFile     string `env:"HIVE_SCORES_FILE"`
	ScoresDB       string `env:"HIVE_SCORES_DB"`
	DailySalt      string `env:"HIVE_DAILY_SALT"      envDefault:"local_dev_salt"`
}

// Load parses the environment into a Config and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ScoresFile == "" && cfg.ScoresDB == "" {
		path, err := highscore.DefaultPath()
		if err != nil {
			return Config{}, fmt.Errorf("high score location: %w", err)
		}
		cfg.ScoresFile = path
	}
	return cfg, nil
}
