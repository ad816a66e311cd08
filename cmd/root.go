// cmd/root.go
//
// Root command: loads .env, parses the environment configuration, applies
// the file-location flags on top of it and sets up zerolog before any
// subcommand runs.
package cmd

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hive/internal/config"
)

var (
	cfg      config.Config
	jsonLogs bool

	// File locations; a non-empty flag wins over the environment.
	flagDictionary string
	flagRoots      string
	flagSaveDir    string
	flagScoresFile string
	flagScoresDB   string
)

var rootCmd = &cobra.Command{
	Use:           "hive",
	Short:         "Seven-letter word puzzle engine",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		applyFileFlags(&cfg)
		if !jsonLogs {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		}
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
		return nil
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.BoolVar(&jsonLogs, "json-logs", false, "Write logs as JSON instead of console text")
	f.StringVar(&flagDictionary, "dictionary", "", "Dictionary file (default $HIVE_DICTIONARY_FILE or embedded list)")
	f.StringVar(&flagRoots, "roots", "", "Root word file (default $HIVE_ROOTS_FILE or embedded list)")
	f.StringVar(&flagSaveDir, "save-dir", "", "Directory for save files (default $HIVE_SAVE_DIR)")
	f.StringVar(&flagScoresFile, "scores-file", "", "High-score JSON file (default $HIVE_SCORES_FILE)")
	f.StringVar(&flagScoresDB, "scores-db", "", "High-score SQLite database (default $HIVE_SCORES_DB)")
}

// applyFileFlags overrides c with every file-location flag that was given.
// A --scores-file flag also drops a database selected by the environment.
func applyFileFlags(c *config.Config) {
	if flagDictionary != "" {
		c.DictionaryFile = flagDictionary
	}
	if flagRoots != "" {
		c.RootsFile = flagRoots
	}
	if flagSaveDir != "" {
		c.SaveDir = flagSaveDir
	}
	if flagScoresFile != "" {
		c.ScoresFile = flagScoresFile
		c.ScoresDB = ""
	}
	if flagScoresDB != "" {
		c.ScoresDB = flagScoresDB
	}
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("hive")
		return err
	}
	return nil
}
