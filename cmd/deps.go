package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hive/internal/db"
	"github.com/robalobadob/hive/internal/highscore"
	"github.com/robalobadob/hive/internal/save"
	"github.com/robalobadob/hive/internal/words"
)

// loadWords reads the configured dictionary and root lists.
func loadWords() (*words.Source, error) {
	return words.Load(cfg.DictionaryFile, cfg.RootsFile)
}

// openScores opens the high-score table on SQLite when HIVE_SCORES_DB is
// set, otherwise on the JSON file. The returned func releases resources.
func openScores(ctx context.Context) (*highscore.Store, func(), error) {
	if cfg.ScoresDB != "" {
		conn, err := db.Open(cfg.ScoresDB)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(conn); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		s, err := highscore.Open(ctx, highscore.NewSQLitePersister(conn))
		if err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		log.Debug().Str("db", cfg.ScoresDB).Msg("high scores on sqlite")
		return s, func() { _ = conn.Close() }, nil
	}
	s, err := highscore.Open(ctx, &highscore.FilePersister{Path: cfg.ScoresFile})
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("file", cfg.ScoresFile).Msg("high scores on file")
	return s, func() {}, nil
}

// saveCipher returns the passphrase cipher when one is configured.
func saveCipher() (save.Cipher, error) {
	if cfg.SavePassphrase == "" {
		return nil, nil
	}
	c, err := save.NewPassphraseCipher(cfg.SavePassphrase)
	if err != nil {
		return nil, err
	}
	return c, nil
}
