package highscore

import (
	"context"
	"database/sql"
)

// SQLitePersister keeps the table in the high_scores table of a migrated
// database (see internal/db).
type SQLitePersister struct{ db *sql.DB }

// NewSQLitePersister wraps an open, migrated database.
func NewSQLitePersister(db *sql.DB) *SQLitePersister { return &SQLitePersister{db: db} }

// Load reads every row.
func (s *SQLitePersister) Load(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, score FROM high_scores`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var name string
		var score int
		if err := rows.Scan(&name, &score); err != nil {
			return nil, err
		}
		out[name] = score
	}
	return out, rows.Err()
}

// Save replaces all rows with scores in one transaction.
func (s *SQLitePersister) Save(ctx context.Context, scores map[string]int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM high_scores`); err != nil {
		return err
	}
	for name, score := range scores {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO high_scores(name, score) VALUES (?, ?)`, name, score,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
