package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authconsole/internal/common"
	"github.com/dmitrijs2005/authconsole/internal/dbx"
	"github.com/dmitrijs2005/authconsole/internal/models"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// SQLiteStore keeps the token pair in a local SQLite key/value table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) set(ctx context.Context, tx dbx.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO tokens (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set tokens[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM tokens WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get tokens[%s]: %w", key, err)
	}
	return value, nil
}

// Save persists both tokens in a single transaction. An incomplete pair is
// rejected so a torn pair can never be written.
func (s *SQLiteStore) Save(ctx context.Context, pair models.TokenPair) error {
	if !pair.Complete() {
		return fmt.Errorf("refusing to save incomplete token pair")
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, keyAccessToken, pair.AccessToken); err != nil {
			return err
		}
		return s.set(ctx, tx, keyRefreshToken, pair.RefreshToken)
	})
}

// Load reads the stored pair. A pair with either entry missing counts as
// absent and yields common.ErrNotFound.
func (s *SQLiteStore) Load(ctx context.Context) (models.TokenPair, error) {
	access, err := s.get(ctx, keyAccessToken)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := s.get(ctx, keyRefreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	pair := models.TokenPair{AccessToken: access, RefreshToken: refresh}
	if !pair.Complete() {
		return models.TokenPair{}, common.ErrNotFound
	}
	return pair, nil
}

// Clear removes both entries. Clearing an empty store succeeds.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tokens`)
	if err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}
