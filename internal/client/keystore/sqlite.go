package keystore

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/photovault/internal/client/keystore/migrations"
	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/dbx"
)

// SQLiteKeyStore stores keys in a local sqlite database, the non-browser
// equivalent of browser local storage.
type SQLiteKeyStore struct {
	db dbx.DBTX
}

var _ KeyStore = (*SQLiteKeyStore)(nil)

// InitDatabase opens the sqlite database at dsn and applies the keystore
// migrations. The caller imports the driver (modernc.org/sqlite).
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening keystore db: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("keystore migrations: %w", err)
	}
	return db, nil
}

func NewSQLiteKeyStore(db dbx.DBTX) *SQLiteKeyStore {
	return &SQLiteKeyStore{db: db}
}

func (s *SQLiteKeyStore) set(ctx context.Context, name string, key []byte) error {
	value := base64.StdEncoding.EncodeToString(key)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO keys (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value;
	`, name, value)
	if err != nil {
		return fmt.Errorf("storing key %q: %w", name, err)
	}
	return nil
}

func (s *SQLiteKeyStore) get(ctx context.Context, name string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM keys WHERE name = $1`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading key %q: %w", name, err)
	}
	key, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt key %q: %v", common.ErrEncoding, name, err)
	}
	return key, nil
}

func (s *SQLiteKeyStore) SetMasterKey(ctx context.Context, key []byte) error {
	return s.set(ctx, masterKeyName, key)
}

func (s *SQLiteKeyStore) MasterKey(ctx context.Context) ([]byte, error) {
	return s.get(ctx, masterKeyName)
}

func (s *SQLiteKeyStore) SetShareKey(ctx context.Context, shareID string, key []byte) error {
	return s.set(ctx, sharePrefix+shareID, key)
}

func (s *SQLiteKeyStore) ShareKey(ctx context.Context, shareID string) ([]byte, error) {
	return s.get(ctx, sharePrefix+shareID)
}

func (s *SQLiteKeyStore) DeleteShareKey(ctx context.Context, shareID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM keys WHERE name = $1`, sharePrefix+shareID); err != nil {
		return fmt.Errorf("deleting share key: %w", err)
	}
	return nil
}

func (s *SQLiteKeyStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM keys`); err != nil {
		return fmt.Errorf("clearing keystore: %w", err)
	}
	return nil
}
