package credentials

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"

	"github.com/hospitalapp/client-go/internal/dbx"
	"github.com/hospitalapp/client-go/internal/migrations"
)

// SQLiteRepository stores credentials in a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// InitDatabase opens the SQLite database at dsn, applies the embedded
// migrations and returns a ready repository.
func InitDatabase(ctx context.Context, dsn string) (*SQLiteRepository, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return NewSQLiteRepository(db), db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value string) error {
	return set(ctx, r.db, key, value)
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete credentials[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) SaveLogin(ctx context.Context, login SavedLogin) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, KeyLoginID, login.LoginID); err != nil {
			return err
		}
		if err := set(ctx, tx, KeyPassword, login.Password); err != nil {
			return err
		}
		return set(ctx, tx, KeyAutoLogin, strconv.FormatBool(login.AutoLogin))
	})
}

func (r *SQLiteRepository) LoadLogin(ctx context.Context) (SavedLogin, error) {
	var login SavedLogin
	var err error

	if login.LoginID, err = r.Get(ctx, KeyLoginID); err != nil {
		return SavedLogin{}, err
	}
	if login.Password, err = r.Get(ctx, KeyPassword); err != nil {
		return SavedLogin{}, err
	}
	flag, err := r.Get(ctx, KeyAutoLogin)
	if err != nil {
		return SavedLogin{}, err
	}
	login.AutoLogin, _ = strconv.ParseBool(flag)
	return login, nil
}

func set(ctx context.Context, db dbx.DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}
