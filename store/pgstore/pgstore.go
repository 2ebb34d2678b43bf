// Package pgstore provides the PostgreSQL refresh-token repository, backed by
// database/sql over the pgx stdlib driver.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dsmirnov/authkit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL with the pgx driver.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return db, nil
}

// RunMigrations applies the embedded goose migrations.
func (s *Store) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations)

	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func (s *Store) Create(ctx context.Context, rec *authkit.RefreshToken) (*authkit.RefreshToken, error) {

	query :=
		`INSERT INTO refresh_tokens (user_id, token, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	stored := *rec
	err := s.db.QueryRowContext(ctx, query, rec.UserID, rec.Token, rec.ExpiresAt).
		Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return &stored, nil
}

func (s *Store) Find(ctx context.Context, token string) (*authkit.RefreshToken, error) {

	query :=
		`SELECT id, user_id, token, expires_at, revoked_at, created_at, updated_at
		 FROM refresh_tokens
		 WHERE token = $1
		 `

	rec := &authkit.RefreshToken{}
	var revokedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, token).
		Scan(&rec.ID, &rec.UserID, &rec.Token, &rec.ExpiresAt, &revokedAt, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authkit.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	if revokedAt.Valid {
		rec.RevokedAt = &revokedAt.Time
	}

	return rec, nil
}

func (s *Store) Revoke(ctx context.Context, token string, at time.Time) error {

	// COALESCE keeps the first revocation timestamp, so revoking twice is a
	// no-op success.
	query :=
		`UPDATE refresh_tokens
		 SET revoked_at = COALESCE(revoked_at, $2), updated_at = $2
		 WHERE token = $1
		 `

	res, err := s.db.ExecContext(ctx, query, token, at)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	if n == 0 {
		return authkit.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {

	query :=
		`DELETE FROM refresh_tokens
		 WHERE expires_at < $1
		 `

	res, err := s.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %v", err)
	}

	return res.RowsAffected()
}

var _ authkit.RefreshTokenRepository = (*Store)(nil)
