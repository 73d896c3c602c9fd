package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"portal/internal/partner"
	"portal/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// Schema creates the partner_keys table when missing.
const Schema = `
CREATE TABLE IF NOT EXISTS partner_keys (
	id         BIGINT PRIMARY KEY,
	partner_id BIGINT NOT NULL,
	name       TEXT NOT NULL,
	disabled   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore persists partner keys in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed partner key store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies Schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate partner_keys: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListKeys(ctx context.Context) ([]partner.Key, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, partner_id, name, disabled, created_at
		FROM partner_keys
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list partner keys: %w", err)
	}
	defer rows.Close()

	keys := make([]partner.Key, 0)
	for rows.Next() {
		var k partner.Key
		if err := rows.Scan(&k.ID, &k.PartnerID, &k.Name, &k.Disabled, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan partner key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list partner keys: %w", err)
	}
	return keys, nil
}

func (s *PostgresStore) FindKey(ctx context.Context, id partner.KeyID) (*partner.Key, error) {
	var k partner.Key
	err := s.db.QueryRowContext(ctx, `
		SELECT id, partner_id, name, disabled, created_at
		FROM partner_keys
		WHERE id = $1
	`, id).Scan(&k.ID, &k.PartnerID, &k.Name, &k.Disabled, &k.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("partner key %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find partner key: %w", err)
	}
	return &k, nil
}

func (s *PostgresStore) SaveKey(ctx context.Context, key partner.Key) error {
	if key.ID.IsNil() {
		return fmt.Errorf("partner key id is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO partner_keys (id, partner_id, name, disabled, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, key.ID, key.PartnerID, key.Name, key.Disabled, key.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("partner key %s: %w", key.ID, sentinel.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("save partner key: %w", err)
	}
	return nil
}
