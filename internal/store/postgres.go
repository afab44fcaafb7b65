package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopkit/paytoggle/internal/rules"
)

// PostgresStore keeps options in a single two-column table:
//
//	CREATE TABLE IF NOT EXISTS options (
//	    name       text PRIMARY KEY,
//	    value      jsonb NOT NULL,
//	    updated_at timestamptz NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// GetOption reads a raw option value.
func (p *PostgresStore) GetOption(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := p.pool.QueryRow(ctx,
		`SELECT value FROM options WHERE name = $1`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// SetOption writes a raw option value, replacing any previous one.
// The upsert is unconditional: last write wins.
func (p *PostgresStore) SetOption(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO options (name, value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	return err
}

// LoadRules returns the persisted rule set, or an empty set when the key has
// never been written.
func (p *PostgresStore) LoadRules(ctx context.Context) (rules.RuleSet, error) {
	value, found, err := p.GetOption(ctx, SettingsKey)
	if err != nil || !found {
		return rules.RuleSet{}, err
	}
	return decodeRules(value)
}

// SaveRules overwrites the persisted rule set.
func (p *PostgresStore) SaveRules(ctx context.Context, rs rules.RuleSet) error {
	value, err := encodeRules(rs)
	if err != nil {
		return err
	}
	return p.SetOption(ctx, SettingsKey, value)
}

// Close closes the underlying connection pool.
func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}
