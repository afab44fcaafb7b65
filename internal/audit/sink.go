package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// LogSink writes entries to the structured log.
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

// Write logs the entry.
func (s *LogSink) Write(ctx context.Context, e Entry) error {
	s.log.Info().
		Str("audit_id", e.ID).
		Str("action", e.Action).
		Str("actor", e.Actor).
		Str("ip", e.IPAddress).
		Str("request_id", e.RequestID).
		Int("rows", e.RowCount).
		Str("etag", e.ETag).
		Msg("admin change")
	return nil
}

// PostgresSink writes entries to an audit_log table:
//
//	CREATE TABLE IF NOT EXISTS audit_log (
//	    id         uuid PRIMARY KEY,
//	    action     text NOT NULL,
//	    actor      text NOT NULL DEFAULT '',
//	    ip_address text NOT NULL DEFAULT '',
//	    request_id text NOT NULL DEFAULT '',
//	    row_count  integer NOT NULL DEFAULT 0,
//	    etag       text NOT NULL DEFAULT '',
//	    created_at timestamptz NOT NULL
//	);
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink creates a PostgresSink over an existing pool.
func NewPostgresSink(pool *pgxpool.Pool) *PostgresSink {
	return &PostgresSink{pool: pool}
}

// Write inserts the entry.
func (s *PostgresSink) Write(ctx context.Context, e Entry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO audit_log (id, action, actor, ip_address, request_id, row_count, etag, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Action, e.Actor, e.IPAddress, e.RequestID, e.RowCount, e.ETag, e.CreatedAt,
	)
	return err
}
