package postgres

import (
	"context"
	"database/sql"
)

// Schema is the users table this repo expects. Applied by the
// integration tests and by local bootstrapping; production migrations
// live with the deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id                 UUID PRIMARY KEY,
    email              TEXT NOT NULL UNIQUE,
    display_name       TEXT NOT NULL,
    password_hash      TEXT,
    verified_at        TIMESTAMPTZ,
    verification_token TEXT UNIQUE,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}
