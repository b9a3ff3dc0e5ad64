package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("postgres", dsn)
}

func DSN(host string, port int, user, pass, name, ssl string) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, ssl,
	)
}

// EnsureSchema creates the tables and unique keys the stores rely on. The
// triple key on chat_requests and the pair key on channels are what make
// the upserts race-safe; they are part of the contract, not an optimization.
func EnsureSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		display_name  TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS items (
		id                    TEXT PRIMARY KEY,
		owner_id              TEXT NOT NULL REFERENCES users(id),
		title                 TEXT NOT NULL,
		description           TEXT NOT NULL DEFAULT '',
		kind                  TEXT NOT NULL,
		location              TEXT NOT NULL DEFAULT '',
		status                TEXT NOT NULL,
		verification_question TEXT,
		verification_answer   TEXT,
		created_at            TIMESTAMPTZ NOT NULL,
		updated_at            TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS channels (
		id         TEXT PRIMARY KEY,
		item_id    TEXT NOT NULL,
		user_a     TEXT NOT NULL,
		user_b     TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (item_id, user_a, user_b)
	);

	CREATE TABLE IF NOT EXISTS chat_requests (
		id               TEXT PRIMARY KEY,
		item_id          TEXT NOT NULL,
		requester_id     TEXT NOT NULL,
		owner_id         TEXT NOT NULL,
		question         TEXT NOT NULL,
		correct_answer   TEXT NOT NULL,
		submitted_answer TEXT,
		answer_correct   BOOLEAN NOT NULL DEFAULT FALSE,
		status           TEXT NOT NULL,
		channel_id       TEXT REFERENCES channels(id),
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL,
		UNIQUE (item_id, requester_id, owner_id)
	);

	CREATE TABLE IF NOT EXISTS messages (
		id         TEXT PRIMARY KEY,
		channel_id TEXT NOT NULL REFERENCES channels(id),
		sender_id  TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_chat_requests_owner
		ON chat_requests (owner_id, answer_correct, updated_at DESC);
	CREATE INDEX IF NOT EXISTS idx_messages_channel
		ON messages (channel_id, created_at);
	`)
	return err
}
