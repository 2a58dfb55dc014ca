package db

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ticket (
	id SERIAL PRIMARY KEY,
	title TEXT UNIQUE NOT NULL,
	rows INTEGER NOT NULL,
	columns INTEGER NOT NULL,
	date TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS user_ticket_association (
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	ticket_id INTEGER NOT NULL REFERENCES ticket(id) ON DELETE CASCADE,
	PRIMARY KEY (user_id, ticket_id)
);
`

// NewDB initializes a database connection using sqlx and bootstraps the
// schema. The CREATE statements are idempotent, so restarting against an
// existing database is safe.
func NewDB(dsn string) *sqlx.DB {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	db.MustExec(schema)

	log.Println("Connected to the DB")
	return db
}
