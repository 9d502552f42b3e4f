package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				username TEXT NOT NULL,
				email TEXT,
				password_hash TEXT NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT TRUE
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_users_username ON users (username COLLATE NOCASE)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE user_profiles (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER REFERENCES users (id) NOT NULL,
				display_name TEXT NOT NULL,
				avatar_url TEXT,
				favorite_genre TEXT,
				reading_goal INTEGER,
				last_signed_in_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_user_profiles_user_id ON user_profiles (user_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE books (
				id TEXT PRIMARY KEY,
				user_id INTEGER REFERENCES users (id) NOT NULL,
				title TEXT NOT NULL,
				author TEXT NOT NULL,
				state TEXT NOT NULL DEFAULT 'not_started',
				current_page INTEGER NOT NULL DEFAULT 0,
				total_pages INTEGER NOT NULL DEFAULT 0,
				rating INTEGER,
				is_owned BOOLEAN NOT NULL DEFAULT FALSE,
				isbn TEXT,
				genre TEXT,
				published_date TEXT,
				cover_image_url TEXT,
				notes TEXT,
				added_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				started_at TIMESTAMPTZ,
				finished_at TIMESTAMPTZ
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_books_user_id ON books (user_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_books_user_id_state ON books (user_id, state)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_books_user_id_isbn ON books (user_id, isbn) WHERE isbn IS NOT NULL`)
		if err != nil {
			return errors.WithStack(err)
		}
		// book_id intentionally has no foreign key: the log keeps a final
		// delete_book event after the book row is gone.
		_, err = db.Exec(`
			CREATE TABLE book_events (
				id TEXT PRIMARY KEY,
				book_id TEXT NOT NULL,
				user_id INTEGER REFERENCES users (id) NOT NULL,
				type TEXT NOT NULL,
				data TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_book_events_book_id ON book_events (book_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_book_events_user_id_created_at ON book_events (user_id, created_at)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE book_comments (
				id TEXT PRIMARY KEY,
				book_id TEXT REFERENCES books (id) NOT NULL,
				user_id INTEGER REFERENCES users (id) NOT NULL,
				text TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_book_comments_book_id ON book_comments (book_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE jobs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER REFERENCES users (id) NOT NULL,
				type TEXT NOT NULL,
				status TEXT NOT NULL,
				data TEXT NOT NULL,
				progress INTEGER NOT NULL,
				error TEXT,
				process_id TEXT
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_jobs_user_id ON jobs (user_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_jobs_status ON jobs (status)`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{"jobs", "book_comments", "book_events", "books", "user_profiles", "users"} {
			_, err := db.Exec(`DROP TABLE IF EXISTS ` + table)
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
