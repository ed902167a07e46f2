package repository

import (
	"context"
	"database/sql"
	"errors"

	"skill-passport/internal/database"

	"github.com/jackc/pgx/v5"
)

// PostgresStore keeps each collection as one JSONB row of the collections
// table. Update locks the row for the duration of fn.
type PostgresStore struct {
	db database.DB
}

func NewPostgresStore(db database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Read(ctx context.Context, name string) ([]byte, error) {
	var doc []byte
	row := s.db.QueryRow(ctx, `SELECT document::text FROM collections WHERE name = $1`, name)
	if err := row.Scan(&doc); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, ioError("read", name, err)
	}
	return doc, nil
}

func (s *PostgresStore) Write(ctx context.Context, name string, doc []byte) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO collections (name, document, updated_at)
		 VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = now()`,
		name, string(doc),
	)
	if err != nil {
		return ioError("write", name, err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, name string, fn func(doc []byte) ([]byte, error)) error {
	var fnErr error
	err := database.InTx(ctx, s.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO collections (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			name,
		); err != nil {
			return err
		}

		var cur []byte
		row := tx.QueryRow(ctx, `SELECT document::text FROM collections WHERE name = $1 FOR UPDATE`, name)
		if err := row.Scan(&cur); err != nil {
			return err
		}

		next, err := fn(cur)
		if err != nil {
			fnErr = err
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE collections SET document = $2::jsonb, updated_at = now() WHERE name = $1`,
			name, string(next),
		)
		return err
	})
	if err != nil {
		if fnErr != nil {
			return fnErr
		}
		return ioError("update", name, err)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
