package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/osero2000/coddee-news-app/internal/domain"
	"github.com/osero2000/coddee-news-app/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
    id         text PRIMARY KEY,
    link       text NOT NULL,
    doc        jsonb NOT NULL,
    created_at timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS articles_link_idx ON articles (link);
`

// PostgresStore persists article documents in a jsonb-backed collection.
// Merge semantics come from the jsonb concatenation operator: fields absent
// from the new document are preserved, present ones are overwritten.
type PostgresStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ ports.ArticleStore = (*PostgresStore)(nil)

// Open connects to Postgres using the given DSN.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// EnsureSchema creates the articles table and its link index.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// FindByLink returns id and country_code of every record with the given
// original link.
func (s *PostgresStore) FindByLink(ctx context.Context, link string) ([]domain.StoredRecord, error) {
	if s.db == nil {
		return nil, nil
	}

	query, args, err := s.sb.
		Select("id", "coalesce(doc->>'country_code', '')").
		From("articles").
		Where(sq.Eq{"link": link}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query by link: %w", err)
	}
	defer rows.Close()

	var records []domain.StoredRecord
	for rows.Next() {
		var record domain.StoredRecord
		if err := rows.Scan(&record.ID, &record.CountryCode); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return records, nil
}

// Commit applies the whole batch in one transaction. An empty batch returns
// immediately without touching the database.
func (s *PostgresStore) Commit(ctx context.Context, batch *domain.WriteBatch) error {
	if batch == nil || batch.Empty() {
		return nil
	}
	if s.db == nil {
		return fmt.Errorf("store is not connected")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	for _, op := range batch.Ops() {
		var execErr error
		switch op.Kind {
		case domain.OpSet:
			execErr = s.execSet(ctx, tx, op)
		case domain.OpDelete:
			execErr = s.execDelete(ctx, tx, op.ID)
		default:
			execErr = fmt.Errorf("unknown batch op %q", op.Kind)
		}
		if execErr != nil {
			_ = tx.Rollback()
			return execErr
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) execSet(ctx context.Context, tx *sql.Tx, op domain.BatchOp) error {
	doc, err := json.Marshal(op.Article)
	if err != nil {
		return fmt.Errorf("marshal article %s: %w", op.ID, err)
	}

	query, args, err := s.sb.
		Insert("articles").
		Columns("id", "link", "doc").
		Values(op.ID, op.Article.Link, doc).
		Suffix("ON CONFLICT (id) DO UPDATE SET link = EXCLUDED.link, doc = articles.doc || EXCLUDED.doc").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert article %s: %w", op.ID, err)
	}
	return nil
}

func (s *PostgresStore) execDelete(ctx context.Context, tx *sql.Tx, id string) error {
	query, args, err := s.sb.
		Delete("articles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete article %s: %w", id, err)
	}
	return nil
}
