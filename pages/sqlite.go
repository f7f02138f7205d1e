package pages

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"landing_page_studio/generator"
)

// DefaultDBName is used when no sqlite path is configured.
const DefaultDBName = "landing-pages.db"

// fixed width so lexical order matches time order
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore keeps landing pages in a local SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// OpenSQLite opens or creates the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		path = DefaultDBName
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection: sqlite has a single writer and ":memory:" is per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{db: db, path: path, now: time.Now}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Create(ctx context.Context, f Fields) (Record, error) {
	f.Theme = generator.NormalizeTheme(string(f.Theme))
	features, err := marshalFeatures(f)
	if err != nil {
		return Record{}, err
	}
	now := s.now().UTC()
	rec := Record{ID: uuid.NewString(), Fields: f, CreatedAt: now, UpdatedAt: now}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO landing_pages (id, company_name, tagline, description, hero_title, hero_subtitle, features, cta, theme, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, f.CompanyName, f.Tagline, f.Description, f.HeroTitle, f.HeroSubtitle, features, f.CTA, string(f.Theme),
		now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return Record{}, fmt.Errorf("failed to insert landing page: %w", err)
	}
	return rec, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id string, f Fields) (Record, error) {
	f.Theme = generator.NormalizeTheme(string(f.Theme))
	features, err := marshalFeatures(f)
	if err != nil {
		return Record{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("failed to begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	prev, err := scanRecord(tx.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if err != nil {
		return Record{}, err
	}

	updated := s.now().UTC()
	if !updated.After(prev.UpdatedAt) {
		updated = prev.UpdatedAt.Add(time.Nanosecond)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE landing_pages
		SET company_name = ?, tagline = ?, description = ?, hero_title = ?, hero_subtitle = ?,
		    features = ?, cta = ?, theme = ?, updated_at = ?
		WHERE id = ?
	`, f.CompanyName, f.Tagline, f.Description, f.HeroTitle, f.HeroSubtitle, features, f.CTA, string(f.Theme),
		updated.Format(timeLayout), id)
	if err != nil {
		return Record{}, fmt.Errorf("failed to update landing page: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("failed to commit update: %w", err)
	}

	return Record{ID: id, Fields: f, CreatedAt: prev.CreatedAt, UpdatedAt: updated}, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list landing pages: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list landing pages: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Record, error) {
	return scanRecord(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM landing_pages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete landing page: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete landing page: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	return nil
}

const selectColumns = `
	SELECT id, company_name, tagline, description, hero_title, hero_subtitle, features, cta, theme, created_at, updated_at
	FROM landing_pages`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec                  Record
		features, theme      string
		createdAt, updatedAt string
	)
	err := row.Scan(&rec.ID, &rec.CompanyName, &rec.Tagline, &rec.Description, &rec.HeroTitle, &rec.HeroSubtitle,
		&features, &rec.CTA, &theme, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to read landing page: %w", err)
	}
	if err := json.Unmarshal([]byte(features), &rec.Features); err != nil {
		return Record{}, fmt.Errorf("failed to decode features of %s: %w", rec.ID, err)
	}
	rec.Theme = generator.Theme(theme)
	if rec.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return Record{}, fmt.Errorf("failed to parse created_at of %s: %w", rec.ID, err)
	}
	if rec.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return Record{}, fmt.Errorf("failed to parse updated_at of %s: %w", rec.ID, err)
	}
	return rec, nil
}

func marshalFeatures(f Fields) (string, error) {
	features := f.Features
	if features == nil {
		features = []generator.Feature{}
	}
	data, err := json.Marshal(features)
	if err != nil {
		return "", fmt.Errorf("failed to encode features: %w", err)
	}
	return string(data), nil
}
