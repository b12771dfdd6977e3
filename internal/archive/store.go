// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists finished articles to a local SQLite
// database so earlier runs can be listed, searched, and re-exported.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/docmaster/autowriter/pkg/types"
)

const dbFile = "archive.db"

// Store manages the article archive SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the archive database at dir/archive.db,
// creating the schema if it does not exist.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			title TEXT,
			topic TEXT,
			language TEXT,
			paragraph_count INTEGER,
			request TEXT,
			markdown TEXT,
			html TEXT,
			parameters TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='articles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE articles_fts USING fts5(title, topic, markdown, content=articles, content_rowid=rowid)`,
			`CREATE TRIGGER articles_ai AFTER INSERT ON articles BEGIN
				INSERT INTO articles_fts(rowid, title, topic, markdown) VALUES (new.rowid, new.title, new.topic, new.markdown);
			END`,
			`CREATE TRIGGER articles_ad AFTER DELETE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, topic, markdown) VALUES('delete', old.rowid, old.title, old.topic, old.markdown);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Save inserts a finished article. A missing ID or timestamp is
// assigned here so callers can hand over the record as produced by the
// writer.
func (s *Store) Save(ctx context.Context, rec *types.ArticleRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	paramsJSON, err := json.Marshal(rec.Parameters)
	if err != nil {
		return fmt.Errorf("marshaling parameters: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO articles (id, created_at, title, topic, language, paragraph_count, request, markdown, html, parameters)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.Format(time.RFC3339Nano),
		rec.Title, rec.Topic, rec.Language, rec.ParagraphCount,
		rec.Request, rec.Markdown, rec.HTML, string(paramsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting article: %w", err)
	}
	return nil
}

// QueryOptions holds parameters for archive queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over title, topic and
	// markdown.
	Query string

	// Language filters by the record's language code.
	Language string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// List queries the archive with optional full-text search and filters.
// Full-text queries are ranked by relevance; otherwise results come
// newest first.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]types.ArticleRecord, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT a.id, a.created_at, a.title, a.topic, a.language,
				a.paragraph_count, a.request, a.markdown, a.html, a.parameters
			FROM articles_fts
			JOIN articles a ON a.rowid = articles_fts.rowid
			WHERE articles_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT a.id, a.created_at, a.title, a.topic, a.language,
				a.paragraph_count, a.request, a.markdown, a.html, a.parameters
			FROM articles a
			WHERE 1=1`)
	}

	if opts.Language != "" {
		qb.WriteString(` AND a.language = ?`)
		args = append(args, opts.Language)
	}

	if useFTS {
		qb.WriteString(` ORDER BY articles_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY a.created_at DESC`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var records []types.ArticleRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Get returns one archived article by ID.
func (s *Store) Get(ctx context.Context, id string) (types.ArticleRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT a.id, a.created_at, a.title, a.topic, a.language,
			a.paragraph_count, a.request, a.markdown, a.html, a.parameters
		FROM articles a WHERE a.id = ?`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.ArticleRecord{}, fmt.Errorf("article %s not found", id)
		}
		return types.ArticleRecord{}, err
	}
	return rec, nil
}

// Delete removes one archived article by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting article: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("article %s not found", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (types.ArticleRecord, error) {
	var (
		rec        types.ArticleRecord
		createdAt  string
		paramsJSON sql.NullString
	)

	if err := row.Scan(
		&rec.ID, &createdAt, &rec.Title, &rec.Topic, &rec.Language,
		&rec.ParagraphCount, &rec.Request, &rec.Markdown, &rec.HTML, &paramsJSON,
	); err != nil {
		if err == sql.ErrNoRows {
			return rec, err
		}
		return rec, fmt.Errorf("scanning row: %w", err)
	}

	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.CreatedAt = t
	}
	if paramsJSON.Valid {
		json.Unmarshal([]byte(paramsJSON.String), &rec.Parameters)
	}

	return rec, nil
}
