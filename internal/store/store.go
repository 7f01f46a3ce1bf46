// Package store persists problem documents in SQLite. Problems keep their
// source markup; rendering happens on the way out, never on the way in.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound reports that no row matched the requested id.
var ErrNotFound = errors.New("store: not found")

// Problem is one stored problem document.
type Problem struct {
	ID         int64
	Content    string
	Solution   string
	Answer     string
	Notes      string
	Categories []string
	Created    time.Time
	Modified   time.Time
}

// ListFilter narrows List results. Zero values leave the dimension open.
type ListFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS problems (
	problem_id INTEGER PRIMARY KEY,
	content TEXT NOT NULL,
	solution TEXT NOT NULL DEFAULT '',
	answer TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	modified_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	category_id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS problem_categories (
	problem_id INTEGER NOT NULL REFERENCES problems(problem_id) ON DELETE CASCADE,
	category_id INTEGER NOT NULL REFERENCES categories(category_id) ON DELETE CASCADE,
	PRIMARY KEY (problem_id, category_id)
);
`

// Open opens (creating if needed) a SQLite problem store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store: path is required")
	}
	// The _pragma form is applied by the driver on every pooled connection.
	dsn := filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func toMillis(t time.Time) int64   { return t.UTC().UnixMilli() }
func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

// Save inserts the problem when ID is zero and updates it otherwise. The
// stored row's id and timestamps are written back into p.
func (s *Store) Save(ctx context.Context, p *Problem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(p.Content) == "" {
		return fmt.Errorf("store: problem content is required")
	}

	now := time.Now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if p.ID == 0 {
		p.Created = now
		res, err := tx.ExecContext(ctx,
			`INSERT INTO problems (content, solution, answer, notes, created_at, modified_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.Content, p.Solution, p.Answer, p.Notes, toMillis(now), toMillis(now))
		if err != nil {
			return fmt.Errorf("store: insert problem: %w", err)
		}
		p.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("store: insert problem: %w", err)
		}
	} else {
		res, err := tx.ExecContext(ctx,
			`UPDATE problems SET content = ?, solution = ?, answer = ?, notes = ?, modified_at = ?
			 WHERE problem_id = ?`,
			p.Content, p.Solution, p.Answer, p.Notes, toMillis(now), p.ID)
		if err != nil {
			return fmt.Errorf("store: update problem: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("store: update problem: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	p.Modified = now

	if err := s.replaceCategories(ctx, tx, p.ID, p.Categories); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

func (s *Store) replaceCategories(ctx context.Context, tx *sql.Tx, problemID int64, names []string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM problem_categories WHERE problem_id = ?`, problemID); err != nil {
		return fmt.Errorf("store: clear categories: %w", err)
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO categories (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("store: insert category: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO problem_categories (problem_id, category_id)
			 SELECT ?, category_id FROM categories WHERE name = ?`,
			problemID, name); err != nil {
			return fmt.Errorf("store: link category: %w", err)
		}
	}
	return nil
}

// Get loads one problem with its categories.
func (s *Store) Get(ctx context.Context, id int64) (*Problem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := &Problem{ID: id}
	var created, modified int64
	err := s.db.QueryRowContext(ctx,
		`SELECT content, solution, answer, notes, created_at, modified_at
		 FROM problems WHERE problem_id = ?`, id).
		Scan(&p.Content, &p.Solution, &p.Answer, &p.Notes, &created, &modified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get problem: %w", err)
	}
	p.Created = fromMillis(created)
	p.Modified = fromMillis(modified)

	p.Categories, err = s.problemCategories(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) problemCategories(ctx context.Context, id int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.name FROM categories c
		 JOIN problem_categories pc ON pc.category_id = c.category_id
		 WHERE pc.problem_id = ? ORDER BY c.name`, id)
	if err != nil {
		return nil, fmt.Errorf("store: get categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("store: scan category: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// List returns problems matching the filter, newest first. Categories are
// not populated; use Get for the full record.
func (s *Store) List(ctx context.Context, f ListFilter) ([]*Problem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := `SELECT DISTINCT p.problem_id, p.content, p.answer, p.created_at, p.modified_at
	 FROM problems p`
	var conds []string
	var args []any

	if f.Category != "" {
		query += `
	 JOIN problem_categories pc ON pc.problem_id = p.problem_id
	 JOIN categories c ON c.category_id = pc.category_id`
		conds = append(conds, "c.name = ?")
		args = append(args, f.Category)
	}
	if f.Search != "" {
		conds = append(conds, "(p.content LIKE ? OR p.solution LIKE ? OR p.answer LIKE ?)")
		like := "%" + f.Search + "%"
		args = append(args, like, like, like)
	}
	if len(conds) > 0 {
		query += "\n	 WHERE " + strings.Join(conds, " AND ")
	}
	query += "\n	 ORDER BY p.modified_at DESC"

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += "\n	 LIMIT ? OFFSET ?"
	args = append(args, limit, f.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list problems: %w", err)
	}
	defer rows.Close()

	var out []*Problem
	for rows.Next() {
		p := &Problem{}
		var created, modified int64
		if err := rows.Scan(&p.ID, &p.Content, &p.Answer, &created, &modified); err != nil {
			return nil, fmt.Errorf("store: scan problem: %w", err)
		}
		p.Created = fromMillis(created)
		p.Modified = fromMillis(modified)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a problem and its category links.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM problems WHERE problem_id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete problem: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete problem: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Categories returns all category names in lexical order.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store: list categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("store: scan category: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
