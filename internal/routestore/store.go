// Package routestore exports compiled route tables to SQLite so consumers can
// query routes and diff builds without parsing artifacts.
package routestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"git.home.luguber.info/inful/siteroutes/internal/routes"
	"git.home.luguber.info/inful/siteroutes/internal/sidebar"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a build or route does not exist.
var ErrNotFound = errors.New("not found")

// StoredRoute is one flattened route row.
type StoredRoute struct {
	BuildID     string
	Path        string
	ParentPath  string // "" for top-level routes
	Depth       int
	Ordinal     int // depth-first emission order
	Component   string
	ContentHash string
	Exact       bool
	SidebarID   string
	Slug        string
	ListingKind string
	ListingKey  string
	Page        int
	TotalPages  int
}

// Store is a SQLite-backed route table archive.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the database at dbPath. Use ":memory:" for an
// in-memory database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		created_at INTEGER NOT NULL,
		route_count INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS routes (
		build_id TEXT NOT NULL,
		path TEXT NOT NULL,
		parent_path TEXT NOT NULL,
		depth INTEGER NOT NULL,
		ordinal INTEGER NOT NULL,
		component TEXT NOT NULL,
		hash TEXT NOT NULL,
		exact INTEGER NOT NULL,
		sidebar TEXT NOT NULL,
		slug TEXT NOT NULL,
		listing_kind TEXT NOT NULL,
		listing_key TEXT NOT NULL,
		page INTEGER NOT NULL,
		total_pages INTEGER NOT NULL,
		PRIMARY KEY (build_id, path)
	);
	CREATE INDEX IF NOT EXISTS idx_routes_slug ON routes(build_id, slug);
	CREATE TABLE IF NOT EXISTS sidebars (
		build_id TEXT NOT NULL,
		id TEXT NOT NULL,
		ordinal INTEGER NOT NULL,
		items BLOB NOT NULL,
		PRIMARY KEY (build_id, id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveBuild stores every route and sidebar of one build in a single
// transaction. Saving a build id again replaces its rows.
func (s *Store) SaveBuild(ctx context.Context, buildID string, table *routes.Table, sidebars []*sidebar.Sidebar) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{
		"DELETE FROM routes WHERE build_id = ?",
		"DELETE FROM sidebars WHERE build_id = ?",
		"DELETE FROM builds WHERE id = ?",
	} {
		if _, err = tx.ExecContext(ctx, stmt, buildID); err != nil {
			return fmt.Errorf("clear build: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		"INSERT INTO builds (id, created_at, route_count) VALUES (?, ?, ?)",
		buildID, time.Now().Unix(), table.Len(),
	); err != nil {
		return fmt.Errorf("insert build: %w", err)
	}

	insert, err := tx.PrepareContext(ctx, `INSERT INTO routes
		(build_id, path, parent_path, depth, ordinal, component, hash, exact, sidebar, slug, listing_kind, listing_key, page, total_pages)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare route insert: %w", err)
	}
	defer insert.Close()

	ordinal := 0
	var visit func(rs []*routes.Route, parent string, depth int) error
	visit = func(rs []*routes.Route, parent string, depth int) error {
		for _, r := range rs {
			var kind, key string
			var page, total int
			if r.Listing != nil {
				kind, key, page, total = r.Listing.Kind, r.Listing.Key, r.Listing.Page, r.Listing.TotalPages
			}
			if _, err := insert.ExecContext(ctx, buildID, r.Path, parent, depth, ordinal, string(r.Component),
				r.ContentHash, r.Exact, r.SidebarID, r.Slug, kind, key, page, total); err != nil {
				return fmt.Errorf("insert route %s: %w", r.Path, err)
			}
			ordinal++
			if err := visit(r.Children, r.Path, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err = visit(table.Routes(), "", 0); err != nil {
		return err
	}

	for i, sb := range sidebars {
		var items []byte
		if items, err = json.Marshal(sb.Items); err != nil {
			return fmt.Errorf("marshal sidebar %s: %w", sb.ID, err)
		}
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO sidebars (build_id, id, ordinal, items) VALUES (?, ?, ?, ?)",
			buildID, sb.ID, i, items,
		); err != nil {
			return fmt.Errorf("insert sidebar %s: %w", sb.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit build: %w", err)
	}
	return nil
}

// LatestBuild returns the id of the most recently saved build.
func (s *Store) LatestBuild(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM builds ORDER BY seq DESC LIMIT 1").Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("latest build: %w", ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("query latest build: %w", err)
	}
	return id, nil
}

const routeColumns = "build_id, path, parent_path, depth, ordinal, component, hash, exact, sidebar, slug, listing_kind, listing_key, page, total_pages"

// Lookup returns the route at path in a build.
func (s *Store) Lookup(ctx context.Context, buildID, path string) (*StoredRoute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+routeColumns+" FROM routes WHERE build_id = ? AND path = ?",
		buildID, routes.Normalize(path))
	r, err := scanRoute(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("route %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Routes returns every route of a build in emission order.
func (s *Store) Routes(ctx context.Context, buildID string) ([]StoredRoute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+routeColumns+" FROM routes WHERE build_id = ? ORDER BY ordinal", buildID)
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	defer rows.Close()

	var out []StoredRoute
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Sidebar returns the stored items of one sidebar.
func (s *Store) Sidebar(ctx context.Context, buildID, id string) ([]*sidebar.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT items FROM sidebars WHERE build_id = ? AND id = ?", buildID, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sidebar %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query sidebar: %w", err)
	}
	var items []*sidebar.Node
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal sidebar %s: %w", id, err)
	}
	return items, nil
}

// ChangedPaths lists paths whose content hash differs between two builds,
// including paths present in only one of them, in lexical order.
func (s *Store) ChangedPaths(ctx context.Context, from, to string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT path FROM (
			SELECT a.path AS path FROM routes a
			LEFT JOIN routes b ON b.build_id = ? AND b.path = a.path
			WHERE a.build_id = ? AND (b.path IS NULL OR b.hash <> a.hash)
			UNION
			SELECT b.path AS path FROM routes b
			LEFT JOIN routes a ON a.build_id = ? AND a.path = b.path
			WHERE b.build_id = ? AND a.path IS NULL
		) ORDER BY path`,
		to, from, from, to)
	if err != nil {
		return nil, fmt.Errorf("query changed paths: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoute(row scanner) (*StoredRoute, error) {
	var r StoredRoute
	err := row.Scan(&r.BuildID, &r.Path, &r.ParentPath, &r.Depth, &r.Ordinal, &r.Component, &r.ContentHash,
		&r.Exact, &r.SidebarID, &r.Slug, &r.ListingKind, &r.ListingKey, &r.Page, &r.TotalPages)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan route: %w", err)
	}
	return &r, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
