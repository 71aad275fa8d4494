// Package store persists themes, tokens, and components in SQLite. It
// implements the export.Fetcher contract and serves the MCP and CLI
// surfaces. Theme snapshots are cached in a small LRU keyed by id;
// any write to a theme evicts it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
)

const themeCacheSize = 32

// Store is the SQLite-backed record store.
type Store struct {
	db    *sql.DB
	mu    sync.RWMutex
	cache *lru.Cache[string, *catalog.Theme]
}

// Open opens (creating if needed) the database at dbPath and ensures the
// schema. ":memory:" is accepted for tests.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	cache, err := lru.New[string, *catalog.Theme](themeCacheSize)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, cache: cache}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	lines := strings.Split(schemaSQL, "\n")
	var cleanLines []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "--") && trimmed != "" {
			cleanLines = append(cleanLines, line)
		}
	}

	if _, err := s.db.Exec(strings.Join(cleanLines, "\n")); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	_, _ = s.db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, schemaVersion)
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// --- themes ---

// ThemeSummary is the list-view projection of a theme.
type ThemeSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	TokenCount int    `json:"token_count"`
}

// SaveTheme inserts or replaces a theme with its tokens and typefaces in
// one transaction. Missing ids are assigned.
func (s *Store) SaveTheme(ctx context.Context, theme *catalog.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if theme.ID == "" {
		theme.ID = uuid.NewString()
	}
	if theme.Slug == "" {
		theme.Slug = catalog.Slugify(theme.Name)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save theme: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO themes (id, name, slug)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			slug = excluded.slug,
			updated_at = CURRENT_TIMESTAMP
	`, theme.ID, theme.Name, theme.Slug); err != nil {
		return fmt.Errorf("upsert theme %s: %w", theme.Name, err)
	}

	// Replace wholesale: the snapshot is the source of truth.
	if _, err := tx.ExecContext(ctx, `DELETE FROM tokens WHERE theme_id = ?`, theme.ID); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM typefaces WHERE theme_id = ?`, theme.ID); err != nil {
		return fmt.Errorf("clear typefaces: %w", err)
	}

	for i := range theme.Tokens {
		tok := &theme.Tokens[i]
		if tok.ID == "" {
			tok.ID = uuid.NewString()
		}
		tok.ThemeID = theme.ID
		value, err := json.Marshal(tok.Value)
		if err != nil {
			return fmt.Errorf("marshal value for %s: %w", tok.Path, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tokens (id, theme_id, name, path, category, type, value, css_variable, sort_order, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, tok.ID, theme.ID, tok.Name, tok.Path, string(tok.Category), tok.Type,
			string(value), tok.CSSVariable, tok.SortOrder, tok.Description); err != nil {
			return fmt.Errorf("insert token %s: %w", tok.Path, err)
		}
	}

	for _, tf := range theme.Typefaces {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO typefaces (theme_id, family, weight, style, source, url)
			VALUES (?, ?, ?, ?, ?, ?)
		`, theme.ID, tf.Family, tf.Weight, tf.Style, tf.Source, tf.URL); err != nil {
			return fmt.Errorf("insert typeface %s: %w", tf.Family, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save theme: %w", err)
	}
	s.cache.Remove(theme.ID)
	return nil
}

// GetTheme returns the full theme snapshot by id. Snapshots are cached;
// callers must treat the result as immutable.
func (s *Store) GetTheme(ctx context.Context, id string) (*catalog.Theme, error) {
	if theme, ok := s.cache.Get(id); ok {
		return theme, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	theme, err := s.loadTheme(ctx, `SELECT id, name, slug FROM themes WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	s.cache.Add(theme.ID, theme)
	return theme, nil
}

// GetThemeBySlug returns the full theme snapshot by slug.
func (s *Store) GetThemeBySlug(ctx context.Context, slug string) (*catalog.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadTheme(ctx, `SELECT id, name, slug FROM themes WHERE slug = ?`, slug)
}

func (s *Store) loadTheme(ctx context.Context, query, key string) (*catalog.Theme, error) {
	theme := &catalog.Theme{}
	row := s.db.QueryRowContext(ctx, query, key)
	if err := row.Scan(&theme.ID, &theme.Name, &theme.Slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("theme not found: %s", key)
		}
		return nil, fmt.Errorf("load theme %s: %w", key, err)
	}

	tokens, err := s.loadTokens(ctx, theme.ID)
	if err != nil {
		return nil, err
	}
	theme.Tokens = tokens

	typefaces, err := s.loadTypefaces(ctx, theme.ID)
	if err != nil {
		return nil, err
	}
	theme.Typefaces = typefaces
	return theme, nil
}

func (s *Store) loadTokens(ctx context.Context, themeID string) ([]catalog.Token, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, path, category, type, value, css_variable, sort_order, description
		FROM tokens WHERE theme_id = ? ORDER BY sort_order, name
	`, themeID)
	if err != nil {
		return nil, fmt.Errorf("load tokens: %w", err)
	}
	defer rows.Close()

	var tokens []catalog.Token
	for rows.Next() {
		tok := catalog.Token{ThemeID: themeID}
		var category, value string
		var typ, description sql.NullString
		if err := rows.Scan(&tok.ID, &tok.Name, &tok.Path, &category, &typ,
			&value, &tok.CSSVariable, &tok.SortOrder, &description); err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		tok.Category = catalog.Category(category)
		tok.Type = typ.String
		tok.Description = description.String
		parsed, err := catalog.ParseValueJSON(tok.Category, tok.Type, json.RawMessage(value))
		if err != nil {
			return nil, fmt.Errorf("parse value for %s: %w", tok.Path, err)
		}
		tok.Value = parsed
		tokens = append(tokens, tok)
	}
	return tokens, rows.Err()
}

func (s *Store) loadTypefaces(ctx context.Context, themeID string) ([]catalog.Typeface, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT family, weight, style, source, url
		FROM typefaces WHERE theme_id = ? ORDER BY family, weight
	`, themeID)
	if err != nil {
		return nil, fmt.Errorf("load typefaces: %w", err)
	}
	defer rows.Close()

	var typefaces []catalog.Typeface
	for rows.Next() {
		var tf catalog.Typeface
		var style, url sql.NullString
		if err := rows.Scan(&tf.Family, &tf.Weight, &style, &tf.Source, &url); err != nil {
			return nil, fmt.Errorf("scan typeface: %w", err)
		}
		tf.Style = style.String
		tf.URL = url.String
		typefaces = append(typefaces, tf)
	}
	return typefaces, rows.Err()
}

// ListThemes returns theme summaries ordered by name.
func (s *Store) ListThemes(ctx context.Context) ([]ThemeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.slug, COUNT(tok.id)
		FROM themes t LEFT JOIN tokens tok ON tok.theme_id = t.id
		GROUP BY t.id ORDER BY t.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var summaries []ThemeSummary
	for rows.Next() {
		var sum ThemeSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Slug, &sum.TokenCount); err != nil {
			return nil, fmt.Errorf("scan theme summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// DeleteTheme removes a theme; its tokens and typefaces cascade.
func (s *Store) DeleteTheme(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM themes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete theme: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("theme not found: %s", id)
	}
	s.cache.Remove(id)
	return nil
}

// --- components ---

// SaveComponent inserts or replaces a component. A missing id is assigned.
func (s *Store) SaveComponent(ctx context.Context, comp *catalog.Component) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if comp.ID == "" {
		comp.ID = uuid.NewString()
	}
	if comp.Slug == "" {
		comp.Slug = catalog.Slugify(comp.Name)
	}
	if comp.Status == "" {
		comp.Status = catalog.StatusDraft
	}

	props, err := marshalJSONColumn(comp.Props)
	if err != nil {
		return fmt.Errorf("marshal props: %w", err)
	}
	variants, err := marshalJSONColumn(comp.Variants)
	if err != nil {
		return fmt.Errorf("marshal variants: %w", err)
	}
	linked, err := marshalJSONColumn(comp.LinkedTokens)
	if err != nil {
		return fmt.Errorf("marshal linked tokens: %w", err)
	}
	examples, err := marshalJSONColumn(comp.Examples)
	if err != nil {
		return fmt.Errorf("marshal examples: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO components (id, name, slug, description, category, status, code, props, variants, linked_tokens, examples)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			slug = excluded.slug,
			description = excluded.description,
			category = excluded.category,
			status = excluded.status,
			code = excluded.code,
			props = excluded.props,
			variants = excluded.variants,
			linked_tokens = excluded.linked_tokens,
			examples = excluded.examples,
			updated_at = CURRENT_TIMESTAMP
	`, comp.ID, comp.Name, comp.Slug, comp.Description, comp.Category, comp.Status,
		comp.Code, props, variants, linked, examples); err != nil {
		return fmt.Errorf("save component %s: %w", comp.Name, err)
	}
	return nil
}

// GetComponent returns a component by id.
func (s *Store) GetComponent(ctx context.Context, id string) (*catalog.Component, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadComponent(ctx, `WHERE id = ?`, id)
}

// GetComponentBySlug returns a component by slug.
func (s *Store) GetComponentBySlug(ctx context.Context, slug string) (*catalog.Component, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadComponent(ctx, `WHERE slug = ?`, slug)
}

const componentColumns = `id, name, slug, description, category, status, code, props, variants, linked_tokens, examples`

func (s *Store) loadComponent(ctx context.Context, where, key string) (*catalog.Component, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+componentColumns+` FROM components `+where, key)
	comp, err := scanComponent(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("component not found: %s", key)
		}
		return nil, fmt.Errorf("load component %s: %w", key, err)
	}
	return comp, nil
}

// ListComponents returns components, optionally filtered by status,
// ordered by name.
func (s *Store) ListComponents(ctx context.Context, status string) ([]catalog.Component, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + componentColumns + ` FROM components`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()

	var components []catalog.Component
	for rows.Next() {
		comp, err := scanComponent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		components = append(components, *comp)
	}
	return components, rows.Err()
}

// DeleteComponent removes a component by id.
func (s *Store) DeleteComponent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM components WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete component: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("component not found: %s", id)
	}
	return nil
}

func scanComponent(scan func(...any) error) (*catalog.Component, error) {
	comp := &catalog.Component{}
	var description, category, code sql.NullString
	var props, variants, linked, examples sql.NullString
	if err := scan(&comp.ID, &comp.Name, &comp.Slug, &description, &category,
		&comp.Status, &code, &props, &variants, &linked, &examples); err != nil {
		return nil, err
	}
	comp.Description = description.String
	comp.Category = category.String
	comp.Code = code.String

	if err := unmarshalJSONColumn(props, &comp.Props); err != nil {
		return nil, fmt.Errorf("props: %w", err)
	}
	if err := unmarshalJSONColumn(variants, &comp.Variants); err != nil {
		return nil, fmt.Errorf("variants: %w", err)
	}
	if err := unmarshalJSONColumn(linked, &comp.LinkedTokens); err != nil {
		return nil, fmt.Errorf("linked tokens: %w", err)
	}
	if err := unmarshalJSONColumn(examples, &comp.Examples); err != nil {
		return nil, fmt.Errorf("examples: %w", err)
	}
	return comp, nil
}

func marshalJSONColumn(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalJSONColumn(col sql.NullString, dst any) error {
	if !col.Valid || col.String == "" || col.String == "null" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), dst)
}

// --- library import/export ---

// ImportLibrary saves every theme and component in the library. Existing
// records with the same ids are replaced.
func (s *Store) ImportLibrary(ctx context.Context, lib *catalog.Library) error {
	for i := range lib.Themes {
		if err := s.SaveTheme(ctx, &lib.Themes[i]); err != nil {
			return fmt.Errorf("import theme %s: %w", lib.Themes[i].Name, err)
		}
	}
	for i := range lib.Components {
		if err := s.SaveComponent(ctx, &lib.Components[i]); err != nil {
			return fmt.Errorf("import component %s: %w", lib.Components[i].Name, err)
		}
	}
	return nil
}

// ExportLibrary materializes the full store contents as a library snapshot.
func (s *Store) ExportLibrary(ctx context.Context, name, version string) (*catalog.Library, error) {
	summaries, err := s.ListThemes(ctx)
	if err != nil {
		return nil, err
	}

	lib := &catalog.Library{Name: name, Version: version}
	for _, sum := range summaries {
		theme, err := s.GetTheme(ctx, sum.ID)
		if err != nil {
			return nil, err
		}
		lib.Themes = append(lib.Themes, *theme)
	}

	components, err := s.ListComponents(ctx, "")
	if err != nil {
		return nil, err
	}
	lib.Components = components
	return lib, nil
}
