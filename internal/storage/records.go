package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Project is a portfolio project.
type Project struct {
	ID          int64     `yaml:"-"`
	Slug        string    `yaml:"slug"`
	Title       string    `yaml:"title"`
	Summary     string    `yaml:"summary"`
	Description string    `yaml:"description"`
	URL         string    `yaml:"url"`
	RepoURL     string    `yaml:"repo_url"`
	Tags        []string  `yaml:"tags"`
	Featured    bool      `yaml:"featured"`
	SortOrder   int       `yaml:"sort_order"`
	CreatedAt   time.Time `yaml:"-"`
}

// BlogPost is a post; only published posts reach the terminal.
type BlogPost struct {
	ID          int64     `yaml:"-"`
	Slug        string    `yaml:"slug"`
	Title       string    `yaml:"title"`
	Excerpt     string    `yaml:"excerpt"`
	Body        string    `yaml:"body"`
	Published   bool      `yaml:"published"`
	PublishedAt time.Time `yaml:"published_at"`
	CreatedAt   time.Time `yaml:"-"`
}

// Asset is an uploaded blob living in a bucket.
type Asset struct {
	ID          int64     `yaml:"-"`
	Bucket      Bucket    `yaml:"bucket"`
	Path        string    `yaml:"path"`
	Name        string    `yaml:"name"`
	ContentType string    `yaml:"content_type"`
	Size        int64     `yaml:"size"`
	CreatedAt   time.Time `yaml:"-"`
}

// TerminalCommand is a custom command added to the terminal from content.
type TerminalCommand struct {
	ID          int64  `yaml:"-"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Response    string `yaml:"response"`
	Kind        string `yaml:"kind"` // text, ascii, list, success, error
	Enabled     bool   `yaml:"enabled"`
}

// Page is a free-form content page.
type Page struct {
	ID        int64  `yaml:"-"`
	Slug      string `yaml:"slug"`
	Title     string `yaml:"title"`
	Body      string `yaml:"body"`
	Published bool   `yaml:"published"`
}

func joinTags(tags []string) string { return strings.Join(tags, ",") }

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// --- projects

const projectCols = "id, slug, title, summary, description, url, repo_url, tags, featured, sort_order, created_at"

func scanProject(r rowScanner) (Project, error) {
	var (
		p         Project
		tags      string
		createdAt any
	)
	err := r.Scan(&p.ID, &p.Slug, &p.Title, &p.Summary, &p.Description, &p.URL, &p.RepoURL,
		&tags, &p.Featured, &p.SortOrder, &createdAt)
	p.Tags = splitTags(tags)
	p.CreatedAt = parseTime(createdAt)
	return p, err
}

// ListProjects returns projects matching q.
func (s *Store) ListProjects(q Query) ([]Project, error) {
	return list(s, Projects, projectCols, q, scanProject)
}

// ProjectBySlug returns one project. ok is false when none matches.
func (s *Store) ProjectBySlug(slug string) (Project, bool, error) {
	return one(s.ListProjects(Query{Filters: []Filter{Where("slug", slug)}, Limit: 1}))
}

// InsertProject adds a project and sets its ID.
func (s *Store) InsertProject(p *Project) error {
	res, err := s.db.Exec(
		`INSERT INTO projects (slug, title, summary, description, url, repo_url, tags, featured, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Summary, p.Description, p.URL, p.RepoURL, joinTags(p.Tags), p.Featured, p.SortOrder,
	)
	return setID(res, err, &p.ID, "insert project")
}

// UpdateProject overwrites the project with p.ID.
func (s *Store) UpdateProject(p Project) error {
	res, err := s.db.Exec(
		`UPDATE projects SET slug = ?, title = ?, summary = ?, description = ?, url = ?, repo_url = ?,
		 tags = ?, featured = ?, sort_order = ? WHERE id = ?`,
		p.Slug, p.Title, p.Summary, p.Description, p.URL, p.RepoURL, joinTags(p.Tags), p.Featured, p.SortOrder, p.ID,
	)
	return affected(res, err, "update project")
}

func upsertProject(x execer, p Project) error {
	_, err := x.Exec(
		`INSERT INTO projects (slug, title, summary, description, url, repo_url, tags, featured, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET title = excluded.title, summary = excluded.summary,
		   description = excluded.description, url = excluded.url, repo_url = excluded.repo_url,
		   tags = excluded.tags, featured = excluded.featured, sort_order = excluded.sort_order`,
		p.Slug, p.Title, p.Summary, p.Description, p.URL, p.RepoURL, joinTags(p.Tags), p.Featured, p.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot upsert project %q: %w", p.Slug, err)
	}
	return nil
}

// --- blog posts

const postCols = "id, slug, title, excerpt, body, published, published_at, created_at"

func scanPost(r rowScanner) (BlogPost, error) {
	var (
		p                      BlogPost
		publishedAt, createdAt any
	)
	err := r.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Body, &p.Published, &publishedAt, &createdAt)
	p.PublishedAt = parseTime(publishedAt)
	p.CreatedAt = parseTime(createdAt)
	return p, err
}

// ListBlogPosts returns posts matching q.
func (s *Store) ListBlogPosts(q Query) ([]BlogPost, error) {
	return list(s, BlogPosts, postCols, q, scanPost)
}

// InsertBlogPost adds a post and sets its ID.
func (s *Store) InsertBlogPost(p *BlogPost) error {
	res, err := s.db.Exec(
		`INSERT INTO blog_posts (slug, title, excerpt, body, published, published_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Excerpt, p.Body, p.Published, formatTime(p.PublishedAt),
	)
	return setID(res, err, &p.ID, "insert blog post")
}

// UpdateBlogPost overwrites the post with p.ID.
func (s *Store) UpdateBlogPost(p BlogPost) error {
	res, err := s.db.Exec(
		`UPDATE blog_posts SET slug = ?, title = ?, excerpt = ?, body = ?, published = ?, published_at = ? WHERE id = ?`,
		p.Slug, p.Title, p.Excerpt, p.Body, p.Published, formatTime(p.PublishedAt), p.ID,
	)
	return affected(res, err, "update blog post")
}

func upsertPost(x execer, p BlogPost) error {
	_, err := x.Exec(
		`INSERT INTO blog_posts (slug, title, excerpt, body, published, published_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET title = excluded.title, excerpt = excluded.excerpt,
		   body = excluded.body, published = excluded.published, published_at = excluded.published_at`,
		p.Slug, p.Title, p.Excerpt, p.Body, p.Published, formatTime(p.PublishedAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot upsert blog post %q: %w", p.Slug, err)
	}
	return nil
}

// --- assets

const assetCols = "id, bucket, path, name, content_type, size, created_at"

func scanAsset(r rowScanner) (Asset, error) {
	var (
		a         Asset
		createdAt any
	)
	err := r.Scan(&a.ID, &a.Bucket, &a.Path, &a.Name, &a.ContentType, &a.Size, &createdAt)
	a.CreatedAt = parseTime(createdAt)
	return a, err
}

// ListAssets returns assets matching q.
func (s *Store) ListAssets(q Query) ([]Asset, error) {
	return list(s, Assets, assetCols, q, scanAsset)
}

// InsertAsset records an uploaded blob and sets its ID.
func (s *Store) InsertAsset(a *Asset) error {
	if _, err := ParseBucket(string(a.Bucket)); err != nil {
		return err
	}
	res, err := s.db.Exec(
		`INSERT INTO assets (bucket, path, name, content_type, size) VALUES (?, ?, ?, ?, ?)`,
		a.Bucket, a.Path, a.Name, a.ContentType, a.Size,
	)
	return setID(res, err, &a.ID, "insert asset")
}

// UpdateAsset overwrites the asset with a.ID.
func (s *Store) UpdateAsset(a Asset) error {
	if _, err := ParseBucket(string(a.Bucket)); err != nil {
		return err
	}
	res, err := s.db.Exec(
		`UPDATE assets SET bucket = ?, path = ?, name = ?, content_type = ?, size = ? WHERE id = ?`,
		a.Bucket, a.Path, a.Name, a.ContentType, a.Size, a.ID,
	)
	return affected(res, err, "update asset")
}

func upsertAsset(x execer, a Asset) error {
	if _, err := ParseBucket(string(a.Bucket)); err != nil {
		return err
	}
	_, err := x.Exec(
		`INSERT INTO assets (bucket, path, name, content_type, size) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(bucket, path) DO UPDATE SET name = excluded.name,
		   content_type = excluded.content_type, size = excluded.size`,
		a.Bucket, a.Path, a.Name, a.ContentType, a.Size,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot upsert asset %s/%s: %w", a.Bucket, a.Path, err)
	}
	return nil
}

// --- terminal commands

const commandCols = "id, name, description, response, kind, enabled"

func scanCommand(r rowScanner) (TerminalCommand, error) {
	var c TerminalCommand
	err := r.Scan(&c.ID, &c.Name, &c.Description, &c.Response, &c.Kind, &c.Enabled)
	return c, err
}

// ListTerminalCommands returns custom commands matching q.
func (s *Store) ListTerminalCommands(q Query) ([]TerminalCommand, error) {
	return list(s, TerminalCommands, commandCols, q, scanCommand)
}

// InsertTerminalCommand adds a custom command and sets its ID.
func (s *Store) InsertTerminalCommand(c *TerminalCommand) error {
	res, err := s.db.Exec(
		`INSERT INTO terminal_commands (name, description, response, kind, enabled) VALUES (?, ?, ?, ?, ?)`,
		strings.ToLower(c.Name), c.Description, c.Response, kindOrText(c.Kind), c.Enabled,
	)
	return setID(res, err, &c.ID, "insert terminal command")
}

// UpdateTerminalCommand overwrites the command with c.ID.
func (s *Store) UpdateTerminalCommand(c TerminalCommand) error {
	res, err := s.db.Exec(
		`UPDATE terminal_commands SET name = ?, description = ?, response = ?, kind = ?, enabled = ? WHERE id = ?`,
		strings.ToLower(c.Name), c.Description, c.Response, kindOrText(c.Kind), c.Enabled, c.ID,
	)
	return affected(res, err, "update terminal command")
}

func upsertCommand(x execer, c TerminalCommand) error {
	_, err := x.Exec(
		`INSERT INTO terminal_commands (name, description, response, kind, enabled) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET description = excluded.description,
		   response = excluded.response, kind = excluded.kind, enabled = excluded.enabled`,
		strings.ToLower(c.Name), c.Description, c.Response, kindOrText(c.Kind), c.Enabled,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot upsert terminal command %q: %w", c.Name, err)
	}
	return nil
}

func kindOrText(k string) string {
	if k == "" {
		return "text"
	}
	return strings.ToLower(k)
}

// --- pages

const pageCols = "id, slug, title, body, published"

func scanPage(r rowScanner) (Page, error) {
	var p Page
	err := r.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.Published)
	return p, err
}

// ListPages returns pages matching q.
func (s *Store) ListPages(q Query) ([]Page, error) {
	return list(s, Pages, pageCols, q, scanPage)
}

// InsertPage adds a page and sets its ID.
func (s *Store) InsertPage(p *Page) error {
	res, err := s.db.Exec(
		`INSERT INTO pages (slug, title, body, published) VALUES (?, ?, ?, ?)`,
		p.Slug, p.Title, p.Body, p.Published,
	)
	return setID(res, err, &p.ID, "insert page")
}

// UpdatePage overwrites the page with p.ID.
func (s *Store) UpdatePage(p Page) error {
	res, err := s.db.Exec(
		`UPDATE pages SET slug = ?, title = ?, body = ?, published = ? WHERE id = ?`,
		p.Slug, p.Title, p.Body, p.Published, p.ID,
	)
	return affected(res, err, "update page")
}

func upsertPage(x execer, p Page) error {
	_, err := x.Exec(
		`INSERT INTO pages (slug, title, body, published) VALUES (?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET title = excluded.title, body = excluded.body,
		   published = excluded.published`,
		p.Slug, p.Title, p.Body, p.Published,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot upsert page %q: %w", p.Slug, err)
	}
	return nil
}

// --- site settings

// Setting returns a site setting. ok is false when the key is unset.
func (s *Store) Setting(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM site_settings WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read setting %q: %w", key, err)
	}
	return v, true, nil
}

// Settings returns every site setting.
func (s *Store) Settings() (map[string]string, error) {
	type kv struct{ k, v string }
	rows, err := list(s, SiteSettings, "key, value", Query{OrderBy: "key"}, func(r rowScanner) (kv, error) {
		var e kv
		err := r.Scan(&e.k, &e.v)
		return e, err
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, e := range rows {
		out[e.k] = e.v
	}
	return out, nil
}

// SetSetting inserts or replaces a site setting.
func (s *Store) SetSetting(key, value string) error {
	return setSetting(s.db, key, value)
}

func setSetting(x execer, key, value string) error {
	_, err := x.Exec(
		`INSERT INTO site_settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set setting %q: %w", key, err)
	}
	return nil
}

// DeleteSetting removes a site setting.
func (s *Store) DeleteSetting(key string) error {
	res, err := s.db.Exec("DELETE FROM site_settings WHERE key = ?", key)
	return affected(res, err, "delete setting")
}

func setID(res sql.Result, err error, id *int64, what string) error {
	if err != nil {
		return fmt.Errorf("storage: cannot %s: %w", what, err)
	}
	n, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	*id = n
	return nil
}

func one[T any](items []T, err error) (T, bool, error) {
	var zero T
	if err != nil {
		return zero, false, err
	}
	if len(items) == 0 {
		return zero, false, nil
	}
	return items[0], true, nil
}
