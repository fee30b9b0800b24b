package storage

import (
	"strings"
)

// Summary is a read-only, one-line view of a record.
type Summary struct {
	Slug    string
	Title   string
	Summary string
	URL     string
}

// Catalog is the snapshot of content the terminal reads from.
type Catalog struct {
	Projects  []Summary
	Posts     []Summary
	Pages     []Summary
	Commands  []TerminalCommand
	Settings  map[string]string
	ResumeURL string
}

// Project returns the project with slug.
func (c Catalog) Project(slug string) (Summary, bool) { return find(c.Projects, slug) }

// Post returns the post with slug.
func (c Catalog) Post(slug string) (Summary, bool) { return find(c.Posts, slug) }

func find(items []Summary, slug string) (Summary, bool) {
	for _, s := range items {
		if strings.EqualFold(s.Slug, slug) {
			return s, true
		}
	}
	return Summary{}, false
}

// ProjectSummaries lists projects, featured first, then by sort order.
func (s *Store) ProjectSummaries() ([]Summary, error) {
	all, err := s.ListProjects(Query{OrderBy: "sort_order"})
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(all))
	for _, featured := range []bool{true, false} {
		for _, p := range all {
			if p.Featured != featured {
				continue
			}
			url := p.URL
			if url == "" {
				url = p.RepoURL
			}
			out = append(out, Summary{Slug: p.Slug, Title: p.Title, Summary: oneLine(p.Summary), URL: url})
		}
	}
	return out, nil
}

// PostSummaries lists published posts, newest first.
func (s *Store) PostSummaries() ([]Summary, error) {
	posts, err := s.ListBlogPosts(Query{
		Filters: []Filter{Where("published", true)},
		OrderBy: "published_at",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(posts))
	for _, p := range posts {
		text := p.Excerpt
		if text == "" {
			text = p.Body
		}
		out = append(out, Summary{Slug: p.Slug, Title: p.Title, Summary: oneLine(text)})
	}
	return out, nil
}

// PageSummaries lists published pages.
func (s *Store) PageSummaries() ([]Summary, error) {
	pages, err := s.ListPages(Query{Filters: []Filter{Where("published", true)}, OrderBy: "slug"})
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(pages))
	for _, p := range pages {
		out = append(out, Summary{Slug: p.Slug, Title: p.Title, Summary: oneLine(p.Body)})
	}
	return out, nil
}

// Catalog gathers everything the terminal shows. resumeFile is the object
// path of the resume inside the resume bucket; empty means none.
func (s *Store) Catalog(b Buckets, resumeFile string) (Catalog, error) {
	var (
		c   Catalog
		err error
	)
	if c.Projects, err = s.ProjectSummaries(); err != nil {
		return Catalog{}, err
	}
	if c.Posts, err = s.PostSummaries(); err != nil {
		return Catalog{}, err
	}
	if c.Pages, err = s.PageSummaries(); err != nil {
		return Catalog{}, err
	}
	if c.Commands, err = s.ListTerminalCommands(Query{
		Filters: []Filter{Where("enabled", true)},
		OrderBy: "name",
	}); err != nil {
		return Catalog{}, err
	}
	if c.Settings, err = s.Settings(); err != nil {
		return Catalog{}, err
	}
	if resumeFile != "" {
		if c.ResumeURL, err = b.PublicURL(BucketResume, resumeFile); err != nil {
			return Catalog{}, err
		}
	}
	return c, nil
}

// oneLine keeps the first line of s, capped at 80 runes.
func oneLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	r := []rune(s)
	if len(r) > 80 {
		return string(r[:79]) + "…"
	}
	return s
}
