package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
projects:
  - slug: termfolio
    title: Termfolio
    summary: |
      Portfolio you can ssh into.
      Second line is dropped from summaries.
    url: https://example.com/termfolio
    featured: true
    sort_order: 2
  - slug: ray
    title: Ray tracer
    summary: Weekend ray tracer
    repo_url: https://github.com/example/ray
    sort_order: 1
blog_posts:
  - slug: hello
    title: Hello
    excerpt: First post
    published: true
    published_at: 2024-03-01T12:00:00Z
  - slug: draft
    title: Draft
    published: false
assets:
  - bucket: resume
    path: cv.pdf
    name: CV
    content_type: application/pdf
terminal_commands:
  - name: coffee
    response: brewing
  - name: hidden
    response: nope
    enabled: false
pages:
  - slug: uses
    title: Uses
    body: vim
    published: true
site_settings:
  tagline: hi
`

func TestSeedAndCatalog(t *testing.T) {
	store := openMemory(t)

	stats, err := store.SeedFrom(strings.NewReader(seedYAML))
	require.NoError(t, err)
	assert.Equal(t, SeedStats{Projects: 2, Posts: 2, Assets: 1, Commands: 2, Pages: 1, Settings: 1}, stats)
	assert.Equal(t, 9, stats.Total())

	cat, err := store.Catalog(Buckets{BaseURL: "https://cdn.example.com/storage"}, "cv.pdf")
	require.NoError(t, err)

	require.Len(t, cat.Projects, 2)
	assert.Equal(t, "termfolio", cat.Projects[0].Slug, "featured projects come first")
	assert.Equal(t, "Portfolio you can ssh into.", cat.Projects[0].Summary)
	assert.Equal(t, "https://github.com/example/ray", cat.Projects[1].URL, "repo URL stands in for a missing URL")

	require.Len(t, cat.Posts, 1, "drafts are hidden")
	assert.Equal(t, "hello", cat.Posts[0].Slug)
	require.Len(t, cat.Commands, 1, "disabled commands are hidden")
	assert.Equal(t, "coffee", cat.Commands[0].Name)
	require.Len(t, cat.Pages, 1)
	assert.Equal(t, "hi", cat.Settings["tagline"])
	assert.Equal(t, "https://cdn.example.com/storage/resume/cv.pdf", cat.ResumeURL)

	p, ok := cat.Project("TERMFOLIO")
	assert.True(t, ok)
	assert.Equal(t, "Termfolio", p.Title)
	_, ok = cat.Post("draft")
	assert.False(t, ok)
}

func TestSeedIsIdempotent(t *testing.T) {
	store := openMemory(t)
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	_, err := store.Seed(path)
	require.NoError(t, err)
	_, err = store.Seed(path)
	require.NoError(t, err)

	n, err := store.Count(Projects, Query{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSeedRollsBackOnError(t *testing.T) {
	store := openMemory(t)

	bad := `
projects:
  - slug: ok
    title: OK
assets:
  - bucket: secrets
    path: key
`
	_, err := store.SeedFrom(strings.NewReader(bad))
	require.ErrorIs(t, err, ErrUnknownBucket)

	n, err := store.Count(Projects, Query{})
	require.NoError(t, err)
	assert.Zero(t, n, "a failed seed leaves nothing behind")
}

func TestSeedRejectsUnknownKeys(t *testing.T) {
	store := openMemory(t)
	_, err := store.SeedFrom(strings.NewReader("users:\n  - name: x\n"))
	assert.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		bucket  Bucket
		path    string
		want    string
		wantErr error
	}{
		{"image", "https://cdn.example.com", BucketPublicImages, "me.png", "https://cdn.example.com/public-images/me.png", nil},
		{"leading slash", "https://cdn.example.com/", BucketAbout, "/a/b.txt", "https://cdn.example.com/about/a/b.txt", nil},
		{"no base", "", BucketResume, "cv.pdf", "", nil},
		{"unknown bucket", "https://cdn.example.com", "private", "x", "", ErrUnknownBucket},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Buckets{BaseURL: tt.base}.PublicURL(tt.bucket, tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "first", oneLine("  first\nsecond"))
	long := strings.Repeat("x", 100)
	assert.Len(t, []rune(oneLine(long)), 80)
}
