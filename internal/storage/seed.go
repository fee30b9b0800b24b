package storage

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout accepted by Seed.
type SeedFile struct {
	Projects []Project        `yaml:"projects"`
	Posts    []BlogPost        `yaml:"blog_posts"`
	Assets   []Asset           `yaml:"assets"`
	Commands []seedCommand     `yaml:"terminal_commands"`
	Pages    []Page            `yaml:"pages"`
	Settings map[string]string `yaml:"site_settings"`
}

// seedCommand defaults enabled to true when the key is omitted.
type seedCommand struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Response    string `yaml:"response"`
	Kind        string `yaml:"kind"`
	Enabled     *bool  `yaml:"enabled"`
}

// SeedStats counts the records a seed touched.
type SeedStats struct {
	Projects, Posts, Assets, Commands, Pages, Settings int
}

// Total is the number of records written.
func (s SeedStats) Total() int {
	return s.Projects + s.Posts + s.Assets + s.Commands + s.Pages + s.Settings
}

// Seed imports a YAML content file, upserting every record by its natural
// key. The whole file is applied in one transaction.
func (s *Store) Seed(path string) (SeedStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedStats{}, fmt.Errorf("storage: cannot read seed file %s: %w", path, err)
	}
	return s.SeedFrom(bytes.NewReader(data))
}

// SeedFrom is Seed over an already opened document.
func (s *Store) SeedFrom(r io.Reader) (SeedStats, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return SeedStats{}, fmt.Errorf("storage: cannot parse seed file: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return SeedStats{}, fmt.Errorf("storage: cannot begin seed: %w", err)
	}
	stats, err := f.apply(tx)
	if err != nil {
		tx.Rollback()
		return SeedStats{}, err
	}
	if err := tx.Commit(); err != nil {
		return SeedStats{}, fmt.Errorf("storage: cannot commit seed: %w", err)
	}
	return stats, nil
}

func (f SeedFile) apply(tx *sql.Tx) (SeedStats, error) {
	var st SeedStats
	for _, p := range f.Projects {
		if p.Slug == "" || p.Title == "" {
			return st, fmt.Errorf("storage: seed project needs slug and title")
		}
		if err := upsertProject(tx, p); err != nil {
			return st, err
		}
		st.Projects++
	}
	for _, p := range f.Posts {
		if p.Slug == "" || p.Title == "" {
			return st, fmt.Errorf("storage: seed blog post needs slug and title")
		}
		if err := upsertPost(tx, p); err != nil {
			return st, err
		}
		st.Posts++
	}
	for _, a := range f.Assets {
		if err := upsertAsset(tx, a); err != nil {
			return st, err
		}
		st.Assets++
	}
	for _, c := range f.Commands {
		if c.Name == "" {
			return st, fmt.Errorf("storage: seed terminal command needs a name")
		}
		cmd := TerminalCommand{
			Name:        c.Name,
			Description: c.Description,
			Response:    c.Response,
			Kind:        c.Kind,
			Enabled:     c.Enabled == nil || *c.Enabled,
		}
		if err := upsertCommand(tx, cmd); err != nil {
			return st, err
		}
		st.Commands++
	}
	for _, p := range f.Pages {
		if p.Slug == "" || p.Title == "" {
			return st, fmt.Errorf("storage: seed page needs slug and title")
		}
		if err := upsertPage(tx, p); err != nil {
			return st, err
		}
		st.Pages++
	}
	for k, v := range f.Settings {
		if err := setSetting(tx, k, v); err != nil {
			return st, err
		}
		st.Settings++
	}
	return st, nil
}
