package storage

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Collection names a record collection.
type Collection string

const (
	Projects         Collection = "projects"
	BlogPosts        Collection = "blog_posts"
	Assets           Collection = "assets"
	TerminalCommands Collection = "terminal_commands"
	SiteSettings     Collection = "site_settings"
	Pages            Collection = "pages"
)

var (
	// ErrUnknownCollection is returned for a collection name outside the schema.
	ErrUnknownCollection = errors.New("storage: unknown collection")
	// ErrUnknownColumn is returned when a query filters or sorts on a column
	// the collection does not expose.
	ErrUnknownColumn = errors.New("storage: unknown column")
	// ErrBadOp is returned for an unsupported filter operator.
	ErrBadOp = errors.New("storage: unsupported operator")
)

// columns whitelists the filterable and sortable columns per collection.
// Column names never come from user input unchecked.
var columns = map[Collection][]string{
	Projects:         {"id", "slug", "title", "featured", "sort_order", "created_at"},
	BlogPosts:        {"id", "slug", "title", "published", "published_at", "created_at"},
	Assets:           {"id", "bucket", "path", "name", "content_type", "size", "created_at"},
	TerminalCommands: {"id", "name", "kind", "enabled"},
	SiteSettings:     {"key"},
	Pages:            {"id", "slug", "title", "published"},
}

// Collections lists every collection in schema order.
func Collections() []Collection {
	return []Collection{Projects, BlogPosts, Assets, TerminalCommands, SiteSettings, Pages}
}

// ParseCollection validates a collection name.
func ParseCollection(name string) (Collection, error) {
	c := Collection(strings.ToLower(name))
	if _, ok := columns[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return c, nil
}

// Op is a filter comparison.
type Op string

const (
	OpEq   Op = "="
	OpNe   Op = "!="
	OpLt   Op = "<"
	OpGt   Op = ">"
	OpLike Op = "LIKE"
)

// Filter restricts a query to rows where Column Op Value holds.
type Filter struct {
	Column string
	Op     Op // empty means OpEq
	Value  any
}

// Query selects records from a collection.
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int // 0 means no limit
}

// Where is shorthand for an equality filter.
func Where(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// build renders the WHERE / ORDER BY / LIMIT tail of a SELECT.
func (q Query) build(c Collection) (string, []any, error) {
	allowed, ok := columns[c]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}

	var (
		sb   strings.Builder
		args []any
	)
	for i, f := range q.Filters {
		if !slices.Contains(allowed, f.Column) {
			return "", nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, c, f.Column)
		}
		op := f.Op
		if op == "" {
			op = OpEq
		}
		switch op {
		case OpEq, OpNe, OpLt, OpGt, OpLike:
		default:
			return "", nil, fmt.Errorf("%w: %q", ErrBadOp, op)
		}

		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		fmt.Fprintf(&sb, "%s %s ?", f.Column, op)
		args = append(args, f.Value)
	}

	if q.OrderBy != "" {
		if !slices.Contains(allowed, q.OrderBy) {
			return "", nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, c, q.OrderBy)
		}
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s", q.OrderBy, dir)
	}

	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}
	return sb.String(), args, nil
}

// rowScanner is the Scan method shared by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// list runs a SELECT of cols over collection c and scans every row.
func list[T any](s *Store, c Collection, cols string, q Query, scan func(rowScanner) (T, error)) ([]T, error) {
	tail, args, err := q.build(c)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT "+cols+" FROM "+string(c)+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query %s: %w", c, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan %s row: %w", c, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Count returns the number of records matching q's filters.
func (s *Store) Count(c Collection, q Query) (int, error) {
	q.OrderBy, q.Limit = "", 0
	tail, args, err := q.build(c)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM "+string(c)+tail, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count %s: %w", c, err)
	}
	return n, nil
}

// Delete removes a record by id. Site settings are keyed by name; use
// DeleteSetting for them.
func (s *Store) Delete(c Collection, id int64) error {
	if _, ok := columns[c]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	if c == SiteSettings {
		return fmt.Errorf("storage: %s has no numeric id", c)
	}
	res, err := s.db.Exec("DELETE FROM "+string(c)+" WHERE id = ?", id)
	return affected(res, err, "delete from "+string(c))
}
