// Package mapping holds the explicit override table of known field-name
// correspondences between the snake_case persistence layer and the
// camelCase API layer. Keys absent from the table fall back to the
// algorithmic conversion in the convert package.
package mapping

import (
	"fmt"

	"github.com/recasehq/recase/internal/errors"
	"github.com/recasehq/recase/internal/models"
)

// Pair is a single snake_case/camelCase correspondence.
type Pair struct {
	Snake string `yaml:"snake"`
	Camel string `yaml:"camel"`
}

// Table is the immutable override dictionary. Both indexes are built once
// at construction, so lookups are O(1) in either direction. A Table is
// safe for concurrent use by any number of goroutines.
type Table struct {
	snakeToCamel map[string]string
	camelToSnake map[string]string
}

// DefaultPairs returns the built-in domain vocabulary. The persistence
// layer stores snake_case columns; clients speak camelCase.
func DefaultPairs() []Pair {
	return []Pair{
		{Snake: "first_name", Camel: "firstName"},
		{Snake: "last_name", Camel: "lastName"},
		{Snake: "full_name", Camel: "fullName"},
		{Snake: "email_address", Camel: "emailAddress"},
		{Snake: "phone_number", Camel: "phoneNumber"},
		{Snake: "avatar_url", Camel: "avatarUrl"},
		{Snake: "user_id", Camel: "userId"},
		{Snake: "session_id", Camel: "sessionId"},
		{Snake: "case_id", Camel: "caseId"},
		{Snake: "case_number", Camel: "caseNumber"},
		{Snake: "document_id", Camel: "documentId"},
		{Snake: "document_type", Camel: "documentType"},
		{Snake: "evidence_id", Camel: "evidenceId"},
		{Snake: "evidence_type", Camel: "evidenceType"},
		{Snake: "file_name", Camel: "fileName"},
		{Snake: "file_size", Camel: "fileSize"},
		{Snake: "file_url", Camel: "fileUrl"},
		{Snake: "mime_type", Camel: "mimeType"},
		{Snake: "content_type", Camel: "contentType"},
		{Snake: "is_active", Camel: "isActive"},
		{Snake: "is_admin", Camel: "isAdmin"},
		{Snake: "is_deleted", Camel: "isDeleted"},
		{Snake: "created_at", Camel: "createdAt"},
		{Snake: "updated_at", Camel: "updatedAt"},
		{Snake: "deleted_at", Camel: "deletedAt"},
		{Snake: "last_login_at", Camel: "lastLoginAt"},
		{Snake: "published_at", Camel: "publishedAt"},
		{Snake: "sort_order", Camel: "sortOrder"},
		{Snake: "page_size", Camel: "pageSize"},
		{Snake: "page_number", Camel: "pageNumber"},
		{Snake: "total_count", Camel: "totalCount"},
	}
}

// New builds a Table from the given pairs. Duplicate snake or camel
// entries break the bijection invariant and are reported as a
// configuration error rather than silently overwritten.
func New(pairs []Pair) (*Table, error) {
	t := &Table{
		snakeToCamel: make(map[string]string, len(pairs)),
		camelToSnake: make(map[string]string, len(pairs)),
	}
	for _, p := range pairs {
		if p.Snake == "" || p.Camel == "" {
			return nil, errors.NewConfigError(
				fmt.Sprintf("mapping pair %q/%q has an empty side", p.Snake, p.Camel),
				errors.ErrNotBijective,
			)
		}
		if existing, ok := t.snakeToCamel[p.Snake]; ok && existing != p.Camel {
			return nil, errors.NewConfigError(
				fmt.Sprintf("snake key %q maps to both %q and %q", p.Snake, existing, p.Camel),
				errors.ErrNotBijective,
			)
		}
		if existing, ok := t.camelToSnake[p.Camel]; ok && existing != p.Snake {
			return nil, errors.NewConfigError(
				fmt.Sprintf("camel key %q maps to both %q and %q", p.Camel, existing, p.Snake),
				errors.ErrNotBijective,
			)
		}
		t.snakeToCamel[p.Snake] = p.Camel
		t.camelToSnake[p.Camel] = p.Snake
	}
	return t, nil
}

// MustNew is like New but panics on a broken table. Intended for the
// built-in vocabulary, which is validated by tests.
func MustNew(pairs []Pair) *Table {
	t, err := New(pairs)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the explicit override target for key in the given
// direction, or ok=false if the key is not in the table.
func (t *Table) Lookup(key string, dir models.Direction) (string, bool) {
	if t == nil {
		return "", false
	}
	switch dir {
	case models.SnakeToCamel:
		v, ok := t.snakeToCamel[key]
		return v, ok
	case models.CamelToSnake:
		v, ok := t.camelToSnake[key]
		return v, ok
	default:
		return "", false
	}
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.snakeToCamel)
}

// Pairs returns a copy of the table contents as a pair list, in no
// particular order. Primarily a debugging aid.
func (t *Table) Pairs() []Pair {
	if t == nil {
		return nil
	}
	out := make([]Pair, 0, len(t.snakeToCamel))
	for s, c := range t.snakeToCamel {
		out = append(out, Pair{Snake: s, Camel: c})
	}
	return out
}
