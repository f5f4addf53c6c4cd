// Package convert implements the single-key case transformation: an
// explicit table lookup first, then a character-scanning fallback for
// keys absent from the table.
package convert

import (
	"strings"

	"github.com/recasehq/recase/internal/mapping"
	"github.com/recasehq/recase/internal/models"
)

// Key converts one object key in the given direction. Explicit table
// entries always win; otherwise the algorithmic fallback applies. Key is
// a pure function of (key, dir, table) and never fails for any input
// string.
func Key(table *mapping.Table, key string, dir models.Direction) string {
	if target, ok := table.Lookup(key, dir); ok {
		return target
	}
	switch dir {
	case models.SnakeToCamel:
		return SnakeToCamel(key)
	case models.CamelToSnake:
		return CamelToSnake(key)
	default:
		return key
	}
}

// SnakeToCamel is the algorithmic fallback for keys not in the table.
// Each underscore followed by a lowercase ASCII letter collapses into
// the uppercase of that letter. Everything else is copied literally, so
// leading underscores, acronym runs, and digits pass through untouched.
// A key without underscores comes back unchanged.
func SnakeToCamel(key string) string {
	if !strings.ContainsRune(key, '_') {
		return key
	}
	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c == '_' && i+1 < len(key) && isLower(key[i+1]) {
			b.WriteByte(key[i+1] - ('a' - 'A'))
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// CamelToSnake is the algorithmic fallback for the opposite direction.
// Each uppercase ASCII letter becomes an underscore plus its lowercase
// form, including at position zero ("X" -> "_x"), which mirrors the
// snake-to-camel rule exactly for regular camelCase keys. Keys that are
// already fully lowercase come back unchanged.
func CamelToSnake(key string) string {
	hasUpper := false
	for i := 0; i < len(key); i++ {
		if isUpper(key[i]) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return key
	}
	var b strings.Builder
	b.Grow(len(key) + 2)
	for i := 0; i < len(key); i++ {
		c := key[i]
		if isUpper(c) {
			b.WriteByte('_')
			b.WriteByte(c + ('a' - 'A'))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
