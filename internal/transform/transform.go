// Package transform walks arbitrarily nested JSON-shaped values and
// rewrites every object key through the convert package. The input tree
// is never mutated; each call allocates a fresh output tree.
package transform

import (
	"fmt"
	"sort"

	"github.com/recasehq/recase/internal/convert"
	"github.com/recasehq/recase/internal/errors"
	"github.com/recasehq/recase/internal/mapping"
	"github.com/recasehq/recase/internal/models"
)

// DefaultMaxDepth bounds recursion so that adversarial or accidentally
// cyclic input fails with an error instead of exhausting the stack.
const DefaultMaxDepth = 1000

// KeyCollisionError reports two distinct source keys in one object that
// converge on the same converted key.
type KeyCollisionError struct {
	Target  string
	First   string
	Second  string
	KeyPath string
}

// Error implements error interface
func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("keys %q and %q at %q both convert to %q", e.First, e.Second, e.KeyPath, e.Target)
}

// Unwrap lets callers match the sentinel with errors.Is.
func (e *KeyCollisionError) Unwrap() error {
	return errors.ErrKeyCollision
}

// MaxDepthError reports input nested deeper than the configured limit.
type MaxDepthError struct {
	Limit   int
	KeyPath string
}

// Error implements error interface
func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("nesting at %q exceeds the configured depth limit of %d", e.KeyPath, e.Limit)
}

// Unwrap lets callers match the sentinel with errors.Is.
func (e *MaxDepthError) Unwrap() error {
	return errors.ErrMaxDepthExceeded
}

// Transformer applies key conversion to whole value trees. It carries no
// per-call state, so one Transformer may serve any number of concurrent
// callers.
type Transformer struct {
	table    *mapping.Table
	maxDepth int
	// lenient disables collision errors; the lexicographically later
	// source key then wins, which keeps the overwrite deterministic.
	lenient bool
}

// New creates a Transformer over the given table with the default depth
// limit and strict collision handling.
func New(table *mapping.Table) *Transformer {
	return &Transformer{table: table, maxDepth: DefaultMaxDepth}
}

// WithMaxDepth returns a copy of the Transformer with the given depth
// limit. Limits below 1 fall back to the default.
func (t *Transformer) WithMaxDepth(limit int) *Transformer {
	c := *t
	if limit < 1 {
		limit = DefaultMaxDepth
	}
	c.maxDepth = limit
	return &c
}

// WithLenient returns a copy of the Transformer that overwrites on key
// collisions instead of failing.
func (t *Transformer) WithLenient(lenient bool) *Transformer {
	c := *t
	c.lenient = lenient
	return &c
}

// Transform rewrites every object key in v in the given direction and
// returns a new tree of the same shape. Scalars and nil pass through
// unchanged. Arrays map element-wise, preserving length and order.
func (t *Transformer) Transform(v models.JSONValue, dir models.Direction) (models.JSONValue, error) {
	return t.walk(v, dir, 0, "$")
}

func (t *Transformer) walk(v models.JSONValue, dir models.Direction, depth int, path string) (models.JSONValue, error) {
	if depth > t.maxDepth {
		return nil, errors.NewTransformError("input nested too deeply", &MaxDepthError{Limit: t.maxDepth, KeyPath: path})
	}

	switch val := v.(type) {
	case models.JSONObject:
		return t.walkObject(val, dir, depth, path)
	case models.JSONArray:
		return t.walkArray(val, dir, depth, path)
	default:
		// Scalars, nil, and anything we do not recognize pass through.
		return v, nil
	}
}

// walkObject rebuilds an object with converted keys. Source keys are
// visited in sorted order so the output, and any lenient-mode overwrite,
// is reproducible across runs despite Go's randomized map iteration.
func (t *Transformer) walkObject(obj models.JSONObject, dir models.Direction, depth int, path string) (models.JSONValue, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(models.JSONObject, len(obj))
	// converted target -> source key that produced it, for collision detection
	origin := make(map[string]string, len(obj))

	for _, k := range keys {
		target := convert.Key(t.table, k, dir)
		if first, ok := origin[target]; ok && !t.lenient {
			return nil, errors.NewTransformError(
				"key collision after conversion",
				&KeyCollisionError{Target: target, First: first, Second: k, KeyPath: path},
			)
		}
		origin[target] = k

		child, err := t.walk(obj[k], dir, depth+1, path+"."+k)
		if err != nil {
			return nil, err
		}
		out[target] = child
	}
	return out, nil
}

func (t *Transformer) walkArray(arr models.JSONArray, dir models.Direction, depth int, path string) (models.JSONValue, error) {
	out := make(models.JSONArray, len(arr))
	for i, elem := range arr {
		child, err := t.walk(elem, dir, depth+1, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = child
	}
	return out, nil
}

// Projection converts a flat list of camelCase field names into a
// snake_case field-selection set for the persistence layer. One-way and
// non-recursive; built directly on the key converter.
func (t *Transformer) Projection(fields []string) map[string]bool {
	out := make(map[string]bool, len(fields))
	for _, f := range fields {
		out[convert.Key(t.table, f, models.CamelToSnake)] = true
	}
	return out
}
