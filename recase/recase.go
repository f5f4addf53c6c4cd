// Package recase converts the keys of JSON-shaped value trees between
// the snake_case used by the persistence layer and the camelCase used
// by API clients. Known field names go through an explicit override
// table; everything else falls back to an algorithmic conversion.
//
// A Mapper is immutable after construction and safe for concurrent use.
// The input tree is never mutated; every call returns a fresh tree.
package recase

import (
	"github.com/recasehq/recase/internal/errors"
	"github.com/recasehq/recase/internal/mapping"
	"github.com/recasehq/recase/internal/models"
	"github.com/recasehq/recase/internal/transform"
)

// Pair is one snake_case/camelCase correspondence for the override table.
type Pair = mapping.Pair

// Sentinel errors surfaced by conversions, matchable with errors.Is.
var (
	ErrNotBijective     = errors.ErrNotBijective
	ErrKeyCollision     = errors.ErrKeyCollision
	ErrMaxDepthExceeded = errors.ErrMaxDepthExceeded
)

type options struct {
	useDefaults bool
	extraPairs  []Pair
	maxDepth    int
	lenient     bool
}

// Option customizes a Mapper at construction time.
type Option func(*options)

// WithPairs appends extra override pairs to the table.
func WithPairs(pairs ...Pair) Option {
	return func(o *options) { o.extraPairs = append(o.extraPairs, pairs...) }
}

// WithoutDefaults drops the built-in vocabulary so the table contains
// only the pairs given via WithPairs.
func WithoutDefaults() Option {
	return func(o *options) { o.useDefaults = false }
}

// WithMaxDepth sets the recursion limit for nested input.
func WithMaxDepth(limit int) Option {
	return func(o *options) { o.maxDepth = limit }
}

// WithLenient makes post-conversion key collisions overwrite
// deterministically (later source key in sorted order wins) instead of
// returning an error.
func WithLenient() Option {
	return func(o *options) { o.lenient = true }
}

// Mapper applies bidirectional key-casing conversion. Construct one per
// vocabulary; there is no process-wide mutable state.
type Mapper struct {
	table *mapping.Table
	tr    *transform.Transformer
}

// New builds a Mapper. It fails if the combined pair list is not a
// bijection (duplicate snake or camel entries).
func New(opts ...Option) (*Mapper, error) {
	o := options{useDefaults: true, maxDepth: transform.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	var pairs []Pair
	if o.useDefaults {
		pairs = append(pairs, mapping.DefaultPairs()...)
	}
	pairs = append(pairs, o.extraPairs...)

	table, err := mapping.New(pairs)
	if err != nil {
		return nil, err
	}

	tr := transform.New(table).WithMaxDepth(o.maxDepth).WithLenient(o.lenient)
	return &Mapper{table: table, tr: tr}, nil
}

// NewFromTable builds a Mapper over an already-constructed table, with
// the given transformer settings. Used by the CLI once config is loaded.
func NewFromTable(table *mapping.Table, maxDepth int, lenient bool) *Mapper {
	return &Mapper{
		table: table,
		tr:    transform.New(table).WithMaxDepth(maxDepth).WithLenient(lenient),
	}
}

// ToCamelCase converts every snake_case key in v to camelCase.
func (m *Mapper) ToCamelCase(v models.JSONValue) (models.JSONValue, error) {
	return m.tr.Transform(v, models.SnakeToCamel)
}

// ToSnakeCase converts every camelCase key in v to snake_case.
func (m *Mapper) ToSnakeCase(v models.JSONValue) (models.JSONValue, error) {
	return m.tr.Transform(v, models.CamelToSnake)
}

// DBQuery prepares camelCase client input for a snake_case persistence
// query. Alias of ToSnakeCase, named for the call site.
func (m *Mapper) DBQuery(v models.JSONValue) (models.JSONValue, error) {
	return m.ToSnakeCase(v)
}

// APIResponse prepares snake_case persisted data for a camelCase API
// response. Alias of ToCamelCase, named for the call site.
func (m *Mapper) APIResponse(v models.JSONValue) (models.JSONValue, error) {
	return m.ToCamelCase(v)
}

// Projection turns a flat list of camelCase field names into a
// snake_case field-selection set ({"first_name": true, ...}) for
// building projections against the persistence layer.
func (m *Mapper) Projection(fields []string) map[string]bool {
	return m.tr.Projection(fields)
}

// defaultMapper backs the package-level convenience functions. The
// built-in vocabulary is a valid bijection, so construction cannot fail.
var defaultMapper = func() *Mapper {
	m, err := New()
	if err != nil {
		panic(err)
	}
	return m
}()

// ToCamelCase converts v using the default vocabulary.
func ToCamelCase(v models.JSONValue) (models.JSONValue, error) {
	return defaultMapper.ToCamelCase(v)
}

// ToSnakeCase converts v using the default vocabulary.
func ToSnakeCase(v models.JSONValue) (models.JSONValue, error) {
	return defaultMapper.ToSnakeCase(v)
}

// DBQuery converts v using the default vocabulary.
func DBQuery(v models.JSONValue) (models.JSONValue, error) {
	return defaultMapper.DBQuery(v)
}

// APIResponse converts v using the default vocabulary.
func APIResponse(v models.JSONValue) (models.JSONValue, error) {
	return defaultMapper.APIResponse(v)
}

// Projection converts fields using the default vocabulary.
func Projection(fields []string) map[string]bool {
	return defaultMapper.Projection(fields)
}
