package models

// JSONValue is a generic type to represent any JSON value.
// This can be a string, number, boolean, null, object, or array.
// It is an alias so that trees produced by encoding/json
// (map[string]interface{}, []interface{}) are usable directly.
type JSONValue = interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject = map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray = []JSONValue

// Direction selects which way object keys are converted.
type Direction int

const (
	// SnakeToCamel converts snake_case keys to camelCase.
	SnakeToCamel Direction = iota
	// CamelToSnake converts camelCase keys to snake_case.
	CamelToSnake
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case SnakeToCamel:
		return "snake_to_camel"
	case CamelToSnake:
		return "camel_to_snake"
	default:
		return "unknown"
	}
}

// Opposite returns the inverse direction, useful for round-trip checks.
func (d Direction) Opposite() Direction {
	if d == SnakeToCamel {
		return CamelToSnake
	}
	return SnakeToCamel
}

// ParseDirection maps the CLI/config spellings onto a Direction.
// Accepted values: "camel", "snake_to_camel", "snake", "camel_to_snake".
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "camel", "snake_to_camel", "toCamel":
		return SnakeToCamel, true
	case "snake", "camel_to_snake", "toSnake":
		return CamelToSnake, true
	default:
		return SnakeToCamel, false
	}
}
