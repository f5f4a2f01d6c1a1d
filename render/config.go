package render

import gojson "github.com/goccy/go-json"

// JSONEncoder is the minimal interface render needs to serialize a DDL map
// column's default value (spec.md §4.E "Defaults", §6.2 `json_library`).
// Implementations follow encoding/json's Marshal contract.
type JSONEncoder interface {
	Marshal(v any) ([]byte, error)
}

// defaultJSONEncoder backs Config.JSON when the caller doesn't provide one,
// using goccy/go-json as a drop-in, faster encoding/json replacement.
type defaultJSONEncoder struct{}

func (defaultJSONEncoder) Marshal(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

// Config holds the renderer's injected configuration (spec.md §6.2),
// threaded explicitly through Renderer rather than read from process-global
// state (Design Notes §9 "Configuration coupling").
type Config struct {
	// MapType is the SQL type name used for map/{:map,_} columns, e.g.
	// "jsonb". Required when any rendered column uses a map type; DDL
	// rendering returns a KindInvalidDefault error if it is needed and
	// unset.
	MapType string

	// JSON encodes map default values to a JSON string. Defaults to a
	// goccy/go-json-backed encoder when nil.
	JSON JSONEncoder
}

func (c Config) jsonEncoder() JSONEncoder {
	if c.JSON != nil {
		return c.JSON
	}
	return defaultJSONEncoder{}
}
