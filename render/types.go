package render

import (
	"errors"
	"strings"
)

// ectoToDB implements the column/cast type-mapping table (spec.md §4.E
// "Type mapping"): id maps to integer, serial/bigserial pass through
// unchanged, binary_id maps to uuid, string maps to varchar, binary maps to
// bytea, utc_datetime/naive_datetime map to timestamp, time_usec maps to
// time, and anything else passes through verbatim. Array suffixes are
// handled by the caller (taggedToDB, columnTypeSQL) before reaching here.
func ectoToDB(tag string) string {
	switch tag {
	case "id":
		return "integer"
	case "serial", "bigserial":
		return tag
	case "binary_id":
		return "uuid"
	case "string":
		return "varchar"
	case "binary":
		return "bytea"
	case "utc_datetime", "naive_datetime":
		return "timestamp"
	case "time_usec":
		return "time"
	default:
		return tag
	}
}

// mapType resolves the SQL type used for map/{:map,_} columns, required to
// be configured (spec.md §6.2 "postgres_map_type") when maps are used.
func (c Config) mapType() (string, error) {
	if strings.TrimSpace(c.MapType) == "" {
		return "", errNoMapType
	}
	return c.MapType, nil
}

var errNoMapType = errors.New("render: postgres_map_type must be configured to use map columns")
