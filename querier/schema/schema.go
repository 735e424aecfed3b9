// Package schema holds the per-collection column registries the filter
// compiler validates against. A registry is built once at startup and is
// read-only afterwards, so concurrent lookups need no locking.
package schema

import "strings"

// SemanticType is the logical type a column is declared to hold. It drives
// literal coercion and decides which functions are legal for the column.
type SemanticType uint8

const (
	String SemanticType = iota
	Integer
	Decimal
	Timestamp
	Identifier
	Boolean
)

func (t SemanticType) String() string {
	return [...]string{"string", "integer", "decimal", "timestamp", "identifier", "boolean"}[t]
}

// Column maps an external (filterable) name onto the storage column it
// resolves to.
type Column struct {
	// External is the name callers use in filter strings.
	External string
	// Internal is the storage column name emitted into SQL. Never taken
	// from user input.
	Internal string
	Type     SemanticType
}

// Schema is an immutable column whitelist for one collection.
type Schema struct {
	byName map[string]Column
}

func New(cols ...Column) Schema {
	m := make(map[string]Column, len(cols))
	for _, c := range cols {
		m[strings.ToLower(c.External)] = c
	}
	return Schema{byName: m}
}

// Resolve looks up a column by its external name, case-insensitively.
func (s Schema) Resolve(name string) (Column, bool) {
	c, ok := s.byName[strings.ToLower(name)]
	return c, ok
}
