// Package ast defines the backend-neutral form a compiled filter takes.
// Both backends consume the same Chain: the SQL builder turns it into a
// parameterized WHERE fragment, the predicate builder into a native match
// function. Conditions never retain the raw literal text — only the value
// coerced to the column's semantic type.
package ast

import (
	"github.com/vendq/vendq/querier/lexer"
	"github.com/vendq/vendq/querier/schema"
)

// Condition is the interface all compiled clause forms implement. It uses
// a private marker method so only types in this package can be conditions,
// giving a controlled sum type.
type Condition interface {
	condNode()
}

// CmpOp is the comparison operator of a compiled condition, already mapped
// from the filter keyword (eq, ne, gt, ge, lt, le) to its symbol.
type CmpOp string

const (
	OpEq  CmpOp = "="
	OpNe  CmpOp = "!="
	OpGt  CmpOp = ">"
	OpGe  CmpOp = ">="
	OpLt  CmpOp = "<"
	OpLe  CmpOp = "<="
)

// Compare is a `column op literal` clause. Value holds the coerced literal;
// its dynamic type follows the column's semantic type: string, int64,
// decimal.Decimal, time.Time, uint32 (decoded identifier), or bool.
type Compare struct {
	Column schema.Column
	Op     CmpOp
	Value  any
}

func (Compare) condNode() {}

// MatchKind selects which side of the needle gets a wildcard.
type MatchKind uint8

const (
	MatchContains MatchKind = iota
	MatchStartsWith
	MatchEndsWith
)

func (k MatchKind) String() string {
	return [...]string{"contains", "startswith", "endswith"}[k]
}

// Match is a string-function clause. Needle is the unwrapped, unescaped
// literal; each backend derives its own matching form from it (the SQL
// builder escapes it into a LIKE pattern, the predicate builder matches
// it directly).
type Match struct {
	Column schema.Column
	Kind   MatchKind
	Needle string
}

func (Match) condNode() {}

// NullCheck is an `eq null` / `ne null` clause.
type NullCheck struct {
	Column  schema.Column
	Negated bool
}

func (NullCheck) condNode() {}

// Link is one condition plus the connector that joins it to everything
// compiled before it. The first link carries lexer.ConnectorNone.
type Link struct {
	Connector lexer.Connector
	Cond      Condition
}

// Chain is the compiled filter: conditions in source order, evaluated
// strictly left to right with no precedence. `a or b and c` folds as
// `(a or b) and c`.
type Chain []Link
