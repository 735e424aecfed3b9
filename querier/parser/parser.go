// Package parser compiles one clause at a time against the filter grammar.
// A clause is either `column operator literal` or
// `function(column, 'literal')`; anything else is rejected with a fault
// naming exactly what went wrong, so the transport layer can hand the
// message straight back to the caller.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendq/vendq/fault"
	"github.com/vendq/vendq/querier/ast"
	"github.com/vendq/vendq/querier/schema"
	"github.com/vendq/vendq/uid"
)

var cmpOps = map[string]ast.CmpOp{
	"eq": ast.OpEq,
	"ne": ast.OpNe,
	"gt": ast.OpGt,
	"ge": ast.OpGe,
	"lt": ast.OpLt,
	"le": ast.OpLe,
}

var matchKinds = map[string]ast.MatchKind{
	"contains":   ast.MatchContains,
	"startswith": ast.MatchStartsWith,
	"endswith":   ast.MatchEndsWith,
}

// functionRe matches the three string functions. The needle group is
// everything between the outer quotes, escaped quotes included; RE2 keeps
// matching linear in the clause length.
var functionRe = regexp.MustCompile(`^(?i)(contains|startswith|endswith)\(\s*([A-Za-z_][A-Za-z0-9_]*)\s*,\s*'(.*)'\s*\)$`)

// ParseClause compiles a single clause against the registry. The function
// form is tried first, then the comparison form.
func ParseClause(s schema.Schema, clause string) (ast.Condition, error) {
	clause = strings.TrimSpace(clause)

	if m := functionRe.FindStringSubmatch(clause); m != nil {
		return parseFunction(s, m[1], m[2], m[3])
	}

	if cond, ok, err := parseComparison(s, clause); ok {
		return cond, err
	}

	return nil, fault.Newf(fault.MalformedClauseCode,
		"Clause '%s' is not a valid filter expression. Expected 'column operator value' or 'function(column, 'value')'.", clause)
}

func parseFunction(s schema.Schema, name, column, rawNeedle string) (ast.Condition, error) {
	col, ok := s.Resolve(column)
	if !ok {
		return nil, unknownColumn(column)
	}
	if col.Type != schema.String {
		return nil, fault.Newf(fault.FunctionOnNonStringCode,
			"Function '%s' requires a string column, but '%s' is of type %s.",
			strings.ToLower(name), column, col.Type)
	}

	return ast.Match{
		Column: col,
		Kind:   matchKinds[strings.ToLower(name)],
		Needle: unescapeQuotes(rawNeedle),
	}, nil
}

// parseComparison reports ok=false when the clause does not even have the
// `column operator literal` shape, so the caller can produce the generic
// malformed-clause fault instead.
func parseComparison(s schema.Schema, clause string) (ast.Condition, bool, error) {
	parts := strings.SplitN(clause, " ", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil, false, nil
	}
	column, operator, literal := parts[0], parts[1], parts[2]

	col, ok := s.Resolve(column)
	if !ok {
		return nil, true, unknownColumn(column)
	}

	op, ok := cmpOps[strings.ToLower(operator)]
	if !ok {
		return nil, true, fault.Newf(fault.DisallowedOperatorCode,
			"Operator '%s' is not supported. Allowed operators: eq, ne, gt, ge, lt, le.", operator)
	}

	// `eq null` / `ne null` bypass coercion and compile to null checks.
	if strings.EqualFold(literal, "null") && (op == ast.OpEq || op == ast.OpNe) {
		return ast.NullCheck{Column: col, Negated: op == ast.OpNe}, true, nil
	}

	value, err := coerceLiteral(col, literal)
	if err != nil {
		return nil, true, err
	}

	return ast.Compare{Column: col, Op: op, Value: value}, true, nil
}

// coerceLiteral converts the raw literal into the typed value the column
// requires. Every failure names the column and the expected format.
func coerceLiteral(col schema.Column, literal string) (any, error) {
	switch col.Type {
	case schema.String:
		if len(literal) < 2 || literal[0] != '\'' || literal[len(literal)-1] != '\'' {
			return nil, coercionFault(col, literal, "a single-quoted string")
		}
		return unescapeQuotes(literal[1 : len(literal)-1]), nil

	case schema.Integer:
		n, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return nil, coercionFault(col, literal, "a base-10 integer")
		}
		return n, nil

	case schema.Decimal:
		d, err := decimal.NewFromString(stripDecimalSuffix(literal))
		if err != nil {
			return nil, coercionFault(col, literal, "a decimal number")
		}
		return d, nil

	case schema.Timestamp:
		t, err := parseTimestamp(unwrapTyped(literal, "datetime"))
		if err != nil {
			return nil, coercionFault(col, literal, "an ISO-8601 timestamp")
		}
		return t, nil

	case schema.Identifier:
		u, err := uuid.Parse(unwrapTyped(literal, "guid"))
		if err != nil {
			return nil, coercionFault(col, literal, "a 128-bit identifier")
		}
		// uid.Decode returns its own invalid-identifier fault, which is
		// surfaced as-is.
		return uid.Decode(u)

	case schema.Boolean:
		switch strings.ToLower(literal) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, coercionFault(col, literal, "either 'true' or 'false'")
	}

	return nil, fault.Newf(fault.UnknownCode, "Column '%s' has an unsupported type.", col.External)
}

// unwrapTyped strips an OData-style typed literal wrapper such as
// datetime'...' or guid'...'. Bare literals pass through untouched.
func unwrapTyped(literal, prefix string) string {
	if len(literal) < len(prefix)+2 {
		return literal
	}
	head, rest := literal[:len(prefix)], literal[len(prefix):]
	if strings.EqualFold(head, prefix) && rest[0] == '\'' && rest[len(rest)-1] == '\'' {
		return rest[1 : len(rest)-1]
	}
	return literal
}

// stripDecimalSuffix drops the optional trailing type-suffix letter
// (m, f or d) some clients append to decimal literals.
func stripDecimalSuffix(literal string) string {
	if literal == "" {
		return literal
	}
	switch literal[len(literal)-1] {
	case 'm', 'M', 'f', 'F', 'd', 'D':
		return literal[:len(literal)-1]
	}
	return literal
}

// timestampLayouts are tried in order; the first is the round-trip format.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(v string) (time.Time, error) {
	var t time.Time
	var err error
	for _, layout := range timestampLayouts {
		t, err = time.Parse(layout, v)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func unescapeQuotes(s string) string {
	return strings.ReplaceAll(s, "''", "'")
}

func unknownColumn(name string) error {
	return fault.Newf(fault.UnknownColumnCode, "Column '%s' does not exist or is not filterable.", name)
}

func coercionFault(col schema.Column, literal string, expected string) error {
	return fault.Newf(fault.TypeCoercionFailureCode,
		"Value '%s' is not valid for column '%s': expected %s.", literal, col.External, expected)
}
