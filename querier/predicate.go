package querier

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendq/vendq/querier/ast"
	"github.com/vendq/vendq/querier/lexer"
	"github.com/vendq/vendq/querier/schema"
)

// Accessor reads one column from an in-memory record. Exactly the getter
// matching the declared semantic type must be set; the others stay nil.
// The boolean return reports presence — false means the column is null for
// that record. Dispatch is resolved once at compile time, keyed by column
// identity and semantic type; evaluation never reflects.
type Accessor[R any] struct {
	Type    schema.SemanticType
	String  func(R) (string, bool)
	Int     func(R) (int64, bool)
	Decimal func(R) (decimal.Decimal, bool)
	Time    func(R) (time.Time, bool)
	Bool    func(R) (bool, bool)
	ID      func(R) (uint32, bool)
}

// CompilePredicate emits the chain as a single predicate over R, folding
// conditions strictly left to right with the captured connector sequence —
// `a or b and c` evaluates as `(a or b) and c`. The emitter is total over
// the grammar: every condition the compiler admits is evaluable here, so a
// filter accepted for the relational backend is accepted for this one too.
// A column without an accessor is a wiring bug and fails compilation.
func CompilePredicate[R any](chain ast.Chain, fields map[string]Accessor[R]) (func(R) bool, error) {
	if len(chain) == 0 {
		return func(R) bool { return true }, nil
	}

	pred, err := compileLeaf(chain[0].Cond, fields)
	if err != nil {
		return nil, err
	}

	for i, link := range chain[1:] {
		next, err := compileLeaf(link.Cond, fields)
		if err != nil {
			return nil, err
		}

		prev := pred
		switch link.Connector {
		case lexer.ConnectorAnd:
			pred = func(r R) bool { return prev(r) && next(r) }
		case lexer.ConnectorOr:
			pred = func(r R) bool { return prev(r) || next(r) }
		default:
			return nil, fmt.Errorf("condition %d has no connector", i+1)
		}
	}

	return pred, nil
}

func compileLeaf[R any](cond ast.Condition, fields map[string]Accessor[R]) (func(R) bool, error) {
	switch c := cond.(type) {
	case ast.Compare:
		return compileCompare(c, fields)
	case ast.Match:
		return compileMatch(c, fields)
	case ast.NullCheck:
		acc, err := lookupAccessor(c.Column, fields)
		if err != nil {
			return nil, err
		}
		present := presenceFn(acc)
		negated := c.Negated
		return func(r R) bool {
			_, ok := present(r)
			return ok == negated
		}, nil
	}
	return nil, fmt.Errorf("unknown condition type %T", cond)
}

func compileCompare[R any](c ast.Compare, fields map[string]Accessor[R]) (func(R) bool, error) {
	acc, err := lookupAccessor(c.Column, fields)
	if err != nil {
		return nil, err
	}
	op := c.Op

	// Comparisons against a null field are false for every operator,
	// matching SQL three-valued logic collapsed to a boolean.
	switch c.Column.Type {
	case schema.String:
		want, ok := c.Value.(string)
		get := acc.String
		if !ok || get == nil {
			return nil, accessorMismatch(c.Column)
		}
		return func(r R) bool {
			v, present := get(r)
			return present && ordMatches(strings.Compare(v, want), op)
		}, nil

	case schema.Integer:
		want, ok := c.Value.(int64)
		get := acc.Int
		if !ok || get == nil {
			return nil, accessorMismatch(c.Column)
		}
		return func(r R) bool {
			v, present := get(r)
			return present && ordMatches(compareOrdered(v, want), op)
		}, nil

	case schema.Decimal:
		want, ok := c.Value.(decimal.Decimal)
		get := acc.Decimal
		if !ok || get == nil {
			return nil, accessorMismatch(c.Column)
		}
		return func(r R) bool {
			v, present := get(r)
			return present && ordMatches(v.Cmp(want), op)
		}, nil

	case schema.Timestamp:
		want, ok := c.Value.(time.Time)
		get := acc.Time
		if !ok || get == nil {
			return nil, accessorMismatch(c.Column)
		}
		return func(r R) bool {
			v, present := get(r)
			return present && ordMatches(v.Compare(want), op)
		}, nil

	case schema.Identifier:
		want, ok := c.Value.(uint32)
		get := acc.ID
		if !ok || get == nil {
			return nil, accessorMismatch(c.Column)
		}
		return func(r R) bool {
			v, present := get(r)
			return present && ordMatches(compareOrdered(v, want), op)
		}, nil

	case schema.Boolean:
		want, ok := c.Value.(bool)
		get := acc.Bool
		if !ok || get == nil {
			return nil, accessorMismatch(c.Column)
		}
		wantInt := boolOrd(want)
		return func(r R) bool {
			v, present := get(r)
			return present && ordMatches(compareOrdered(boolOrd(v), wantInt), op)
		}, nil
	}

	return nil, accessorMismatch(c.Column)
}

func compileMatch[R any](c ast.Match, fields map[string]Accessor[R]) (func(R) bool, error) {
	acc, err := lookupAccessor(c.Column, fields)
	if err != nil {
		return nil, err
	}
	get := acc.String
	if get == nil {
		return nil, accessorMismatch(c.Column)
	}

	needle := c.Needle
	var match func(string) bool
	switch c.Kind {
	case ast.MatchStartsWith:
		match = func(s string) bool { return strings.HasPrefix(s, needle) }
	case ast.MatchEndsWith:
		match = func(s string) bool { return strings.HasSuffix(s, needle) }
	default:
		match = func(s string) bool { return strings.Contains(s, needle) }
	}

	return func(r R) bool {
		v, present := get(r)
		return present && match(v)
	}, nil
}

func lookupAccessor[R any](col schema.Column, fields map[string]Accessor[R]) (Accessor[R], error) {
	acc, ok := fields[col.Internal]
	if !ok {
		return Accessor[R]{}, fmt.Errorf("column %q is not backed by an accessor", col.Internal)
	}
	if acc.Type != col.Type {
		return Accessor[R]{}, accessorMismatch(col)
	}
	return acc, nil
}

func accessorMismatch(col schema.Column) error {
	return fmt.Errorf("column %q accessor does not match declared type %s", col.Internal, col.Type)
}

// presenceFn reduces any accessor to its presence bit, for null checks.
func presenceFn[R any](acc Accessor[R]) func(R) (struct{}, bool) {
	switch {
	case acc.String != nil:
		return func(r R) (struct{}, bool) { _, ok := acc.String(r); return struct{}{}, ok }
	case acc.Int != nil:
		return func(r R) (struct{}, bool) { _, ok := acc.Int(r); return struct{}{}, ok }
	case acc.Decimal != nil:
		return func(r R) (struct{}, bool) { _, ok := acc.Decimal(r); return struct{}{}, ok }
	case acc.Time != nil:
		return func(r R) (struct{}, bool) { _, ok := acc.Time(r); return struct{}{}, ok }
	case acc.Bool != nil:
		return func(r R) (struct{}, bool) { _, ok := acc.Bool(r); return struct{}{}, ok }
	default:
		return func(r R) (struct{}, bool) { _, ok := acc.ID(r); return struct{}{}, ok }
	}
}

func ordMatches(cmp int, op ast.CmpOp) bool {
	switch op {
	case ast.OpEq:
		return cmp == 0
	case ast.OpNe:
		return cmp != 0
	case ast.OpGt:
		return cmp > 0
	case ast.OpGe:
		return cmp >= 0
	case ast.OpLt:
		return cmp < 0
	default:
		return cmp <= 0
	}
}

func compareOrdered[T int64 | uint32 | int](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// boolOrd orders false before true, matching the relational backend.
func boolOrd(b bool) int {
	if b {
		return 1
	}
	return 0
}
