// Package querier compiles an untrusted filter string into a backend-neutral
// condition chain, and emits that chain either as a parameterized SQL WHERE
// fragment or as a native predicate over an in-memory record. One grammar,
// one compiler, two emitters: both backends accept exactly the same filters.
//
// Compilation is stateless and purely functional; any number of filters may
// be compiled concurrently. The only shared input is the column registry,
// which is immutable after startup.
//
// A literal value spelled exactly "and" or "or" must be single-quoted.
// Unquoted, it is read as a connector once a clause has accumulated, and the
// dangling clause it leaves behind is rejected as malformed.
package querier

import (
	"strings"
	"time"

	"github.com/vendq/vendq/fault"
	"github.com/vendq/vendq/querier/ast"
	"github.com/vendq/vendq/querier/lexer"
	"github.com/vendq/vendq/querier/parser"
	"github.com/vendq/vendq/querier/schema"
)

// DefaultTimeout bounds one filter compilation. Scanning and matching are
// linear, so this is a backstop against pathological inputs, not a budget
// honest filters ever approach.
const DefaultTimeout = 100 * time.Millisecond

type Options struct {
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
}

// Compile turns a raw filter string into a condition chain validated
// against the given registry. An empty or blank filter compiles to an empty
// chain: no WHERE fragment, a match-everything predicate. On failure the
// chain is nil and the fault message is safe to show the caller.
func Compile(s schema.Schema, filter string, opts Options) (ast.Chain, error) {
	if strings.TrimSpace(filter) == "" {
		return nil, nil
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	deadline := time.Now().Add(timeout)

	tokens, err := lexer.New(filter).WithDeadline(deadline).Tokens()
	if err != nil {
		return nil, err
	}

	clauses := lexer.SplitClauses(tokens)
	chain := make(ast.Chain, 0, len(clauses))

	for _, cl := range clauses {
		if time.Now().After(deadline) {
			return nil, fault.New(fault.CompilationTimeoutCode, "Filter took too long to compile.")
		}

		cond, err := parser.ParseClause(s, cl.Text)
		if err != nil {
			return nil, err
		}

		chain = append(chain, ast.Link{Connector: cl.Connector, Cond: cond})
	}

	return chain, nil
}
