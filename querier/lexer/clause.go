package lexer

import "strings"

// Connector is the boolean keyword joining two clauses.
type Connector uint8

const (
	ConnectorNone Connector = iota
	ConnectorAnd
	ConnectorOr
)

func (c Connector) String() string {
	return [...]string{"", "AND", "OR"}[c]
}

// Clause is one comparison or function-call unit, together with the
// connector that preceded it. The first clause carries ConnectorNone.
type Clause struct {
	Text      string
	Connector Connector
}

// SplitClauses groups tokens into clauses, splitting on top-level and/or
// keywords (case-insensitive). A bare and/or only counts as a connector
// once the current clause has accumulated at least one token, so a literal
// value spelled "and" must be quoted to survive. Clauses are joined back
// with single spaces; there is no precedence and no grouping.
func SplitClauses(tokens []string) []Clause {
	var clauses []Clause
	var current []string
	pending := ConnectorNone
	seenAny := false

	emit := func(next Connector) {
		clauses = append(clauses, Clause{Text: strings.Join(current, " "), Connector: pending})
		current = nil
		pending = next
		seenAny = true
	}

	for _, tok := range tokens {
		if len(current) > 0 {
			switch strings.ToLower(tok) {
			case "and":
				emit(ConnectorAnd)
				continue
			case "or":
				emit(ConnectorOr)
				continue
			}
		}
		current = append(current, tok)
	}

	if len(current) > 0 || (seenAny && pending != ConnectorNone) {
		// A trailing connector with nothing after it still emits an
		// (empty) clause, which the parser rejects as malformed.
		emit(ConnectorNone)
	}

	return clauses
}
