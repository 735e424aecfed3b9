package lexer

import (
	"reflect"
	"testing"
)

func splitInput(t *testing.T, input string) []Clause {
	t.Helper()
	tokens, err := New(input).Tokens()
	if err != nil {
		t.Fatal(err)
	}
	return SplitClauses(tokens)
}

func TestSplitClauses(t *testing.T) {
	tests := map[string][]Clause{
		"": nil,
		"vendor_status eq 'Active'": {
			{Text: "vendor_status eq 'Active'", Connector: ConnectorNone},
		},
		"a eq 1 and b eq 2": {
			{Text: "a eq 1", Connector: ConnectorNone},
			{Text: "b eq 2", Connector: ConnectorAnd},
		},
		"a eq 1 AND b eq 2 Or c eq 3": {
			{Text: "a eq 1", Connector: ConnectorNone},
			{Text: "b eq 2", Connector: ConnectorAnd},
			{Text: "c eq 3", Connector: ConnectorOr},
		},
		"contains(company_name, 'Ltd') or blocked eq false": {
			{Text: "contains(company_name, 'Ltd')", Connector: ConnectorNone},
			{Text: "blocked eq false", Connector: ConnectorOr},
		},
	}

	for input, want := range tests {
		got := splitInput(t, input)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("SplitClauses(%q) = %#v, want %#v", input, got, want)
		}
	}
}

func TestSplitClausesQuotedConnectorIsLiteral(t *testing.T) {
	got := splitInput(t, "company_name eq 'and'")
	want := []Clause{{Text: "company_name eq 'and'", Connector: ConnectorNone}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitClauses = %#v, want %#v", got, want)
	}
}

func TestSplitClausesLeadingConnectorAccumulates(t *testing.T) {
	// "and" with no accumulated tokens is not a connector; it starts the
	// clause instead and the parser will reject it.
	got := splitInput(t, "and eq 1")
	want := []Clause{{Text: "and eq 1", Connector: ConnectorNone}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitClauses = %#v, want %#v", got, want)
	}
}

func TestSplitClausesTrailingConnectorEmitsEmptyClause(t *testing.T) {
	got := splitInput(t, "a eq 1 and")
	want := []Clause{
		{Text: "a eq 1", Connector: ConnectorNone},
		{Text: "", Connector: ConnectorAnd},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitClauses = %#v, want %#v", got, want)
	}
}

func TestSplitClausesDoubleConnectorKeepsSecondAsToken(t *testing.T) {
	got := splitInput(t, "a eq 1 and and b eq 2")
	want := []Clause{
		{Text: "a eq 1", Connector: ConnectorNone},
		{Text: "and b eq 2", Connector: ConnectorAnd},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitClauses = %#v, want %#v", got, want)
	}
}
