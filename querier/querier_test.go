package querier

import (
	"errors"
	"testing"
	"time"

	"github.com/vendq/vendq/fault"
	"github.com/vendq/vendq/querier/lexer"
)

func TestCompileBlankFilterIsEmptyChain(t *testing.T) {
	for _, filter := range []string{"", "   ", "\t\n"} {
		chain, err := Compile(vendorSchema(), filter, Options{})
		if err != nil {
			t.Fatalf("Compile(%q) returned error: %v", filter, err)
		}
		if len(chain) != 0 {
			t.Fatalf("Compile(%q) produced %d conditions", filter, len(chain))
		}
	}
}

func TestCompileConnectorSequence(t *testing.T) {
	chain, err := Compile(vendorSchema(),
		"vendor_status eq 'Active' or blocked eq false and employee_count gt 1", Options{})
	if err != nil {
		t.Fatal(err)
	}

	want := []lexer.Connector{lexer.ConnectorNone, lexer.ConnectorOr, lexer.ConnectorAnd}
	if len(chain) != len(want) {
		t.Fatalf("chain length = %d, want %d", len(chain), len(want))
	}
	for i, link := range chain {
		if link.Connector != want[i] {
			t.Fatalf("link %d connector = %v, want %v", i, link.Connector, want[i])
		}
	}
}

func TestCompileFailureProducesNoChain(t *testing.T) {
	chain, err := Compile(vendorSchema(), "vendor_status eq 'Active' and secret eq 1", Options{})
	if err == nil {
		t.Fatal("expected failure for unknown column")
	}
	if chain != nil {
		t.Fatalf("failed compile still produced a chain: %#v", chain)
	}
}

func TestCompileTrailingConnectorIsMalformed(t *testing.T) {
	_, err := Compile(vendorSchema(), "vendor_status eq 'Active' and", Options{})
	var f fault.Fault
	if !errors.As(err, &f) || f.Code() != fault.MalformedClauseCode {
		t.Fatalf("trailing connector produced %v, want malformed-clause fault", err)
	}
}

func TestCompileTimeout(t *testing.T) {
	_, err := Compile(vendorSchema(), "vendor_status eq 'Active'", Options{Timeout: time.Nanosecond})
	var f fault.Fault
	if !errors.As(err, &f) || f.Code() != fault.CompilationTimeoutCode {
		t.Fatalf("expected compilation-timeout fault, got %v", err)
	}
}

// Both emitters must accept everything the compiler admits: a filter that
// builds a WHERE fragment also builds a predicate, for every operator and
// type combination.
func TestEmitterParity(t *testing.T) {
	filters := []string{
		"company_name eq 'Acme'",
		"company_name gt 'A' and company_name le 'z'",
		"employee_count ne 0 or employee_count ge 100",
		"credit_limit lt 9999.99m",
		"last_payment_date ge datetime'2024-01-01' and last_payment_date ne null",
		"blocked gt false",
		"contains(company_name,'x') or startswith(vendor_status,'A') and endswith(company_name,'z')",
		"last_payment_date eq null or blocked eq true",
	}

	for _, filter := range filters {
		chain, err := Compile(vendorSchema(), filter, Options{})
		if err != nil {
			t.Fatalf("Compile(%q) returned error: %v", filter, err)
		}
		if _, _, err := BuildWhere(chain); err != nil {
			t.Fatalf("BuildWhere rejected %q: %v", filter, err)
		}
		if _, err := CompilePredicate(chain, vendorAccessors()); err != nil {
			t.Fatalf("CompilePredicate rejected %q: %v", filter, err)
		}
	}
}
