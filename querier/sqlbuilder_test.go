package querier

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vendq/vendq/querier/schema"
)

func vendorSchema() schema.Schema {
	return schema.New(
		schema.Column{External: "company_name", Internal: "company_name", Type: schema.String},
		schema.Column{External: "vendor_status", Internal: "vendor_status", Type: schema.String},
		schema.Column{External: "credit_limit", Internal: "credit_limit", Type: schema.Decimal},
		schema.Column{External: "employee_count", Internal: "employee_count", Type: schema.Integer},
		schema.Column{External: "last_payment_date", Internal: "last_payment_date", Type: schema.Timestamp},
		schema.Column{External: "blocked", Internal: "blocked", Type: schema.Boolean},
	)
}

func compileWhere(t *testing.T, filter string) (string, []any) {
	t.Helper()
	chain, err := Compile(vendorSchema(), filter, Options{})
	if err != nil {
		t.Fatalf("Compile(%q) returned error: %v", filter, err)
	}
	where, args, err := BuildWhere(chain)
	if err != nil {
		t.Fatalf("BuildWhere(%q) returned error: %v", filter, err)
	}
	return where, args
}

func TestBuildWhereEmptyFilter(t *testing.T) {
	where, args := compileWhere(t, "")
	if where != "" || len(args) != 0 {
		t.Fatalf("empty filter produced %q with %d args", where, len(args))
	}
}

func TestBuildWhereSingleComparison(t *testing.T) {
	where, args := compileWhere(t, "vendor_status eq 'Active'")
	if where != "vendor_status = ?" {
		t.Fatalf("where = %q", where)
	}
	if !reflect.DeepEqual(args, []any{"Active"}) {
		t.Fatalf("args = %#v", args)
	}
}

func TestBuildWhereConnectorsInOriginalOrder(t *testing.T) {
	where, args := compileWhere(t,
		"vendor_status eq 'Active' or vendor_status eq 'Pending' and employee_count gt 10")
	want := "vendor_status = ? OR vendor_status = ? AND employee_count > ?"
	if where != want {
		t.Fatalf("where = %q, want %q", where, want)
	}
	if len(args) != 3 {
		t.Fatalf("args = %#v", args)
	}
	if args[0] != "Active" || args[1] != "Pending" || args[2] != int64(10) {
		t.Fatalf("args out of emission order: %#v", args)
	}
}

func TestBuildWhereEachConditionGetsFreshPlaceholder(t *testing.T) {
	where, args := compileWhere(t, "employee_count gt 1 and employee_count lt 9 and employee_count ne 5")
	if got := strings.Count(where, "?"); got != 3 {
		t.Fatalf("expected 3 placeholders, got %d in %q", got, where)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %#v", args)
	}
}

func TestBuildWhereNullChecksBindNothing(t *testing.T) {
	where, args := compileWhere(t, "last_payment_date eq null")
	if where != "last_payment_date IS NULL" {
		t.Fatalf("where = %q", where)
	}
	if len(args) != 0 {
		t.Fatalf("IS NULL bound args: %#v", args)
	}

	where, args = compileWhere(t, "last_payment_date ne null and blocked eq false")
	if where != "last_payment_date IS NOT NULL AND blocked = ?" {
		t.Fatalf("where = %q", where)
	}
	if !reflect.DeepEqual(args, []any{false}) {
		t.Fatalf("args = %#v", args)
	}
}

func TestBuildWhereLikeEscaping(t *testing.T) {
	where, args := compileWhere(t, "contains(company_name,'50%_off')")
	if where != `company_name LIKE ? ESCAPE '\\'` {
		t.Fatalf("where = %q", where)
	}
	if !reflect.DeepEqual(args, []any{`%50\%\_off%`}) {
		t.Fatalf("args = %#v", args)
	}
}

func TestBuildWhereLikeVariants(t *testing.T) {
	tests := map[string]string{
		"contains(company_name,'Acme')":   "%Acme%",
		"startswith(company_name,'Acme')": "Acme%",
		"endswith(company_name,'Acme')":   "%Acme",
		`startswith(company_name,'C:\')`:  `C:\\%`,
	}
	for filter, wantPattern := range tests {
		_, args := compileWhere(t, filter)
		if !reflect.DeepEqual(args, []any{wantPattern}) {
			t.Fatalf("filter %q bound %#v, want pattern %q", filter, args, wantPattern)
		}
	}
}

func TestBuildWhereInjectionImmunity(t *testing.T) {
	hostile := []string{
		"company_name eq '''; DROP TABLE vendors; --'",
		"company_name eq 'x'' OR ''1''=''1'",
		"contains(company_name,''';--')",
	}
	for _, filter := range hostile {
		where, args := compileWhere(t, filter)
		for _, frag := range []string{"DROP", ";", "--", "'1'"} {
			if strings.Contains(where, frag) {
				t.Fatalf("filter %q leaked %q into WHERE text %q", filter, frag, where)
			}
		}
		if len(args) != 1 {
			t.Fatalf("filter %q bound %d args", filter, len(args))
		}
	}
}
