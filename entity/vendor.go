package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendq/vendq/querier/schema"
)

// Vendor is one row of the vendors collection, backed by the relational
// store. ID is the internal identifier; it never leaves the service
// unencoded.
type Vendor struct {
	ID            uint32
	CompanyName   string
	Status        string
	CreditLimit   decimal.Decimal
	Balance       decimal.Decimal
	EmployeeCount int64
	LastPayment   *time.Time // nil when the vendor has never paid
	Blocked       bool
	CreatedAt     time.Time
}

// VendorSchema is the static filter whitelist for the vendors collection.
// Column names outside this set do not exist as far as callers are
// concerned, whatever the storage table holds.
func VendorSchema() schema.Schema {
	return schema.New(
		schema.Column{External: "vendor_id", Internal: "id", Type: schema.Identifier},
		schema.Column{External: "company_name", Internal: "company_name", Type: schema.String},
		schema.Column{External: "vendor_status", Internal: "vendor_status", Type: schema.String},
		schema.Column{External: "credit_limit", Internal: "credit_limit", Type: schema.Decimal},
		schema.Column{External: "balance", Internal: "balance", Type: schema.Decimal},
		schema.Column{External: "employee_count", Internal: "employee_count", Type: schema.Integer},
		schema.Column{External: "last_payment_date", Internal: "last_payment_date", Type: schema.Timestamp},
		schema.Column{External: "blocked", Internal: "blocked", Type: schema.Boolean},
		schema.Column{External: "created_at", Internal: "created_at", Type: schema.Timestamp},
	)
}
