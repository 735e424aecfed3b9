package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendq/vendq/querier"
	"github.com/vendq/vendq/querier/schema"
)

// PaymentTerm is one record of the in-memory payment-terms collection,
// loaded from the dataset file.
type PaymentTerm struct {
	ID              uint32
	Code            string
	Description     string
	DueDays         int64
	DiscountPercent decimal.Decimal
	Active          bool
	ModifiedAt      *time.Time // nil when the term was never edited
}

// PaymentTermSchema is the static filter whitelist for the payment-terms
// collection.
func PaymentTermSchema() schema.Schema {
	return schema.New(
		schema.Column{External: "term_id", Internal: "id", Type: schema.Identifier},
		schema.Column{External: "code", Internal: "code", Type: schema.String},
		schema.Column{External: "description", Internal: "description", Type: schema.String},
		schema.Column{External: "due_days", Internal: "due_days", Type: schema.Integer},
		schema.Column{External: "discount_percent", Internal: "discount_percent", Type: schema.Decimal},
		schema.Column{External: "active", Internal: "active", Type: schema.Boolean},
		schema.Column{External: "modified_at", Internal: "modified_at", Type: schema.Timestamp},
	)
}

// PaymentTermAccessors binds every whitelisted payment-term column to its
// field, typed per the schema. The predicate emitter resolves against this
// table once per compile.
func PaymentTermAccessors() map[string]querier.Accessor[PaymentTerm] {
	return map[string]querier.Accessor[PaymentTerm]{
		"id": {
			Type: schema.Identifier,
			ID:   func(t PaymentTerm) (uint32, bool) { return t.ID, true },
		},
		"code": {
			Type:   schema.String,
			String: func(t PaymentTerm) (string, bool) { return t.Code, true },
		},
		"description": {
			Type:   schema.String,
			String: func(t PaymentTerm) (string, bool) { return t.Description, true },
		},
		"due_days": {
			Type: schema.Integer,
			Int:  func(t PaymentTerm) (int64, bool) { return t.DueDays, true },
		},
		"discount_percent": {
			Type:    schema.Decimal,
			Decimal: func(t PaymentTerm) (decimal.Decimal, bool) { return t.DiscountPercent, true },
		},
		"active": {
			Type: schema.Boolean,
			Bool: func(t PaymentTerm) (bool, bool) { return t.Active, true },
		},
		"modified_at": {
			Type: schema.Timestamp,
			Time: func(t PaymentTerm) (time.Time, bool) {
				if t.ModifiedAt == nil {
					return time.Time{}, false
				}
				return *t.ModifiedAt, true
			},
		},
	}
}
