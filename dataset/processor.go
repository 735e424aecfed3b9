// Package dataset serves the payment-terms collection from memory. Records
// come from a JSON-lines file on disk, normalized line by line through a
// configurable processor, and the whole set is swapped atomically whenever
// the file changes. Queries filter with a compiled native predicate.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendq/vendq/entity"
)

// Processor normalizes one raw dataset line into a payment term.
type Processor interface {
	Name() string
	Process(line []byte) (entity.PaymentTerm, error)
}

type JSONProcessorConfig struct {
	Name string `yaml:"-"`
}

// JSONProcessor decodes canonical JSON-lines records.
type JSONProcessor struct {
	cfg JSONProcessorConfig
}

func NewJSONProcessor(cfg JSONProcessorConfig) (*JSONProcessor, error) {
	return &JSONProcessor{cfg: cfg}, nil
}

func (p *JSONProcessor) Name() string {
	return p.cfg.Name
}

// paymentTermWire is the on-disk record shape. ModifiedAt is RFC3339 or
// absent; DiscountPercent accepts JSON numbers and numeric strings.
type paymentTermWire struct {
	ID              uint32          `json:"id"`
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	DueDays         int64           `json:"due_days"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Active          bool            `json:"active"`
	ModifiedAt      *time.Time      `json:"modified_at"`
}

func (p *JSONProcessor) Process(line []byte) (entity.PaymentTerm, error) {
	return decodeWire(line)
}

func decodeWire(line []byte) (entity.PaymentTerm, error) {
	var w paymentTermWire
	if err := json.Unmarshal(line, &w); err != nil {
		return entity.PaymentTerm{}, fmt.Errorf("cannot parse record: %w", err)
	}

	if w.Code == "" {
		return entity.PaymentTerm{}, errors.New("record has no code")
	}

	return entity.PaymentTerm{
		ID:              w.ID,
		Code:            w.Code,
		Description:     w.Description,
		DueDays:         w.DueDays,
		DiscountPercent: w.DiscountPercent,
		Active:          w.Active,
		ModifiedAt:      w.ModifiedAt,
	}, nil
}
