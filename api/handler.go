package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendq/vendq/entity"
	"github.com/vendq/vendq/fault"
	"github.com/vendq/vendq/querier"
	"github.com/vendq/vendq/uid"
)

// listParams carries the three supported query parameters. Page and size
// are clamped, never rejected, so any numeric value yields a valid page.
type listParams struct {
	filter string
	page   int
	size   int
}

func (s *server) readListParams(r *http.Request) (listParams, error) {
	q := r.URL.Query()

	params := listParams{
		filter: q.Get("filter"),
		page:   1,
		size:   50,
	}

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return params, fault.New(fault.BadInputCode, "").WithMetadata(fault.FieldErrorsMetadata{
				"page": []string{"Must be an integer."},
			})
		}
		params.page = n
	}

	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return params, fault.New(fault.BadInputCode, "").WithMetadata(fault.FieldErrorsMetadata{
				"size": []string{"Must be an integer."},
			})
		}
		params.size = n
	}

	if params.page < 1 {
		params.page = 1
	}
	if params.size < 1 || params.size > 200 {
		params.size = 50
	}

	return params, nil
}

// vendorResource is the external shape of a vendor. The internal uint32 id
// travels as its identifier-encoded UUID.
type vendorResource struct {
	ID            uuid.UUID       `json:"vendor_id"`
	CompanyName   string          `json:"company_name"`
	Status        string          `json:"vendor_status"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	Balance       decimal.Decimal `json:"balance"`
	EmployeeCount int64           `json:"employee_count"`
	LastPayment   *time.Time      `json:"last_payment_date"`
	Blocked       bool            `json:"blocked"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (s *server) listVendorsHandler(w http.ResponseWriter, r *http.Request) {
	params, err := s.readListParams(r)
	if s.returnOnError(w, r, err) {
		return
	}

	chain, err := querier.Compile(entity.VendorSchema(), params.filter, querier.Options{Timeout: s.cfg.FilterTimeout})
	if s.returnOnError(w, r, err) {
		return
	}

	vendors, err := s.vendors.Query(r.Context(), chain, params.page, params.size)
	if s.returnOnError(w, r, err) {
		return
	}

	total, err := s.vendors.Count(r.Context(), chain)
	if s.returnOnError(w, r, err) {
		return
	}

	resources := make([]vendorResource, len(vendors))
	for i, v := range vendors {
		resources[i] = vendorResource{
			ID:            uid.Encode(v.ID),
			CompanyName:   v.CompanyName,
			Status:        v.Status,
			CreditLimit:   v.CreditLimit,
			Balance:       v.Balance,
			EmployeeCount: v.EmployeeCount,
			LastPayment:   v.LastPayment,
			Blocked:       v.Blocked,
			CreatedAt:     v.CreatedAt,
		}
	}

	s.writeJson( //nolint:errcheck
		w,
		http.StatusOK,
		apiResponse{
			Success:  true,
			Data:     resources,
			Metadata: paginationMetadata(params, int(total)),
		},
		nil,
	)
}

type paymentTermResource struct {
	ID              uuid.UUID       `json:"term_id"`
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	DueDays         int64           `json:"due_days"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Active          bool            `json:"active"`
	ModifiedAt      *time.Time      `json:"modified_at"`
}

func (s *server) listPaymentTermsHandler(w http.ResponseWriter, r *http.Request) {
	params, err := s.readListParams(r)
	if s.returnOnError(w, r, err) {
		return
	}

	chain, err := querier.Compile(entity.PaymentTermSchema(), params.filter, querier.Options{Timeout: s.cfg.FilterTimeout})
	if s.returnOnError(w, r, err) {
		return
	}

	terms, total, err := s.terms.Query(chain, params.page, params.size)
	if s.returnOnError(w, r, err) {
		return
	}

	resources := make([]paymentTermResource, len(terms))
	for i, t := range terms {
		resources[i] = paymentTermResource{
			ID:              uid.Encode(t.ID),
			Code:            t.Code,
			Description:     t.Description,
			DueDays:         t.DueDays,
			DiscountPercent: t.DiscountPercent,
			Active:          t.Active,
			ModifiedAt:      t.ModifiedAt,
		}
	}

	s.writeJson( //nolint:errcheck
		w,
		http.StatusOK,
		apiResponse{
			Success:  true,
			Data:     resources,
			Metadata: paginationMetadata(params, total),
		},
		nil,
	)
}

func paginationMetadata(params listParams, total int) map[string]any {
	return map[string]any{"pagination": map[string]any{
		"page":  params.page,
		"size":  params.size,
		"total": total,
	}}
}
