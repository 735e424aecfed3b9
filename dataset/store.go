package dataset

import (
	"sync"

	"github.com/vendq/vendq/entity"
	"github.com/vendq/vendq/querier"
	"github.com/vendq/vendq/querier/ast"
)

// Store holds the current payment-terms dataset. Replace swaps the whole
// slice under the lock, so readers always see either the old set or the
// new one, never a partial reload.
type Store struct {
	mu    sync.RWMutex
	terms []entity.PaymentTerm
}

func NewStore(terms []entity.PaymentTerm) *Store {
	return &Store{terms: terms}
}

func (s *Store) Replace(terms []entity.PaymentTerm) {
	s.mu.Lock()
	s.terms = terms
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.terms)
}

// Query compiles the chain into a predicate, filters the dataset, and
// returns one page plus the total match count. The page is a copy; callers
// never hold references into the store's slice.
func (s *Store) Query(chain ast.Chain, page, size int) ([]entity.PaymentTerm, int, error) {
	pred, err := querier.CompilePredicate(chain, entity.PaymentTermAccessors())
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []entity.PaymentTerm
	for _, term := range s.terms {
		if pred(term) {
			matched = append(matched, term)
		}
	}

	total := len(matched)
	start := (page - 1) * size
	if start >= total {
		return []entity.PaymentTerm{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}

	out := make([]entity.PaymentTerm, end-start)
	copy(out, matched[start:end])
	return out, total, nil
}
