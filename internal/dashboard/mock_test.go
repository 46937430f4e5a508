package dashboard_test

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/couchcryptid/brewery-dashboard/internal/domain"
)

// --- mocks ---

// pagedSource serves fixed pages by 1-based index. Page 0 (single-page mode)
// returns the first page. Errors are consumed in order before any page is
// served for that call.
type pagedSource struct {
	mu       sync.Mutex
	pages    [][]domain.Brewery
	errs     []error
	endless  bool
	calls    []int
	perPages []int
	details  map[string]domain.Brewery
}

func (m *pagedSource) FetchPage(ctx context.Context, page, perPage int) ([]domain.Brewery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, page)
	m.perPages = append(m.perPages, perPage)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return nil, err
	}
	if m.endless {
		return breweries(fmt.Sprintf("p%d-", page), perPage), nil
	}

	idx := page - 1
	if page == 0 {
		idx = 0
	}
	if idx < 0 || idx >= len(m.pages) {
		return []domain.Brewery{}, nil
	}
	return m.pages[idx], nil
}

func (m *pagedSource) FetchByID(_ context.Context, id string) (domain.Brewery, error) {
	b, ok := m.details[id]
	if !ok {
		return domain.Brewery{}, domain.ErrNotFound
	}
	return b, nil
}

func (m *pagedSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func breweries(prefix string, n int) []domain.Brewery {
	out := make([]domain.Brewery, n)
	for i := range out {
		out[i] = domain.Brewery{
			ID:            prefix + strconv.Itoa(i),
			Name:          "Brewery " + prefix + strconv.Itoa(i),
			BreweryType:   domain.TypeMicro,
			StateProvince: "Colorado",
		}
	}
	return out
}

func transportErr(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrTransport, msg)
}
