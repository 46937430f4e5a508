package domain

// List paging bounds.
const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Page is one page of a record list.
type Page struct {
	Items      []Brewery `json:"items"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	TotalItems int       `json:"total_items"`
	TotalPages int       `json:"total_pages"`
}

// Paginate slices records into 1-based pages. Out-of-range inputs are
// clamped; a page past the end has no items.
func Paginate(records []Brewery, page, perPage int) Page {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	total := len(records)
	p := Page{
		Items:      []Brewery{},
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}

	// Compare in page units so huge page numbers cannot overflow.
	if page-1 >= p.TotalPages {
		return p
	}
	start := (page - 1) * perPage
	end := min(start+perPage, total)
	p.Items = records[start:end]
	return p
}
