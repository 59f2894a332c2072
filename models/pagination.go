package models

// Page is an offset-based page request. Number is 1-based.
type Page struct {
	Number int
	Limit  int
}

// Pagination is the page metadata returned with every listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// Upper bounds for a page request. MaxPageNumber keeps Offset far from
// overflowing int.
const (
	MaxPageLimit  = 100
	MaxPageNumber = 1_000_000
)

// NewPage builds a page request, falling back to page 1 and defaultLimit when
// the given values are not positive. Limit is capped at MaxPageLimit and
// Number at MaxPageNumber.
func NewPage(number, limit, defaultLimit int) Page {
	if number < 1 {
		number = 1
	}
	if number > MaxPageNumber {
		number = MaxPageNumber
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Number: number, Limit: limit}
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Paginate computes the metadata for a listing with total matching rows.
func (p Page) Paginate(total int64) Pagination {
	limit := int64(p.Limit)
	return Pagination{
		Page:  p.Number,
		Limit: p.Limit,
		Total: total,
		Pages: (total + limit - 1) / limit,
	}
}
