package models

// Pagination carries page metadata in the shape clients already consume:
// From/To are 1-based positions of the first/last item on the page and are
// null when the page is empty.
type Pagination struct {
	CurrentPage int    `json:"current_page" example:"1"`
	LastPage    int    `json:"last_page" example:"3"`
	PerPage     int    `json:"per_page" example:"10"`
	Total       int64  `json:"total" example:"25"`
	From        *int64 `json:"from" example:"1"`
	To          *int64 `json:"to" example:"10"`
}

// Page is one page of items plus its metadata.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// NewPagination derives page metadata from the requested page, page size,
// total matching rows and the number of items actually returned.
func NewPagination(page, perPage int, total int64, count int) Pagination {
	if perPage < 1 {
		perPage = 1
	}
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	p := Pagination{
		CurrentPage: page,
		LastPage:    last,
		PerPage:     perPage,
		Total:       total,
	}
	if count > 0 {
		from := int64(page-1)*int64(perPage) + 1
		to := from + int64(count) - 1
		p.From, p.To = &from, &to
	}
	return p
}
