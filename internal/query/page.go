package query

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Page selects a window of a listing. Number is 1-based.
type Page struct {
	Number  int
	PerPage int
}

// NewPage clamps the inputs: missing or invalid values fall back to page 1 and
// DefaultPerPage; PerPage is capped at MaxPerPage.
func NewPage(number, perPage int) Page {
	if number < 1 {
		number = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Page{Number: number, PerPage: perPage}
}

// Limit is the SQL LIMIT of the page.
func (p Page) Limit() uint64 { return uint64(p.PerPage) }

// Offset is the SQL OFFSET of the page.
func (p Page) Offset() uint64 { return uint64(p.Number-1) * uint64(p.PerPage) }
