package availability

import "fmt"

// Pagination describes the window a Page covers. From and To are 1-indexed
// inclusive positions into the full slot list, omitted when the page holds
// no data.
type Pagination struct {
	Total        int  `json:"total"`
	TotalPages   int  `json:"total_pages"`
	HasMorePages bool `json:"has_more_pages"`
	CurrentPage  int  `json:"current_page"`
	PerPage      int  `json:"per_page"`
	From         *int `json:"from"`
	To           *int `json:"to"`
}

// Page is one window over a materialized slot list.
type Page struct {
	Data       []Slot     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Paginate windows an already-ordered slot list. A page past the end is not
// an error: it comes back with empty data and accurate metadata. TotalPages
// is never below 1, so page 1 of an empty list reports no further pages.
func Paginate(slots []Slot, page, perPage int) (Page, error) {
	if page < 1 {
		return Page{}, fmt.Errorf("%w: page %d must be at least 1", ErrInvalidConfig, page)
	}
	if perPage < 1 {
		return Page{}, fmt.Errorf("%w: per_page %d must be at least 1", ErrInvalidConfig, perPage)
	}

	total := len(slots)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	data := slots[start:end]

	p := Pagination{
		Total:        total,
		TotalPages:   totalPages,
		HasMorePages: page < totalPages,
		CurrentPage:  page,
		PerPage:      perPage,
	}
	if len(data) > 0 {
		from := start + 1
		to := end
		p.From = &from
		p.To = &to
	}

	return Page{Data: data, Pagination: p}, nil
}
