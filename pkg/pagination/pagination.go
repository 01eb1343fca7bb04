package pagination

import "math"

// Pagination mirrors the backend's list metadata.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// Params are the page-based query parameters sent on list requests.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Default returns the default page window.
func Default() *Params {
	return &Params{Page: 1, PerPage: 100}
}

// Validate clamps parameters into valid ranges.
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 100
	}
	if p.PerPage > 1000 {
		p.PerPage = 1000
	}
}

// New builds response metadata from a page window and a total count.
func New(page, perPage int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
