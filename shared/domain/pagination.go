package domain

// Pagination describes a zero-indexed page within a result set.
type Pagination struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

func NewPagination(total, page, perPage int) Pagination {
	totalPages := 0
	if total > 0 && perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return Pagination{
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		HasPrev:    page > 0,
		HasNext:    page+1 < totalPages,
	}
}

// Offset of the first row of page.
func Offset(page, perPage int) int {
	return page * perPage
}
