package util

// Pagination is the page block returned with every list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NormalizePage clamps page to >= 1 and limit to [1, max], using def when limit is unset.
func NormalizePage(page, limit, def, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = def
	}
	if max > 0 && limit > max {
		limit = max
	}
	return page, limit
}

func Offset(page, limit int) int {
	return (page - 1) * limit
}

// NewPagination computes pages = ceil(total / limit).
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}
